/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package sign implements spec §4.6: JWS general serialization over a
// plaintext message, carrying the payload and one or more signatures whose
// alg is inferred from each signer's curve.
package sign

import (
	"github.com/hyperledger/aries-didcomm-core/didcommerr"
	"github.com/hyperledger/aries-didcomm-core/jose"
	"github.com/hyperledger/aries-didcomm-core/jwk"
	"github.com/hyperledger/aries-didcomm-core/metadata"
	"github.com/hyperledger/aries-didcomm-core/primitive"
)

// Signer is one signing key: a kid and the private JWK producing a signature
// over the payload.
type Signer struct {
	KID string
	JWK *jwk.JWK
}

// PublicKeyLookup resolves a signer's public JWK by kid, used during Unpack
// to verify each signature.
type PublicKeyLookup func(kid string) (*jwk.JWK, bool)

// Pack produces a general-serialization JWS over payload, one signature per
// signer, alg chosen per spec §4.6 ("inferred from key").
func Pack(payload []byte, signers []Signer) ([]byte, error) {
	if len(signers) == 0 {
		return nil, didcommerr.Malformedf("sign requires at least one signer")
	}

	encodedPayload := jose.StrictB64Encode(payload)

	out := &jose.JWS{Payload: encodedPayload}

	for _, s := range signers {
		crv, err := s.JWK.Curve()
		if err != nil {
			return nil, err
		}

		alg, err := crv.SignAlgFor()
		if err != nil {
			return nil, err
		}

		protected := &jose.JWSProtectedHeader{Alg: alg, Typ: jose.SignedTyp}

		protectedBytes, err := jose.EncodeJWSProtectedHeader(protected)
		if err != nil {
			return nil, err
		}

		signingInput := []byte(protectedBytes + "." + encodedPayload)

		d, err := s.JWK.RawD()
		if err != nil {
			return nil, err
		}

		sig, err := signWith(crv, d, signingInput)
		if err != nil {
			return nil, err
		}

		out.Signatures = append(out.Signatures, jose.JWSSignature{
			Protected: protectedBytes,
			Signature: jose.StrictB64Encode(sig),
			Header:    jose.JWSHeader{KID: s.KID},
		})
	}

	return jose.Serialize(out)
}

// Unpack verifies every signature in raw against its resolved signer key,
// failing Malformed ("wrong signature") on any single bad signature, per
// spec §4.6. Returns the decoded payload, the kid of the first signer and its
// alg; the caller keeps raw itself as spec §3's signed_message.
func Unpack(raw []byte, lookup PublicKeyLookup) (payload []byte, signFrom string, alg metadata.SignAlg, err error) {
	jws, err := jose.ParseJWS(raw)
	if err != nil {
		return nil, "", "", err
	}

	payload, err = jws.PayloadBytes()
	if err != nil {
		return nil, "", "", err
	}

	for i, sig := range jws.Signatures {
		hdr, err := jws.SignatureProtectedHeader(sig)
		if err != nil {
			return nil, "", "", err
		}

		pub, ok := lookup(sig.Header.KID)
		if !ok {
			return nil, "", "", didcommerr.New(didcommerr.DIDUrlNotFound, "unable resolve signer kid "+sig.Header.KID)
		}

		crv, err := pub.Curve()
		if err != nil {
			return nil, "", "", err
		}

		wantAlg, err := crv.SignAlgFor()
		if err != nil {
			return nil, "", "", err
		}

		if hdr.Alg != wantAlg {
			return nil, "", "", didcommerr.Malformedf("Wrong signature")
		}

		sigBytes, err := jose.StrictB64Decode("signature", sig.Signature)
		if err != nil {
			return nil, "", "", err
		}

		signingInput := []byte(sig.Protected + "." + jws.Payload)

		if err := verifyWith(crv, pub, signingInput, sigBytes); err != nil {
			return nil, "", "", err
		}

		if i == 0 {
			signFrom = sig.Header.KID
			alg = metadata.SignAlg(hdr.Alg)
		}
	}

	return payload, signFrom, alg, nil
}

func signWith(crv jwk.Curve, d, signingInput []byte) ([]byte, error) {
	switch crv {
	case jwk.Ed25519:
		return primitive.EdDSASign(d, signingInput)
	case jwk.P256:
		return primitive.ES256Sign(primitive.NewP256PrivateKey(d), signingInput)
	case jwk.Secp256k1:
		return primitive.ES256KSign(primitive.NewSecp256k1PrivateKey(d), signingInput)
	default:
		return nil, didcommerr.Unsupportedf("curve %q cannot sign", crv)
	}
}

func verifyWith(crv jwk.Curve, pub *jwk.JWK, signingInput, sig []byte) error {
	switch crv {
	case jwk.Ed25519:
		x, err := pub.RawX()
		if err != nil {
			return err
		}

		return primitive.EdDSAVerify(x, signingInput, sig)
	case jwk.P256:
		x, errX := pub.RawX()
		y, errY := pub.RawY()

		if errX != nil {
			return errX
		}

		if errY != nil {
			return errY
		}

		return primitive.ES256Verify(primitive.NewP256PublicKey(x, y), signingInput, sig)
	case jwk.Secp256k1:
		x, errX := pub.RawX()
		y, errY := pub.RawY()

		if errX != nil {
			return errX
		}

		if errY != nil {
			return errY
		}

		return primitive.ES256KVerify(primitive.NewSecp256k1PublicKey(x, y), signingInput, sig)
	default:
		return didcommerr.Unsupportedf("curve %q cannot verify", crv)
	}
}
