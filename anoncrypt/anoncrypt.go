/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package anoncrypt implements spec §4.4: ECDH-ES key agreement + key wrap
// for N recipients, producing/consuming a general JWE that reveals nothing
// about the sender.
package anoncrypt

import (
	"sort"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
	"github.com/hyperledger/aries-didcomm-core/jose"
	"github.com/hyperledger/aries-didcomm-core/jwk"
	"github.com/hyperledger/aries-didcomm-core/metadata"
	"github.com/hyperledger/aries-didcomm-core/primitive"
)

// Recipient is one anoncrypt target: a kid and its key-agreement JWK.
type Recipient struct {
	KID string
	JWK *jwk.JWK
}

// SecretLookup resolves a local private key-agreement key by kid.
type SecretLookup func(kid string) (*jwk.JWK, bool)

func aeadFor(enc string, key []byte) (primitive.AEAD, error) {
	switch enc {
	case "A256GCM":
		return primitive.NewA256GCM(key)
	case "XC20P":
		return primitive.NewXC20P(key)
	case "A256CBC-HS512":
		return primitive.NewA256CBCHS512(key)
	default:
		return nil, didcommerr.Unsupportedf("unsupported enc %q", enc)
	}
}

func keyLenFor(enc string) int {
	if enc == "A256CBC-HS512" {
		return 64
	}

	return 32
}

// The KEK every recipient unwraps is always A256KW: 256 bits, independent of
// the content-encryption algorithm negotiated for the CEK itself.
const (
	a256kwKeyDataLenBits = 256
	a256kwKeyLenBytes    = 32
)

// apvFor computes spec §3/§4.4's apv: base64url of SHA-256 over the
// lex-sorted concatenation of recipient kids.
func apvFor(kids []string) string {
	sorted := append([]string(nil), kids...)
	sort.Strings(sorted)

	var concat []byte
	for _, k := range sorted {
		concat = append(concat, []byte(k)...)
	}

	return jose.StrictB64Encode(primitive.SHA256Sum(concat))
}

// Pack encrypts payload to recipients, enforcing spec §4.4's single-family
// recipient grouping rule.
func Pack(payload []byte, recipients []Recipient, alg metadata.AnonCryptAlg) ([]byte, []string, error) {
	if len(recipients) == 0 {
		return nil, nil, didcommerr.Malformedf("anoncrypt requires at least one recipient")
	}

	family := ""

	kids := make([]string, len(recipients))

	for i, r := range recipients {
		crv, err := r.JWK.Curve()
		if err != nil {
			return nil, nil, err
		}

		if !crv.IsKeyAgreementCapable() {
			return nil, nil, didcommerr.Unsupportedf("kid %q's curve cannot do key agreement", r.KID)
		}

		if family == "" {
			family = crv.Family()
		} else if family != crv.Family() {
			return nil, nil, didcommerr.Malformedf("recipients mix incompatible curve families")
		}

		kids[i] = r.KID
	}

	ephemeral, err := primitive.GenerateEphemeralKey(jwk.Curve(curveForFamily(family)))
	if err != nil {
		return nil, nil, err
	}

	joseAlg, enc := alg.JOSEHeader()
	apv := apvFor(kids)

	hdr := &jose.ProtectedHeader{
		Alg: joseAlg,
		Enc: enc,
		Typ: "application/didcomm-encrypted+json",
		APV: apv,
		EPK: ephemeral.Pub,
	}

	protected, err := jose.EncodeProtectedHeader(hdr)
	if err != nil {
		return nil, nil, err
	}

	hdrBytes := []byte(protected)

	cek, err := primitive.GenerateCEK(keyLenFor(enc))
	if err != nil {
		return nil, nil, err
	}

	aead, err := aeadFor(enc, cek)
	if err != nil {
		return nil, nil, err
	}

	iv, ciphertext, tag, err := aead.Encrypt(payload, hdrBytes)
	if err != nil {
		return nil, nil, err
	}

	env := &jose.JWE{
		IV:         jose.StrictB64Encode(iv),
		Ciphertext: jose.StrictB64Encode(ciphertext),
		Tag:        jose.StrictB64Encode(tag),
	}

	for _, r := range recipients {
		z, err := primitive.SharedSecret(ephemeral.Priv, r.JWK)
		if err != nil {
			return nil, nil, err
		}

		kek, err := primitive.ConcatKDF(z, []byte(joseAlg), nil, mustDecodeAPV(apv), a256kwKeyDataLenBits, a256kwKeyLenBytes)
		if err != nil {
			return nil, nil, err
		}

		wrapped, err := primitive.WrapKey(kek, cek)
		if err != nil {
			return nil, nil, err
		}

		env.Recipients = append(env.Recipients, jose.Recipient{
			Header:       jose.RecipientHeader{KID: r.KID},
			EncryptedKey: jose.StrictB64Encode(wrapped),
		})
	}

	out, err := jose.SerializeJWE(hdr, env)
	if err != nil {
		return nil, nil, err
	}

	return out, kids, nil
}

// Unpack decrypts raw using secrets returned by lookup, enforcing
// expectAll when set (spec §4.4: every listed kid the resolver can provide
// must unwrap to the same CEK).
func Unpack(raw []byte, lookup SecretLookup, expectAll bool) (plaintext []byte, toKids []string, alg metadata.AnonCryptAlg, err error) {
	env, hdr, err := jose.ParseJWE(raw)
	if err != nil {
		return nil, nil, "", err
	}

	if hdr.Alg != "ECDH-ES+A256KW" {
		return nil, nil, "", didcommerr.Malformedf("unsupported anoncrypt alg %q", hdr.Alg)
	}

	anonAlg, ok := metadata.AnonCryptAlgFromEnc(hdr.Enc)
	if !ok {
		return nil, nil, "", didcommerr.Unsupportedf("unsupported anoncrypt enc %q", hdr.Enc)
	}

	if hdr.EPK == nil {
		return nil, nil, "", didcommerr.Malformedf("unable instantiate epk: missing 'epk'")
	}

	toKids = make([]string, len(env.Recipients))
	for i, r := range env.Recipients {
		toKids[i] = r.Header.KID
	}

	var cek []byte

	for _, r := range env.Recipients {
		priv, ok := lookup(r.Header.KID)
		if !ok {
			continue
		}

		z, err := primitive.SharedSecret(mustRawD(priv), hdr.EPK)
		if err != nil {
			return nil, nil, "", err
		}

		kek, err := primitive.ConcatKDF(z, []byte(hdr.Alg), nil, mustDecodeAPV(hdr.APV), a256kwKeyDataLenBits, a256kwKeyLenBytes)
		if err != nil {
			return nil, nil, "", err
		}

		encKey, err := jose.StrictB64Decode("encrypted_key", r.EncryptedKey)
		if err != nil {
			return nil, nil, "", err
		}

		unwrapped, err := primitive.UnwrapKey(kek, encKey)
		if err != nil {
			return nil, nil, "", err
		}

		if cek == nil {
			cek = unwrapped
		} else if expectAll && string(cek) != string(unwrapped) {
			return nil, nil, "", didcommerr.Malformedf("recipients disagree on CEK under expect_decrypt_by_all_keys")
		}

		if !expectAll {
			break
		}
	}

	if cek == nil {
		return nil, nil, "", didcommerr.New(didcommerr.SecretNotFound, "no local secret matches any anoncrypt recipient")
	}

	aead, err := aeadFor(hdr.Enc, cek)
	if err != nil {
		return nil, nil, "", err
	}

	iv, err := env.IVBytes()
	if err != nil {
		return nil, nil, "", err
	}

	ct, err := env.CiphertextBytes()
	if err != nil {
		return nil, nil, "", err
	}

	tag, err := env.TagBytes()
	if err != nil {
		return nil, nil, "", err
	}

	pt, err := aead.Decrypt(iv, ct, tag, []byte(env.Protected))
	if err != nil {
		return nil, nil, "", err
	}

	return pt, toKids, anonAlg, nil
}

func curveForFamily(family string) string {
	switch family {
	case "OKP":
		return string(jwkX25519())
	case "P-256":
		return "P-256"
	case "P-384":
		return "P-384"
	case "P-521":
		return "P-521"
	default:
		return "P-256"
	}
}

func jwkX25519() jwk.Curve { return jwk.X25519 }

func mustDecodeAPV(apv string) []byte {
	b, _ := jose.StrictB64Decode("apv", apv)
	return b
}

func mustRawD(k *jwk.JWK) []byte {
	b, _ := k.RawD()
	return b
}
