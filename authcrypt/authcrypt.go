/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package authcrypt implements spec §4.5: ECDH-1PU key agreement + key wrap
// for N recipients, authenticating the sender via a static key and revealing
// its kid in the protected header's skid field.
package authcrypt

import (
	"sort"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
	"github.com/hyperledger/aries-didcomm-core/jose"
	"github.com/hyperledger/aries-didcomm-core/jwk"
	"github.com/hyperledger/aries-didcomm-core/metadata"
	"github.com/hyperledger/aries-didcomm-core/primitive"
)

// Recipient is one authcrypt target: a kid and its key-agreement JWK.
type Recipient struct {
	KID string
	JWK *jwk.JWK
}

// SecretLookup resolves a local private key-agreement key by kid.
type SecretLookup func(kid string) (*jwk.JWK, bool)

// PublicKeyLookup resolves a peer's key-agreement public JWK by kid, used
// during Unpack to fetch the sender's static key named by skid.
type PublicKeyLookup func(kid string) (*jwk.JWK, bool)

// The sole authcrypt content-encryption algorithm spec §3 defines is
// A256CBC-HS512, so its key sizes are fixed constants rather than derived.
const (
	cekLenBytes          = 64
	a256kwKeyDataLenBits = 256
	a256kwKeyLenBytes    = 32
)

func aead(cek []byte) (primitive.AEAD, error) {
	return primitive.NewA256CBCHS512(cek)
}

// apvFor computes spec §3/§4.4's apv: base64url of SHA-256 over the
// lex-sorted concatenation of recipient kids. Authcrypt reuses the same
// derivation anoncrypt does.
func apvFor(kids []string) string {
	sorted := append([]string(nil), kids...)
	sort.Strings(sorted)

	var concat []byte
	for _, k := range sorted {
		concat = append(concat, []byte(k)...)
	}

	return jose.StrictB64Encode(primitive.SHA256Sum(concat))
}

// Pack encrypts payload from senderKID/senderKey to recipients, enforcing
// spec §4.4's single-family recipient grouping rule (the sender's static key
// must also belong to that family, since ECDH-1PU agrees with it directly).
func Pack(payload []byte, senderKID string, senderKey *jwk.JWK, recipients []Recipient, alg metadata.AuthCryptAlg) ([]byte, []string, error) {
	if len(recipients) == 0 {
		return nil, nil, didcommerr.Malformedf("authcrypt requires at least one recipient")
	}

	senderCrv, err := senderKey.Curve()
	if err != nil {
		return nil, nil, err
	}

	if !senderCrv.IsKeyAgreementCapable() {
		return nil, nil, didcommerr.Unsupportedf("sender kid %q's curve cannot do key agreement", senderKID)
	}

	family := senderCrv.Family()

	kids := make([]string, len(recipients))

	for i, r := range recipients {
		crv, err := r.JWK.Curve()
		if err != nil {
			return nil, nil, err
		}

		if !crv.IsKeyAgreementCapable() {
			return nil, nil, didcommerr.Unsupportedf("kid %q's curve cannot do key agreement", r.KID)
		}

		if crv.Family() != family {
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
	apu := jose.StrictB64Encode([]byte(senderKID))

	hdr := &jose.ProtectedHeader{
		Alg:  joseAlg,
		Enc:  enc,
		Typ:  "application/didcomm-encrypted+json",
		APV:  apv,
		APU:  apu,
		SKID: senderKID,
		EPK:  ephemeral.Pub,
	}

	protected, err := jose.EncodeProtectedHeader(hdr)
	if err != nil {
		return nil, nil, err
	}

	hdrBytes := []byte(protected)

	cek, err := primitive.GenerateCEK(cekLenBytes)
	if err != nil {
		return nil, nil, err
	}

	cekAEAD, err := aead(cek)
	if err != nil {
		return nil, nil, err
	}

	iv, ciphertext, tag, err := cekAEAD.Encrypt(payload, hdrBytes)
	if err != nil {
		return nil, nil, err
	}

	senderD, err := senderKey.RawD()
	if err != nil {
		return nil, nil, err
	}

	env := &jose.JWE{
		IV:         jose.StrictB64Encode(iv),
		Ciphertext: jose.StrictB64Encode(ciphertext),
		Tag:        jose.StrictB64Encode(tag),
	}

	apuBytes, err := jose.StrictB64Decode("apu", apu)
	if err != nil {
		return nil, nil, err
	}

	apvBytes, err := jose.StrictB64Decode("apv", apv)
	if err != nil {
		return nil, nil, err
	}

	for _, r := range recipients {
		z, err := primitive.ECDH1PUSharedSecret(ephemeral.Priv, senderD, r.JWK)
		if err != nil {
			return nil, nil, err
		}

		kek, err := primitive.ConcatKDF(z, []byte(joseAlg), apuBytes, apvBytes, a256kwKeyDataLenBits, a256kwKeyLenBytes)
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

// Unpack decrypts raw using secrets returned by lookup, resolving the
// sender's static public key via senderLookup(skid). expectAll enforces
// spec §4.4's "every listed kid the resolver can provide must unwrap to the
// same CEK" rule.
func Unpack(raw []byte, lookup SecretLookup, senderLookup PublicKeyLookup, expectAll bool) (plaintext []byte, senderKID string, toKids []string, alg metadata.AuthCryptAlg, err error) {
	env, hdr, err := jose.ParseJWE(raw)
	if err != nil {
		return nil, "", nil, "", err
	}

	if hdr.Alg != "ECDH-1PU+A256KW" {
		return nil, "", nil, "", didcommerr.Malformedf("unsupported authcrypt alg %q", hdr.Alg)
	}

	if hdr.Enc != "A256CBC-HS512" {
		return nil, "", nil, "", didcommerr.Unsupportedf("unsupported authcrypt enc %q", hdr.Enc)
	}

	if hdr.EPK == nil {
		return nil, "", nil, "", didcommerr.Malformedf("unable instantiate epk: missing 'epk'")
	}

	if hdr.SKID == "" {
		return nil, "", nil, "", didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	if hdr.APU == "" {
		return nil, "", nil, "", didcommerr.Malformedf("SKID present, but no apu")
	}

	apuBytes, err := jose.StrictB64Decode("apu", hdr.APU)
	if err != nil {
		return nil, "", nil, "", err
	}

	if string(apuBytes) != hdr.SKID {
		return nil, "", nil, "", didcommerr.Malformedf("SKID present, but no apu")
	}

	senderPub, ok := senderLookup(hdr.SKID)
	if !ok {
		return nil, "", nil, "", didcommerr.New(didcommerr.DIDUrlNotFound, "unable resolve sender kid "+hdr.SKID)
	}

	toKids = make([]string, len(env.Recipients))
	for i, r := range env.Recipients {
		toKids[i] = r.Header.KID
	}

	apvBytes, err := jose.StrictB64Decode("apv", hdr.APV)
	if err != nil {
		return nil, "", nil, "", err
	}

	var cek []byte

	for _, r := range env.Recipients {
		priv, ok := lookup(r.Header.KID)
		if !ok {
			continue
		}

		recipD, err := priv.RawD()
		if err != nil {
			return nil, "", nil, "", err
		}

		z, err := ecdh1puUnpackSecret(hdr.EPK, recipD, senderPub)
		if err != nil {
			return nil, "", nil, "", err
		}

		kek, err := primitive.ConcatKDF(z, []byte(hdr.Alg), apuBytes, apvBytes, a256kwKeyDataLenBits, a256kwKeyLenBytes)
		if err != nil {
			return nil, "", nil, "", err
		}

		encKey, err := jose.StrictB64Decode("encrypted_key", r.EncryptedKey)
		if err != nil {
			return nil, "", nil, "", err
		}

		unwrapped, err := primitive.UnwrapKey(kek, encKey)
		if err != nil {
			return nil, "", nil, "", err
		}

		if cek == nil {
			cek = unwrapped
		} else if expectAll && string(cek) != string(unwrapped) {
			return nil, "", nil, "", didcommerr.Malformedf("recipients disagree on CEK under expect_decrypt_by_all_keys")
		}

		if !expectAll {
			break
		}
	}

	if cek == nil {
		return nil, "", nil, "", didcommerr.New(didcommerr.SecretNotFound, "no local secret matches any authcrypt recipient")
	}

	cekAEAD, err := aead(cek)
	if err != nil {
		return nil, "", nil, "", err
	}

	iv, err := env.IVBytes()
	if err != nil {
		return nil, "", nil, "", err
	}

	ct, err := env.CiphertextBytes()
	if err != nil {
		return nil, "", nil, "", err
	}

	tag, err := env.TagBytes()
	if err != nil {
		return nil, "", nil, "", err
	}

	pt, err := cekAEAD.Decrypt(iv, ct, tag, []byte(env.Protected))
	if err != nil {
		return nil, "", nil, "", err
	}

	return pt, hdr.SKID, toKids, metadata.A256cbcHs512Ecdh1puA256kw, nil
}

// ecdh1puUnpackSecret computes Z = Ze || Zs from the recipient's side: Ze is
// the recipient's static key agreeing with the ephemeral epk, Zs is the
// recipient's static key agreeing with the sender's static key.
func ecdh1puUnpackSecret(epk *jwk.JWK, recipPriv []byte, senderPub *jwk.JWK) ([]byte, error) {
	ze, err := primitive.SharedSecret(recipPriv, epk)
	if err != nil {
		return nil, err
	}

	zs, err := primitive.SharedSecret(recipPriv, senderPub)
	if err != nil {
		return nil, err
	}

	return append(ze, zs...), nil
}

func curveForFamily(family string) string {
	switch family {
	case "OKP":
		return string(jwk.X25519)
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
