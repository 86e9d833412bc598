/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwk normalizes DID verification methods and stored secrets into
// JWKs, and classifies the curve/alg capability each one carries. This is
// the teacher's "key material" concern (historically Tink keyset.Handle
// values in aries-framework-go's tinkcrypto package) reworked around bare
// JOSE JWKs, since the wire format in this spec is JWE/JWS general
// serialization, not a Tink keyset.
package jwk

import (
	"encoding/base64"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
	"github.com/hyperledger/aries-didcomm-core/resolver"
)

// Curve is one of the recognized JOSE curves this core supports.
type Curve string

// Recognized curves, per spec §4.1.
const (
	Ed25519   Curve = "Ed25519"
	X25519    Curve = "X25519"
	P256      Curve = "P-256"
	P384      Curve = "P-384"
	P521      Curve = "P-521"
	Secp256k1 Curve = "secp256k1"
)

// Purpose classifies what a key is used for, per spec's "classify_purpose".
type Purpose string

// Key purposes.
const (
	PurposeAuthentication Purpose = "authentication"
	PurposeKeyAgreement   Purpose = "keyAgreement"
)

// JWK is the core's normalized key representation: kty/crv/x/y/d plus a
// stable kid of the form did#fragment.
type JWK struct {
	KID string `json:"kid,omitempty"`
	Kty string `json:"kty"`
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
	D   string `json:"d,omitempty"`
}

// Curve classifies this JWK's curve, failing Unsupported on anything outside
// the recognized set and Malformed when kty/crv are missing.
func (k *JWK) Curve() (Curve, error) {
	if k.Kty == "" || k.Crv == "" {
		return "", didcommerr.Malformedf("JWK is missing kty/crv")
	}

	switch Curve(k.Crv) {
	case Ed25519, X25519, P256, P384, P521, Secp256k1:
		return Curve(k.Crv), nil
	default:
		return "", didcommerr.Unsupportedf("unsupported curve %q", k.Crv)
	}
}

// Family groups curves that can appear together in one anoncrypt/authcrypt
// recipient set (spec §4.4 "recipient grouping"): the OKP family (Ed25519 /
// X25519, since Ed25519 authentication keys map to an X25519 agreement key)
// versus each NIST curve individually, versus secp256k1 (signature-only,
// never a key-agreement family).
func (c Curve) Family() string {
	switch c {
	case Ed25519, X25519:
		return "OKP"
	case P256:
		return "P-256"
	case P384:
		return "P-384"
	case P521:
		return "P-521"
	case Secp256k1:
		return "secp256k1"
	default:
		return ""
	}
}

// IsKeyAgreementCapable reports whether the curve can be used for ECDH.
func (c Curve) IsKeyAgreementCapable() bool {
	switch c {
	case X25519, P256, P384, P521:
		return true
	default:
		return false
	}
}

// IsSignatureCapable reports whether the curve can be used for signing.
func (c Curve) IsSignatureCapable() bool {
	switch c {
	case Ed25519, P256, Secp256k1:
		return true
	default:
		return false
	}
}

// SignAlgFor returns the JOSE signature algorithm this curve produces, per
// spec §4.6 ("Signature alg inferred from key").
func (c Curve) SignAlgFor() (string, error) {
	switch c {
	case Ed25519:
		return "EdDSA", nil
	case P256:
		return "ES256", nil
	case Secp256k1:
		return "ES256K", nil
	default:
		return "", didcommerr.Unsupportedf("curve %q cannot sign", c)
	}
}

// CanSign reports whether this JWK can produce the given JOSE signature alg.
func (k *JWK) CanSign(alg string) bool {
	crv, err := k.Curve()
	if err != nil {
		return false
	}

	want, err := crv.SignAlgFor()

	return err == nil && want == alg
}

// CanAgreeWith reports whether k and other share a key-agreement family and
// both carry agreement-capable curves.
func (k *JWK) CanAgreeWith(other *JWK) bool {
	a, err := k.Curve()
	if err != nil || !a.IsKeyAgreementCapable() {
		return false
	}

	b, err := other.Curve()
	if err != nil || !b.IsKeyAgreementCapable() {
		return false
	}

	return a.Family() == b.Family()
}

// Purpose classifies this key as authentication or key-agreement capable,
// preferring key-agreement for curves usable both ways (X25519 only ever
// agrees; Ed25519/P-256/secp256k1 are classified by the relationship the
// caller passes as hint).
func (k *JWK) Purpose(hint Purpose) (Purpose, error) {
	crv, err := k.Curve()
	if err != nil {
		return "", err
	}

	switch {
	case crv == X25519:
		return PurposeKeyAgreement, nil
	case hint == PurposeKeyAgreement && crv.IsKeyAgreementCapable():
		return PurposeKeyAgreement, nil
	case crv.IsSignatureCapable():
		return PurposeAuthentication, nil
	default:
		return "", didcommerr.Unsupportedf("curve %q has no recognized purpose", crv)
	}
}

// FromVerificationMethod maps a resolved DID document's verification method
// into a JWK, failing Malformed on invalid point encoding and Unsupported on
// an unrecognized type/curve.
func FromVerificationMethod(vm resolver.VerificationMethod) (*JWK, error) {
	if vm.PublicKeyJWK == nil {
		return nil, didcommerr.Unsupportedf("verification method %q has no publicKeyJwk", vm.ID)
	}

	k := &JWK{KID: vm.ID}
	if v, ok := vm.PublicKeyJWK["kty"].(string); ok {
		k.Kty = v
	}

	if v, ok := vm.PublicKeyJWK["crv"].(string); ok {
		k.Crv = v
	}

	if v, ok := vm.PublicKeyJWK["x"].(string); ok {
		k.X = v
	}

	if v, ok := vm.PublicKeyJWK["y"].(string); ok {
		k.Y = v
	}

	if _, err := k.Curve(); err != nil {
		return nil, err
	}

	if err := k.validatePointEncoding(); err != nil {
		return nil, err
	}

	return k, nil
}

// FromSecret maps a locally-held secret into a JWK carrying its private "d".
func FromSecret(s resolver.Secret) (*JWK, error) {
	if s.PrivateKeyJWK == nil {
		return nil, didcommerr.Unsupportedf("secret %q has no privateKeyJwk", s.ID)
	}

	k := &JWK{KID: s.ID}
	if v, ok := s.PrivateKeyJWK["kty"].(string); ok {
		k.Kty = v
	}

	if v, ok := s.PrivateKeyJWK["crv"].(string); ok {
		k.Crv = v
	}

	if v, ok := s.PrivateKeyJWK["x"].(string); ok {
		k.X = v
	}

	if v, ok := s.PrivateKeyJWK["y"].(string); ok {
		k.Y = v
	}

	if v, ok := s.PrivateKeyJWK["d"].(string); ok {
		k.D = v
	}

	if _, err := k.Curve(); err != nil {
		return nil, err
	}

	if k.D == "" {
		return nil, didcommerr.Malformedf("secret %q is missing 'd'", s.ID)
	}

	return k, nil
}

// validatePointEncoding checks that x (and y, for NIST curves) decode to the
// expected coordinate length for the key's curve, surfacing Malformed on any
// size mismatch the way an invalid point would.
func (k *JWK) validatePointEncoding() error {
	crv, err := k.Curve()
	if err != nil {
		return err
	}

	x, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil {
		return didcommerr.Wrap(didcommerr.Malformed, "decode 'x'", err)
	}

	switch crv {
	case Ed25519, X25519:
		if len(x) != 32 {
			return didcommerr.Malformedf("curve %q requires a 32-byte 'x'", crv)
		}
	case P256, P384, P521, Secp256k1:
		y, err := base64.RawURLEncoding.DecodeString(k.Y)
		if err != nil {
			return didcommerr.Wrap(didcommerr.Malformed, "decode 'y'", err)
		}

		size := coordinateSize(crv)
		if len(x) != size || len(y) != size {
			return didcommerr.Malformedf("curve %q point is not on curve: bad coordinate length", crv)
		}
	}

	return nil
}

func coordinateSize(crv Curve) int {
	switch crv {
	case P256, Secp256k1:
		return 32
	case P384:
		return 48
	case P521:
		return 66
	default:
		return 0
	}
}

// RawX returns the decoded x-coordinate (or Ed25519/X25519 public key) bytes.
func (k *JWK) RawX() ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.Malformed, "decode 'x'", err)
	}

	return b, nil
}

// RawY returns the decoded y-coordinate bytes (NIST curves only).
func (k *JWK) RawY() ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(k.Y)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.Malformed, "decode 'y'", err)
	}

	return b, nil
}

// RawD returns the decoded private scalar bytes.
func (k *JWK) RawD() ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(k.D)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.Malformed, "decode 'd'", err)
	}

	return b, nil
}

// Public returns a copy of k with the private "d" stripped.
func (k *JWK) Public() *JWK {
	pub := *k
	pub.D = ""

	return &pub
}
