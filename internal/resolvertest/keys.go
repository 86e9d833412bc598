/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resolvertest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
	"golang.org/x/crypto/curve25519"

	ed25519 "github.com/teserakt-io/golang-ed25519"

	"github.com/hyperledger/aries-didcomm-core/jwk"
)

func b64(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

// KeyPair is a test fixture: a DID URL kid plus its public and private JWKs.
type KeyPair struct {
	KID    string
	Public *jwk.JWK
	Secret *jwk.JWK
}

// GenerateEd25519 returns an EdDSA-capable test keypair.
func GenerateEd25519(did string, idx int) (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	kid := fmt.Sprintf("%s#key-%d", did, idx)

	return &KeyPair{
		KID:    kid,
		Public: &jwk.JWK{KID: kid, Kty: "OKP", Crv: string(jwk.Ed25519), X: b64(pub)},
		Secret: &jwk.JWK{KID: kid, Kty: "OKP", Crv: string(jwk.Ed25519), X: b64(pub), D: b64(priv[:32])},
	}, nil
}

// GenerateX25519 returns a key-agreement-capable test keypair.
func GenerateX25519(did string, idx int) (*KeyPair, error) {
	var priv [32]byte
	if _, err := rand.Read(priv[:]); err != nil {
		return nil, err
	}

	pub, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return nil, err
	}

	kid := fmt.Sprintf("%s#key-%d", did, idx)

	return &KeyPair{
		KID:    kid,
		Public: &jwk.JWK{KID: kid, Kty: "OKP", Crv: string(jwk.X25519), X: b64(pub)},
		Secret: &jwk.JWK{KID: kid, Kty: "OKP", Crv: string(jwk.X25519), X: b64(pub), D: b64(priv[:])},
	}, nil
}

// GenerateP256 returns a NIST P-256 test keypair, usable for both signing
// (ES256) and key agreement.
func GenerateP256(did string, idx int) (*KeyPair, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	kid := fmt.Sprintf("%s#key-%d", did, idx)
	x := priv.X.FillBytes(make([]byte, 32))
	y := priv.Y.FillBytes(make([]byte, 32))
	d := priv.D.FillBytes(make([]byte, 32))

	return &KeyPair{
		KID:    kid,
		Public: &jwk.JWK{KID: kid, Kty: "EC", Crv: string(jwk.P256), X: b64(x), Y: b64(y)},
		Secret: &jwk.JWK{KID: kid, Kty: "EC", Crv: string(jwk.P256), X: b64(x), Y: b64(y), D: b64(d)},
	}, nil
}

// GenerateSecp256k1 returns a secp256k1 test keypair, for ES256K signing.
func GenerateSecp256k1(did string, idx int) (*KeyPair, error) {
	priv, err := ecdsa.GenerateKey(btcec.S256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	kid := fmt.Sprintf("%s#key-%d", did, idx)
	x := priv.X.FillBytes(make([]byte, 32))
	y := priv.Y.FillBytes(make([]byte, 32))
	d := priv.D.FillBytes(make([]byte, 32))

	return &KeyPair{
		KID:    kid,
		Public: &jwk.JWK{KID: kid, Kty: "EC", Crv: string(jwk.Secp256k1), X: b64(x), Y: b64(y)},
		Secret: &jwk.JWK{KID: kid, Kty: "EC", Crv: string(jwk.Secp256k1), X: b64(x), Y: b64(y), D: b64(d)},
	}, nil
}
