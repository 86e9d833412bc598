/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package primitive

import (
	"crypto/ecdsa"
	stded25519 "crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	ed25519 "github.com/teserakt-io/golang-ed25519"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
)

// EdDSASign signs msg with an Ed25519 private key using the teserakt-io
// fork the teacher's legacy authcrypt signing path is built against, rather
// than crypto/ed25519, to stay grounded on the teacher's actual dependency.
// priv is either the 32-byte seed a JWK's "d" carries or the 64-byte
// expanded private key; a seed is expanded before signing.
func EdDSASign(priv []byte, msg []byte) ([]byte, error) {
	if len(priv) == stded25519.SeedSize {
		priv = stded25519.NewKeyFromSeed(priv)
	}

	if len(priv) != ed25519.PrivateKeySize {
		return nil, didcommerr.Malformedf("EdDSA private key must be %d bytes", ed25519.PrivateKeySize)
	}

	return ed25519.Sign(priv, msg), nil
}

// EdDSAVerify verifies an EdDSA signature, surfacing Malformed on failure
// per spec §4.6 ("Wrong signature").
func EdDSAVerify(pub []byte, msg, sig []byte) error {
	if len(pub) != ed25519.PublicKeySize {
		return didcommerr.Malformedf("EdDSA public key must be %d bytes", ed25519.PublicKeySize)
	}

	if !ed25519.Verify(pub, msg, sig) {
		return didcommerr.Malformedf("wrong signature")
	}

	return nil
}

// halfOrder returns N/2 for low-S normalization, per spec §4.3.
func halfOrder(n *big.Int) *big.Int {
	return new(big.Int).Rsh(n, 1)
}

func normalizeLowS(s, n *big.Int) *big.Int {
	if s.Cmp(halfOrder(n)) > 0 {
		return new(big.Int).Sub(n, s)
	}

	return s
}

func fixedLengthRS(r, s *big.Int, size int) []byte {
	out := make([]byte, 2*size)
	r.FillBytes(out[:size])
	s.FillBytes(out[size:])

	return out
}

// ES256Sign signs the SHA-256 digest of msg over P-256, returning a raw
// fixed-length R||S signature (not DER), with low-S normalization.
func ES256Sign(priv *ecdsa.PrivateKey, msg []byte) ([]byte, error) {
	digest := SHA256Sum(msg)

	r, s, err := ecdsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.Malformed, "ES256 sign", err)
	}

	s = normalizeLowS(s, priv.Curve.Params().N)

	return fixedLengthRS(r, s, 32), nil
}

// ES256Verify verifies a raw R||S ES256 signature.
func ES256Verify(pub *ecdsa.PublicKey, msg, sig []byte) error {
	if len(sig) != 64 {
		return didcommerr.Malformedf("wrong signature: ES256 signature must be 64 bytes")
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:])

	digest := SHA256Sum(msg)

	if !ecdsa.Verify(pub, digest, r, s) {
		return didcommerr.Malformedf("wrong signature")
	}

	return nil
}

// NewP256PrivateKey builds an *ecdsa.PrivateKey from a raw 32-byte scalar.
func NewP256PrivateKey(d []byte) *ecdsa.PrivateKey {
	priv := new(ecdsa.PrivateKey)
	priv.Curve = elliptic.P256()
	priv.D = new(big.Int).SetBytes(d)
	priv.PublicKey.X, priv.PublicKey.Y = priv.Curve.ScalarBaseMult(d)

	return priv
}

// NewP256PublicKey builds an *ecdsa.PublicKey from raw x/y coordinates.
func NewP256PublicKey(x, y []byte) *ecdsa.PublicKey {
	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(x),
		Y:     new(big.Int).SetBytes(y),
	}
}

// ES256KSign signs the SHA-256 digest of msg over secp256k1 using
// github.com/btcsuite/btcd/btcec, returning a raw fixed-length R||S
// signature with low-S normalization, the way the teacher's DID-key
// ecosystem (btcsuite deps in go.mod) represents secp256k1 keys.
func ES256KSign(priv *btcec.PrivateKey, msg []byte) ([]byte, error) {
	digest := SHA256Sum(msg)

	r, s, err := ecdsa.Sign(rand.Reader, priv.ToECDSA(), digest)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.Malformed, "ES256K sign", err)
	}

	s = normalizeLowS(s, btcec.S256().N)

	return fixedLengthRS(r, s, 32), nil
}

// ES256KVerify verifies a raw R||S ES256K signature.
func ES256KVerify(pub *btcec.PublicKey, msg, sig []byte) error {
	if len(sig) != 64 {
		return didcommerr.Malformedf("wrong signature: ES256K signature must be 64 bytes")
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:])

	digest := SHA256Sum(msg)

	if !ecdsa.Verify(pub.ToECDSA(), digest, r, s) {
		return didcommerr.Malformedf("wrong signature")
	}

	return nil
}

// NewSecp256k1PrivateKey builds a *btcec.PrivateKey from a raw 32-byte scalar.
func NewSecp256k1PrivateKey(d []byte) *btcec.PrivateKey {
	priv, _ := btcec.PrivKeyFromBytes(btcec.S256(), d)
	return priv
}

// NewSecp256k1PublicKey builds a *btcec.PublicKey from raw x/y coordinates.
func NewSecp256k1PublicKey(x, y []byte) *btcec.PublicKey {
	return &btcec.PublicKey{
		Curve: btcec.S256(),
		X:     new(big.Int).SetBytes(x),
		Y:     new(big.Int).SetBytes(y),
	}
}
