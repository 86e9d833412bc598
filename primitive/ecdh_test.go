/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package primitive

import (
	"crypto/rand"
	"testing"

	"golang.org/x/crypto/curve25519"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-didcomm-core/jwk"
)

func genX25519(t *testing.T) (priv []byte, pub *jwk.JWK) {
	t.Helper()

	var p [32]byte
	_, err := rand.Read(p[:])
	require.NoError(t, err)

	pubBytes, err := curve25519.X25519(p[:], curve25519.Basepoint)
	require.NoError(t, err)

	return p[:], &jwk.JWK{Kty: "OKP", Crv: string(jwk.X25519), X: b64(pubBytes)}
}

func TestSharedSecretX25519IsSymmetric(t *testing.T) {
	aPriv, aPub := genX25519(t)
	bPriv, bPub := genX25519(t)

	s1, err := SharedSecret(aPriv, bPub)
	require.NoError(t, err)

	s2, err := SharedSecret(bPriv, aPub)
	require.NoError(t, err)

	require.Equal(t, s1, s2)
}

func TestSharedSecretP256RoundTrip(t *testing.T) {
	eph, err := GenerateEphemeralKey(jwk.P256)
	require.NoError(t, err)

	staticEph, err := GenerateEphemeralKey(jwk.P256)
	require.NoError(t, err)

	s1, err := SharedSecret(eph.Priv, staticEph.Pub)
	require.NoError(t, err)

	s2, err := SharedSecret(staticEph.Priv, eph.Pub)
	require.NoError(t, err)

	require.Equal(t, s1, s2)
}

func TestECDH1PUSharedSecretIsZeConcatZs(t *testing.T) {
	ephemeral, err := GenerateEphemeralKey(jwk.X25519)
	require.NoError(t, err)

	senderPriv, _ := genX25519(t)
	_, recipPub := genX25519(t)

	z, err := ECDH1PUSharedSecret(ephemeral.Priv, senderPriv, recipPub)
	require.NoError(t, err)
	require.Len(t, z, 64)

	ze, err := SharedSecret(ephemeral.Priv, recipPub)
	require.NoError(t, err)

	zs, err := SharedSecret(senderPriv, recipPub)
	require.NoError(t, err)

	require.Equal(t, append(append([]byte{}, ze...), zs...), z)
}
