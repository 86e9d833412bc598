/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package primitive

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	ed25519 "github.com/teserakt-io/golang-ed25519"

	"github.com/stretchr/testify/require"
)

func TestEdDSASignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	sig, err := EdDSASign(priv, []byte("msg"))
	require.NoError(t, err)

	require.NoError(t, EdDSAVerify(pub, []byte("msg"), sig))
	require.Error(t, EdDSAVerify(pub, []byte("tampered"), sig))
}

func TestES256SignVerifyRoundTrip(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	sig, err := ES256Sign(priv, []byte("msg"))
	require.NoError(t, err)
	require.Len(t, sig, 64)

	require.NoError(t, ES256Verify(&priv.PublicKey, []byte("msg"), sig))
	require.Error(t, ES256Verify(&priv.PublicKey, []byte("tampered"), sig))
}

func TestES256KSignVerifyRoundTrip(t *testing.T) {
	priv, err := ecdsa.GenerateKey(btcec.S256(), rand.Reader)
	require.NoError(t, err)

	btcecPriv, _ := btcec.PrivKeyFromBytes(btcec.S256(), priv.D.Bytes())

	sig, err := ES256KSign(btcecPriv, []byte("msg"))
	require.NoError(t, err)
	require.Len(t, sig, 64)

	require.NoError(t, ES256KVerify(btcecPriv.PubKey(), []byte("msg"), sig))
	require.Error(t, ES256KVerify(btcecPriv.PubKey(), []byte("tampered"), sig))
}

func TestNewP256PrivateKeyRoundTrip(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	d := priv.D.FillBytes(make([]byte, 32))
	rebuilt := NewP256PrivateKey(d)

	require.Equal(t, priv.X, rebuilt.X)
	require.Equal(t, priv.Y, rebuilt.Y)
}
