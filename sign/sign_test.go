/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sign

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-didcomm-core/internal/resolvertest"
	"github.com/hyperledger/aries-didcomm-core/jwk"
	"github.com/hyperledger/aries-didcomm-core/metadata"
)

func TestPackUnpackRoundTripEdDSA(t *testing.T) {
	signer, err := resolvertest.GenerateEd25519("did:example:alice", 1)
	require.NoError(t, err)

	out, err := Pack([]byte(`{"hello":"world"}`), []Signer{{KID: signer.KID, JWK: signer.Secret}})
	require.NoError(t, err)

	lookup := func(kid string) (*jwk.JWK, bool) {
		if kid == signer.KID {
			return signer.Public, true
		}

		return nil, false
	}

	pt, signFrom, alg, err := Unpack(out, lookup)
	require.NoError(t, err)
	require.JSONEq(t, `{"hello":"world"}`, string(pt))
	require.Equal(t, signer.KID, signFrom)
	require.Equal(t, metadata.EdDSA, alg)
}

func TestPackUnpackRoundTripES256K(t *testing.T) {
	signer, err := resolvertest.GenerateSecp256k1("did:example:alice", 1)
	require.NoError(t, err)

	out, err := Pack([]byte("payload"), []Signer{{KID: signer.KID, JWK: signer.Secret}})
	require.NoError(t, err)

	lookup := func(kid string) (*jwk.JWK, bool) { return signer.Public, true }

	pt, _, alg, err := Unpack(out, lookup)
	require.NoError(t, err)
	require.Equal(t, "payload", string(pt))
	require.Equal(t, metadata.ES256K, alg)
}

func TestUnpackFailsWithWrongSignerKey(t *testing.T) {
	signer, err := resolvertest.GenerateEd25519("did:example:alice", 1)
	require.NoError(t, err)

	out, err := Pack([]byte("payload"), []Signer{{KID: signer.KID, JWK: signer.Secret}})
	require.NoError(t, err)

	wrongSigner, err := resolvertest.GenerateEd25519("did:example:bob", 1)
	require.NoError(t, err)

	lookup := func(kid string) (*jwk.JWK, bool) { return wrongSigner.Public, true }

	_, _, _, err = Unpack(out, lookup)
	require.Error(t, err)
}

func TestPackRejectsEmptySigners(t *testing.T) {
	_, err := Pack([]byte("payload"), nil)
	require.Error(t, err)
}
