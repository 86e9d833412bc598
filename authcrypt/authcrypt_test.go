/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package authcrypt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-didcomm-core/internal/resolvertest"
	"github.com/hyperledger/aries-didcomm-core/jwk"
	"github.com/hyperledger/aries-didcomm-core/metadata"
)

func TestPackUnpackRoundTripAuthenticatesSender(t *testing.T) {
	sender, err := resolvertest.GenerateX25519("did:example:alice", 1)
	require.NoError(t, err)

	recipient, err := resolvertest.GenerateX25519("did:example:bob", 1)
	require.NoError(t, err)

	recipients := []Recipient{{KID: recipient.KID, JWK: recipient.Public}}

	out, toKids, err := Pack([]byte(`{"hello":"world"}`), sender.KID, sender.Secret, recipients, metadata.A256cbcHs512Ecdh1puA256kw)
	require.NoError(t, err)
	require.Equal(t, []string{recipient.KID}, toKids)

	secretLookup := func(kid string) (*jwk.JWK, bool) {
		if kid == recipient.KID {
			return recipient.Secret, true
		}

		return nil, false
	}

	senderLookup := func(kid string) (*jwk.JWK, bool) {
		if kid == sender.KID {
			return sender.Public, true
		}

		return nil, false
	}

	pt, senderKID, gotToKids, alg, err := Unpack(out, secretLookup, senderLookup, false)
	require.NoError(t, err)
	require.JSONEq(t, `{"hello":"world"}`, string(pt))
	require.Equal(t, sender.KID, senderKID)
	require.Equal(t, []string{recipient.KID}, gotToKids)
	require.Equal(t, metadata.A256cbcHs512Ecdh1puA256kw, alg)
}

func TestUnpackFailsWhenSenderKeyUnresolvable(t *testing.T) {
	sender, err := resolvertest.GenerateX25519("did:example:alice", 1)
	require.NoError(t, err)

	recipient, err := resolvertest.GenerateX25519("did:example:bob", 1)
	require.NoError(t, err)

	recipients := []Recipient{{KID: recipient.KID, JWK: recipient.Public}}

	out, _, err := Pack([]byte("payload"), sender.KID, sender.Secret, recipients, metadata.A256cbcHs512Ecdh1puA256kw)
	require.NoError(t, err)

	secretLookup := func(kid string) (*jwk.JWK, bool) { return recipient.Secret, true }
	senderLookup := func(kid string) (*jwk.JWK, bool) { return nil, false }

	_, _, _, _, err = Unpack(out, secretLookup, senderLookup, false)
	require.Error(t, err)
}

func TestPackRejectsCurveFamilyMismatch(t *testing.T) {
	sender, err := resolvertest.GenerateX25519("did:example:alice", 1)
	require.NoError(t, err)

	recipient, err := resolvertest.GenerateP256("did:example:bob", 1)
	require.NoError(t, err)

	recipients := []Recipient{{KID: recipient.KID, JWK: recipient.Public}}

	_, _, err = Pack([]byte("payload"), sender.KID, sender.Secret, recipients, metadata.A256cbcHs512Ecdh1puA256kw)
	require.Error(t, err)
}
