/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package anoncrypt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-didcomm-core/internal/resolvertest"
	"github.com/hyperledger/aries-didcomm-core/jwk"
	"github.com/hyperledger/aries-didcomm-core/metadata"
)

func TestPackUnpackRoundTripX25519(t *testing.T) {
	recipient, err := resolvertest.GenerateX25519("did:example:bob", 1)
	require.NoError(t, err)

	recipients := []Recipient{{KID: recipient.KID, JWK: recipient.Public}}

	out, toKids, err := Pack([]byte(`{"hello":"world"}`), recipients, metadata.Xc20pEcdhEsA256kw)
	require.NoError(t, err)
	require.Equal(t, []string{recipient.KID}, toKids)

	lookup := func(kid string) (*jwk.JWK, bool) {
		if kid == recipient.KID {
			return recipient.Secret, true
		}

		return nil, false
	}

	pt, gotToKids, alg, err := Unpack(out, lookup, false)
	require.NoError(t, err)
	require.JSONEq(t, `{"hello":"world"}`, string(pt))
	require.Equal(t, []string{recipient.KID}, gotToKids)
	require.Equal(t, metadata.Xc20pEcdhEsA256kw, alg)
}

func TestPackUnpackRoundTripMultipleRecipientsP256(t *testing.T) {
	r1, err := resolvertest.GenerateP256("did:example:bob", 1)
	require.NoError(t, err)

	r2, err := resolvertest.GenerateP256("did:example:carol", 1)
	require.NoError(t, err)

	recipients := []Recipient{{KID: r1.KID, JWK: r1.Public}, {KID: r2.KID, JWK: r2.Public}}

	out, _, err := Pack([]byte("payload"), recipients, metadata.A256gcmEcdhEsA256kw)
	require.NoError(t, err)

	lookup := func(kid string) (*jwk.JWK, bool) {
		switch kid {
		case r1.KID:
			return r1.Secret, true
		case r2.KID:
			return r2.Secret, true
		default:
			return nil, false
		}
	}

	pt, _, _, err := Unpack(out, lookup, true)
	require.NoError(t, err)
	require.Equal(t, "payload", string(pt))
}

func TestUnpackFailsWithNoMatchingSecret(t *testing.T) {
	recipient, err := resolvertest.GenerateX25519("did:example:bob", 1)
	require.NoError(t, err)

	recipients := []Recipient{{KID: recipient.KID, JWK: recipient.Public}}

	out, _, err := Pack([]byte("payload"), recipients, metadata.Xc20pEcdhEsA256kw)
	require.NoError(t, err)

	lookup := func(kid string) (*jwk.JWK, bool) { return nil, false }

	_, _, _, err = Unpack(out, lookup, false)
	require.Error(t, err)
}

func TestPackRejectsMixedCurveFamilies(t *testing.T) {
	x25519Recipient, err := resolvertest.GenerateX25519("did:example:bob", 1)
	require.NoError(t, err)

	p256Recipient, err := resolvertest.GenerateP256("did:example:carol", 1)
	require.NoError(t, err)

	recipients := []Recipient{
		{KID: x25519Recipient.KID, JWK: x25519Recipient.Public},
		{KID: p256Recipient.KID, JWK: p256Recipient.Public},
	}

	_, _, err = Pack([]byte("payload"), recipients, metadata.Xc20pEcdhEsA256kw)
	require.Error(t, err)
}

func TestPackRejectsEmptyRecipients(t *testing.T) {
	_, _, err := Pack([]byte("payload"), nil, metadata.Xc20pEcdhEsA256kw)
	require.Error(t, err)
}
