/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeParseJWSRoundTrip(t *testing.T) {
	protected, err := EncodeJWSProtectedHeader(&JWSProtectedHeader{Alg: "EdDSA", Typ: SignedTyp})
	require.NoError(t, err)

	jws := &JWS{
		Payload: StrictB64Encode([]byte(`{"id":"1"}`)),
		Signatures: []JWSSignature{{
			Protected: protected,
			Signature: StrictB64Encode([]byte("sigbytes")),
			Header:    JWSHeader{KID: "did:example:1#key-1"},
		}},
	}

	out, err := Serialize(jws)
	require.NoError(t, err)

	parsed, err := ParseJWS(out)
	require.NoError(t, err)

	payload, err := parsed.PayloadBytes()
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"1"}`, string(payload))

	hdr, err := parsed.SignatureProtectedHeader(parsed.Signatures[0])
	require.NoError(t, err)
	require.Equal(t, "EdDSA", hdr.Alg)
}

func TestParseJWSRejectsMissingSignatures(t *testing.T) {
	_, err := ParseJWS([]byte(`{"payload":"AAAA"}`))
	require.Error(t, err)
}
