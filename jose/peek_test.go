/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectAnoncrypt(t *testing.T) {
	hdr := &ProtectedHeader{Alg: "ECDH-ES+A256KW", Enc: "A256GCM", APV: "apv"}
	env := &JWE{Ciphertext: "ct"}
	raw, err := SerializeJWE(hdr, env)
	require.NoError(t, err)

	kind, err := Detect(raw)
	require.NoError(t, err)
	require.Equal(t, KindAnoncrypt, kind)
}

func TestDetectAuthcrypt(t *testing.T) {
	hdr := &ProtectedHeader{Alg: "ECDH-1PU+A256KW", Enc: "A256CBC-HS512", APV: "apv"}
	env := &JWE{Ciphertext: "ct"}
	raw, err := SerializeJWE(hdr, env)
	require.NoError(t, err)

	kind, err := Detect(raw)
	require.NoError(t, err)
	require.Equal(t, KindAuthcrypt, kind)
}

func TestDetectJWS(t *testing.T) {
	raw := []byte(`{"payload":"AAAA","signatures":[{"protected":"AAAA","signature":"AAAA"}]}`)

	kind, err := Detect(raw)
	require.NoError(t, err)
	require.Equal(t, KindJWS, kind)
}

func TestDetectPlaintext(t *testing.T) {
	raw := []byte(`{"id":"1","typ":"application/didcomm-plain+json","type":"t","body":{}}`)

	kind, err := Detect(raw)
	require.NoError(t, err)
	require.Equal(t, KindPlaintext, kind)
}
