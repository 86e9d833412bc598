/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-didcomm-core/jwk"
)

func TestSerializeParseJWERoundTrip(t *testing.T) {
	hdr := &ProtectedHeader{
		Alg: "ECDH-ES+A256KW",
		Enc: "A256GCM",
		Typ: "application/didcomm-encrypted+json",
		APV: StrictB64Encode([]byte("apv-digest")),
		EPK: &jwk.JWK{Kty: "OKP", Crv: "X25519", X: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"},
	}

	env := &JWE{
		IV:         StrictB64Encode([]byte("0123456789ab")),
		Ciphertext: StrictB64Encode([]byte("ciphertext-bytes")),
		Tag:        StrictB64Encode([]byte("0123456789abcdef")),
		Recipients: []Recipient{{Header: RecipientHeader{KID: "did:example:1#key-1"}, EncryptedKey: StrictB64Encode([]byte("wrapped"))}},
	}

	out, err := SerializeJWE(hdr, env)
	require.NoError(t, err)

	parsedEnv, parsedHdr, err := ParseJWE(out)
	require.NoError(t, err)
	require.Equal(t, hdr.Alg, parsedHdr.Alg)
	require.Equal(t, hdr.Enc, parsedHdr.Enc)
	require.Equal(t, hdr.APV, parsedHdr.APV)
	require.Equal(t, env.Ciphertext, parsedEnv.Ciphertext)
}

func TestParseJWEMissingAPVIsSpecificError(t *testing.T) {
	hdr := &ProtectedHeader{Alg: "ECDH-ES+A256KW", Enc: "A256GCM"}
	env := &JWE{Ciphertext: StrictB64Encode([]byte("ct"))}

	out, err := SerializeJWE(hdr, env)
	require.NoError(t, err)

	_, _, err = ParseJWE(out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "apv")
}

func TestParseJWEMissingProtectedIsGenericError(t *testing.T) {
	_, _, err := ParseJWE([]byte(`{"ciphertext":"AAAA"}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Message is not a valid JWE, JWS or JWM")
}

func TestStrictB64DecodeRejectsPadded(t *testing.T) {
	_, err := StrictB64Decode("x", "AAAA====")
	require.Error(t, err)
}
