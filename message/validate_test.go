/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package message

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePlaintextAcceptsWellFormedMessage(t *testing.T) {
	raw := []byte(`{"id":"1","typ":"application/didcomm-plain+json","type":"https://example.com/protocol/1.0/ping","body":{}}`)

	m, err := ValidatePlaintext(raw)
	require.NoError(t, err)
	require.Equal(t, "1", m.ID)
}

func TestValidatePlaintextRejectsMissingID(t *testing.T) {
	raw := []byte(`{"typ":"application/didcomm-plain+json","type":"t","body":{}}`)

	_, err := ValidatePlaintext(raw)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Message is not a valid JWE, JWS or JWM")
}

func TestValidatePlaintextRejectsGarbage(t *testing.T) {
	_, err := ValidatePlaintext([]byte("not json at all"))
	require.Error(t, err)
}

func TestValidatePlaintextRejectsWrongTyp(t *testing.T) {
	raw := []byte(`{"id":"1","typ":"application/json","type":"t","body":{}}`)

	_, err := ValidatePlaintext(raw)
	require.Error(t, err)
}
