/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package message

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithToDedupesPreservingOrder(t *testing.T) {
	m := New("1", PlaintextTyp, "my-type", map[string]interface{}{"k": "v"})
	m.WithTo("did:example:b", "did:example:a", "did:example:b")

	require.Equal(t, []string{"did:example:b", "did:example:a"}, m.To)
}

func TestValidateRequiresTypAndBody(t *testing.T) {
	m := New("1", "wrong-typ", "t", map[string]interface{}{"k": "v"})
	require.Error(t, m.Validate())

	m2 := New("1", PlaintextTyp, "t", nil)
	require.Error(t, m2.Validate())

	m3 := New("1", PlaintextTyp, "t", map[string]interface{}{"k": "v"})
	require.NoError(t, m3.Validate())
}

func TestMarshalUnmarshalRoundTripsCustomHeaders(t *testing.T) {
	m := New("1", PlaintextTyp, "my-type", map[string]interface{}{"k": "v"})
	m.CustomHeaders = map[string]interface{}{"custom_field": "custom_value"}

	out, err := m.MarshalJSON()
	require.NoError(t, err)
	require.Contains(t, string(out), "custom_field")

	var roundTripped Message
	require.NoError(t, roundTripped.UnmarshalJSON(out))

	require.Equal(t, "1", roundTripped.ID)
	require.Equal(t, "custom_value", roundTripped.CustomHeaders["custom_field"])
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	var m Message
	require.Error(t, m.UnmarshalJSON([]byte("not json")))
}

func TestCloneIsIndependent(t *testing.T) {
	m := New("1", PlaintextTyp, "t", map[string]interface{}{"k": "v"}).WithTo("did:example:a")

	cloned, err := m.Clone()
	require.NoError(t, err)

	cloned.To[0] = "mutated"
	require.Equal(t, "did:example:a", m.To[0])
}

func TestDecodeBody(t *testing.T) {
	type body struct {
		Name string `mapstructure:"name"`
	}

	m := New("1", PlaintextTyp, "t", map[string]interface{}{"name": "alice"})

	var b body
	require.NoError(t, m.DecodeBody(&b))
	require.Equal(t, "alice", b.Name)
}
