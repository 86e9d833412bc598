/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package didcommerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMalformedfIsKind(t *testing.T) {
	err := Malformedf("bad thing: %s", "reason")
	require.True(t, Is(err, Malformed))
	require.False(t, Is(err, Unsupported))
	require.Contains(t, err.Error(), "bad thing: reason")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(IOError, "read file", cause)

	require.True(t, Is(err, IOError))
	require.ErrorIs(t, err, cause)
}

func TestWrapNilCauseIsPlainError(t *testing.T) {
	err := Wrap(Malformed, "no cause", nil)
	require.Nil(t, err.Unwrap())
}

func TestIsFalseForNonTaxonomyError(t *testing.T) {
	require.False(t, Is(errors.New("plain"), Malformed))
}
