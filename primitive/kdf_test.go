/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package primitive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcatKDFIsDeterministic(t *testing.T) {
	z := []byte("shared-secret-bytes")

	k1, err := ConcatKDF(z, []byte("ECDH-ES+A256KW"), nil, []byte("apv"), 256, 32)
	require.NoError(t, err)

	k2, err := ConcatKDF(z, []byte("ECDH-ES+A256KW"), nil, []byte("apv"), 256, 32)
	require.NoError(t, err)

	require.Equal(t, k1, k2)
	require.Len(t, k1, 32)
}

func TestConcatKDFDifferentAPVDiffers(t *testing.T) {
	z := []byte("shared-secret-bytes")

	k1, err := ConcatKDF(z, []byte("alg"), nil, []byte("apv-a"), 256, 32)
	require.NoError(t, err)

	k2, err := ConcatKDF(z, []byte("alg"), nil, []byte("apv-b"), 256, 32)
	require.NoError(t, err)

	require.NotEqual(t, k1, k2)
}

func TestConcatKDFRejectsNonPositiveLength(t *testing.T) {
	_, err := ConcatKDF([]byte("z"), []byte("alg"), nil, nil, 0, 0)
	require.Error(t, err)
}

func TestSHA256SumMatchesLength(t *testing.T) {
	sum := SHA256Sum([]byte("hello"))
	require.Len(t, sum, 32)
}
