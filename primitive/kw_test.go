/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package primitive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapUnwrapKeyRoundTrip(t *testing.T) {
	kek, err := GenerateCEK(32)
	require.NoError(t, err)

	cek, err := GenerateCEK(32)
	require.NoError(t, err)

	wrapped, err := WrapKey(kek, cek)
	require.NoError(t, err)
	require.Len(t, wrapped, len(cek)+8)

	unwrapped, err := UnwrapKey(kek, wrapped)
	require.NoError(t, err)
	require.Equal(t, cek, unwrapped)
}

func TestUnwrapKeyWithWrongKEKFails(t *testing.T) {
	kek, err := GenerateCEK(32)
	require.NoError(t, err)

	wrongKek, err := GenerateCEK(32)
	require.NoError(t, err)

	cek, err := GenerateCEK(32)
	require.NoError(t, err)

	wrapped, err := WrapKey(kek, cek)
	require.NoError(t, err)

	_, err = UnwrapKey(wrongKek, wrapped)
	require.Error(t, err)
}

func TestWrapKeyRejectsUnalignedLength(t *testing.T) {
	kek, err := GenerateCEK(32)
	require.NoError(t, err)

	_, err = WrapKey(kek, make([]byte, 7))
	require.Error(t, err)
}
