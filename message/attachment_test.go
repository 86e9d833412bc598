/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttachmentValidateRequiresID(t *testing.T) {
	a := &Attachment{Data: AttachmentData{Base64: "AAAA"}}
	require.Error(t, a.Validate())
}

func TestAttachmentValidateExactlyOneVariant(t *testing.T) {
	none := &Attachment{ID: "a1"}
	require.Error(t, none.Validate())

	both := &Attachment{ID: "a1", Data: AttachmentData{Base64: "AAAA", JSON: json.RawMessage(`{}`)}}
	require.Error(t, both.Validate())

	base64Only := &Attachment{ID: "a1", Data: AttachmentData{Base64: "AAAA"}}
	require.NoError(t, base64Only.Validate())
}

func TestAttachmentValidateLinksRequiresHash(t *testing.T) {
	linksNoHash := &Attachment{ID: "a1", Data: AttachmentData{Links: []string{"https://example.com/a"}}}
	require.Error(t, linksNoHash.Validate())

	linksWithHash := &Attachment{ID: "a1", Data: AttachmentData{Links: []string{"https://example.com/a"}, Hash: "sha256-abc"}}
	require.NoError(t, linksWithHash.Validate())
}

func TestVariantClassification(t *testing.T) {
	require.Equal(t, VariantBase64, (&AttachmentData{Base64: "AAAA"}).Variant())
	require.Equal(t, VariantJSON, (&AttachmentData{JSON: json.RawMessage(`{}`)}).Variant())
	require.Equal(t, VariantLinks, (&AttachmentData{Links: []string{"l"}}).Variant())
	require.Equal(t, VariantNone, (&AttachmentData{}).Variant())
}
