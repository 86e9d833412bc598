/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package message

import (
	"encoding/json"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
)

// Attachment is one entry of a Message's attachments sequence (spec §3).
type Attachment struct {
	ID          string          `json:"id"`
	Description string          `json:"description,omitempty"`
	Filename    string          `json:"filename,omitempty"`
	MediaType   string          `json:"media_type,omitempty"`
	Format      string          `json:"format,omitempty"`
	LastmodTime *int64          `json:"lastmod_time,omitempty"`
	ByteCount   *int64          `json:"byte_count,omitempty"`
	Data        AttachmentData  `json:"data"`
}

// AttachmentData is the tagged sum of the three mutually-exclusive data
// variants spec §3 defines (Base64, Json, Links), modeled as a flat struct
// with shared optional fields per the spec §9 design note ("not through
// inheritance").
type AttachmentData struct {
	Base64 string          `json:"base64,omitempty"`
	JSON   json.RawMessage `json:"json,omitempty"`
	Links  []string        `json:"links,omitempty"`
	Hash   string          `json:"hash,omitempty"`
	JWS    json.RawMessage `json:"jws,omitempty"`
}

// Variant identifies which of the three data shapes is populated.
type Variant int

// Attachment data variants.
const (
	VariantNone Variant = iota
	VariantBase64
	VariantJSON
	VariantLinks
)

// Variant classifies which data shape is set, or VariantNone if none is.
func (d *AttachmentData) Variant() Variant {
	switch {
	case d.Base64 != "":
		return VariantBase64
	case len(d.JSON) > 0:
		return VariantJSON
	case len(d.Links) > 0:
		return VariantLinks
	default:
		return VariantNone
	}
}

// Validate enforces spec §3's "exactly one of three data variants" and the
// Links variant's hash/non-empty-links requirement.
func (a *Attachment) Validate() error {
	if a.ID == "" {
		return didcommerr.Malformedf("attachment is missing 'id'")
	}

	set := 0
	if a.Data.Base64 != "" {
		set++
	}

	if len(a.Data.JSON) > 0 {
		set++
	}

	if len(a.Data.Links) > 0 || a.Data.Hash != "" {
		set++
	}

	if set != 1 {
		return didcommerr.Malformedf("attachment %q must have exactly one data variant", a.ID)
	}

	if len(a.Data.Links) > 0 && a.Data.Hash == "" {
		return didcommerr.Malformedf("attachment %q: links variant requires 'hash'", a.ID)
	}

	if a.Data.Hash != "" && len(a.Data.Links) == 0 {
		return didcommerr.Malformedf("attachment %q: links variant requires a non-empty 'links'", a.ID)
	}

	return nil
}
