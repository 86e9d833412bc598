/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package message implements the plaintext DIDComm message shape spec §3/§4.9
// define: required fields, the `to` set, attachment data variants, and the
// custom-header passthrough every real DIDComm message type relies on.
package message

import (
	"encoding/json"

	"github.com/jinzhu/copier"
	"github.com/mitchellh/mapstructure"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
)

// PlaintextTyp is the required `typ` value for an unencrypted, unsigned
// DIDComm message.
const PlaintextTyp = "application/didcomm-plain+json"

// reservedKeys are the known top-level fields; anything else round-trips
// through CustomHeaders.
var reservedKeys = map[string]bool{
	"id": true, "typ": true, "type": true, "body": true,
	"from": true, "to": true, "thid": true, "pthid": true,
	"created_time": true, "expires_time": true, "from_prior": true,
	"attachments": true,
}

// Message is the plaintext DIDComm application message, immutable after
// construction (spec §3's "Ownership & lifecycle").
type Message struct {
	ID            string                 `json:"-"`
	Typ           string                 `json:"-"`
	Type          string                 `json:"-"`
	Body          interface{}            `json:"-"`
	From          string                 `json:"-"`
	To            []string               `json:"-"`
	Thid          string                 `json:"-"`
	Pthid         string                 `json:"-"`
	CreatedTime   *int64                 `json:"-"`
	ExpiresTime   *int64                 `json:"-"`
	FromPrior     string                 `json:"-"`
	Attachments   []Attachment           `json:"-"`
	CustomHeaders map[string]interface{} `json:"-"`
}

// New builds a Message with the required fields set. It leaves To empty;
// WithTo sets the deduplicated `to` set spec §3's invariant calls for.
func New(id, typ, msgType string, body interface{}) *Message {
	return &Message{ID: id, Typ: typ, Type: msgType, Body: body}
}

// WithTo sets To, collapsing duplicates while preserving first-seen order.
func (m *Message) WithTo(to ...string) *Message {
	seen := make(map[string]bool, len(to))
	out := make([]string, 0, len(to))

	for _, d := range to {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}

	m.To = out

	return m
}

// Validate checks spec §3's required-field and attachment invariants.
func (m *Message) Validate() error {
	if m.ID == "" {
		return didcommerr.Malformedf("'id' is required")
	}

	if m.Typ != PlaintextTyp {
		return didcommerr.Malformedf("'typ' must be %q", PlaintextTyp)
	}

	if m.Type == "" {
		return didcommerr.Malformedf("'type' is required")
	}

	if m.Body == nil {
		return didcommerr.Malformedf("'body' is required")
	}

	for i := range m.Attachments {
		if err := m.Attachments[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// rawMessage is the JSON-on-the-wire shape, used internally by
// MarshalJSON/UnmarshalJSON to splice CustomHeaders in/out of the top level.
type rawMessage struct {
	ID          string       `json:"id"`
	Typ         string       `json:"typ"`
	Type        string       `json:"type"`
	Body        interface{}  `json:"body"`
	From        string       `json:"from,omitempty"`
	To          []string     `json:"to,omitempty"`
	Thid        string       `json:"thid,omitempty"`
	Pthid       string       `json:"pthid,omitempty"`
	CreatedTime *int64       `json:"created_time,omitempty"`
	ExpiresTime *int64       `json:"expires_time,omitempty"`
	FromPrior   string       `json:"from_prior,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// MarshalJSON flattens CustomHeaders alongside the known fields, the way a
// DIDComm message's free-form headers are expected to round-trip at the top
// level rather than nested under a sub-object.
func (m *Message) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(rawMessage{
		ID: m.ID, Typ: m.Typ, Type: m.Type, Body: m.Body,
		From: m.From, To: m.To, Thid: m.Thid, Pthid: m.Pthid,
		CreatedTime: m.CreatedTime, ExpiresTime: m.ExpiresTime,
		FromPrior: m.FromPrior, Attachments: m.Attachments,
	})
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.InvalidState, "marshal message", err)
	}

	if len(m.CustomHeaders) == 0 {
		return base, nil
	}

	var merged map[string]interface{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, didcommerr.Wrap(didcommerr.InvalidState, "marshal message", err)
	}

	for k, v := range m.CustomHeaders {
		if !reservedKeys[k] {
			merged[k] = v
		}
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.InvalidState, "marshal message", err)
	}

	return out, nil
}

// UnmarshalJSON splits known fields from free-form custom headers.
func (m *Message) UnmarshalJSON(b []byte) error {
	var rm rawMessage
	if err := json.Unmarshal(b, &rm); err != nil {
		return didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	var generic map[string]json.RawMessage
	if err := json.Unmarshal(b, &generic); err != nil {
		return didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	m.ID, m.Typ, m.Type, m.Body = rm.ID, rm.Typ, rm.Type, rm.Body
	m.From, m.To, m.Thid, m.Pthid = rm.From, rm.To, rm.Thid, rm.Pthid
	m.CreatedTime, m.ExpiresTime, m.FromPrior, m.Attachments = rm.CreatedTime, rm.ExpiresTime, rm.FromPrior, rm.Attachments

	custom := make(map[string]interface{})

	for k, v := range generic {
		if reservedKeys[k] {
			continue
		}

		var val interface{}
		if err := json.Unmarshal(v, &val); err != nil {
			return didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
		}

		custom[k] = val
	}

	if len(custom) > 0 {
		m.CustomHeaders = custom
	}

	return nil
}

// Clone returns a copy of m, used whenever the core hands back a Message
// built from resolver-borrowed or wire-parsed data (spec §3: "Unpack returns
// a newly owned Message... no reference to the input string survives").
// To and Attachments get their own backing arrays; Body, CustomHeaders and
// the slices inside each attachment's Data are shared with m.
func (m *Message) Clone() (*Message, error) {
	var out Message
	if err := copier.Copy(&out, m); err != nil {
		return nil, didcommerr.Wrap(didcommerr.InvalidState, "clone message", err)
	}

	out.To = append([]string(nil), m.To...)
	out.Attachments = append([]Attachment(nil), m.Attachments...)

	return &out, nil
}

// DecodeBody decodes m.Body into out using mapstructure, for callers that
// want a typed view of the otherwise-arbitrary body value.
func (m *Message) DecodeBody(out interface{}) error {
	if err := mapstructure.Decode(m.Body, out); err != nil {
		return didcommerr.Wrap(didcommerr.Malformed, "decode body", err)
	}

	return nil
}
