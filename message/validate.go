/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package message

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
)

// plaintextSchema supplements the hand-written field checks in Validate
// with a structural JSON-schema pass (required fields, `to` as an array,
// `attachments` as an array of objects), the way a defense-in-depth input
// layer commonly backstops hand-rolled validation in the retrieval pack's
// JSON-heavy services.
const plaintextSchema = `{
  "type": "object",
  "required": ["id", "typ", "type", "body"],
  "properties": {
    "id": {"type": "string"},
    "typ": {"type": "string"},
    "type": {"type": "string"},
    "to": {"type": "array", "items": {"type": "string"}},
    "attachments": {"type": "array", "items": {"type": "object", "required": ["id", "data"]}}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(plaintextSchema)

// ValidatePlaintext decodes raw as a plaintext Message and validates it,
// mapping JSON parse and schema failures to the single generic message
// spec §4.9/§7 mandate ("Message is not a valid JWE, JWS or JWM"), so
// callers cannot distinguish which layer rejected a crafted input. Malformed
// errors from Message.Validate's field checks (such as the 'typ' check) are
// returned with their own message.
func ValidatePlaintext(raw []byte) (*Message, error) {
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(generic))
	if err != nil || (result != nil && !result.Valid()) {
		return nil, didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	if err := m.Validate(); err != nil {
		if derr, ok := err.(*didcommerr.Error); ok && derr.Kind == didcommerr.Malformed {
			return nil, err
		}

		return nil, didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	return &m, nil
}
