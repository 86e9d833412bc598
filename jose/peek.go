/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"encoding/json"
	"strings"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
)

// EnvelopeKind classifies a raw wire string for the unpack state machine
// (spec §4.8), before committing to the stricter per-layer parse.
type EnvelopeKind string

// Envelope kinds the unpack orchestrator dispatches on.
const (
	KindAnoncrypt EnvelopeKind = "anoncrypt"
	KindAuthcrypt EnvelopeKind = "authcrypt"
	KindJWS       EnvelopeKind = "jws"
	KindPlaintext EnvelopeKind = "plaintext"
)

type probe struct {
	Protected  string          `json:"protected"`
	Ciphertext json.RawMessage `json:"ciphertext"`
	Payload    json.RawMessage `json:"payload"`
	Signatures json.RawMessage `json:"signatures"`
}

type probeHeader struct {
	Alg string `json:"alg"`
}

// Detect classifies raw as one of the four envelope kinds spec §4.8's state
// machine peels, without enforcing every field ParseJWE/ParseJWS require
// (those run once the kind is known).
func Detect(raw []byte) (EnvelopeKind, error) {
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return KindPlaintext, nil
	}

	switch {
	case p.Protected != "" && p.Ciphertext != nil:
		hdrBytes, err := StrictB64Decode("protected", p.Protected)
		if err != nil {
			return "", err
		}

		var hdr probeHeader
		if err := json.Unmarshal(hdrBytes, &hdr); err != nil {
			return "", didcommerr.Malformedf("unable parse protected header: %v", err)
		}

		switch {
		case strings.HasPrefix(hdr.Alg, "ECDH-1PU"):
			return KindAuthcrypt, nil
		case strings.HasPrefix(hdr.Alg, "ECDH-ES"):
			return KindAnoncrypt, nil
		default:
			return "", didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
		}
	case p.Payload != nil && p.Signatures != nil:
		return KindJWS, nil
	default:
		return KindPlaintext, nil
	}
}
