/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"encoding/json"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
)

// JWS is the general-serialization JWS object spec §3 defines.
type JWS struct {
	Payload    string         `json:"payload"`
	Signatures []JWSSignature `json:"signatures"`
}

// JWSSignature is one signature entry of a JWS's signatures array.
type JWSSignature struct {
	Protected string    `json:"protected"`
	Signature string    `json:"signature"`
	Header    JWSHeader `json:"header,omitempty"`
}

// JWSHeader carries the per-signature kid.
type JWSHeader struct {
	KID string `json:"kid,omitempty"`
}

// JWSProtectedHeader is the per-signature protected header.
type JWSProtectedHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ,omitempty"`
}

// PlaintextTyp and SignedTyp are the typ values spec §3/§4.6 mandate.
const (
	PlaintextTyp = "application/didcomm-plain+json"
	SignedTyp    = "application/didcomm-signed+json"
)

// ParseJWS decodes a general-serialization JWS, surfacing the anti-oracle
// generic Malformed message on any structural problem.
func ParseJWS(raw []byte) (*JWS, error) {
	var jws JWS
	if err := json.Unmarshal(raw, &jws); err != nil {
		return nil, didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	if jws.Payload == "" || len(jws.Signatures) == 0 {
		return nil, didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	for _, sig := range jws.Signatures {
		if sig.Protected == "" || sig.Signature == "" {
			return nil, didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
		}
	}

	return &jws, nil
}

// SignatureProtectedHeader decodes one signature's protected header.
func (j *JWS) SignatureProtectedHeader(sig JWSSignature) (*JWSProtectedHeader, error) {
	b, err := StrictB64Decode("protected", sig.Protected)
	if err != nil {
		return nil, err
	}

	var hdr JWSProtectedHeader
	if err := json.Unmarshal(b, &hdr); err != nil {
		return nil, didcommerr.Malformedf("unable parse protected header: %v", err)
	}

	return &hdr, nil
}

// EncodeJWSProtectedHeader returns the base64url-encoded per-signature
// protected header, the left half of the signing input "protected.payload".
func EncodeJWSProtectedHeader(hdr *JWSProtectedHeader) (string, error) {
	b, err := json.Marshal(hdr)
	if err != nil {
		return "", didcommerr.Wrap(didcommerr.InvalidState, "marshal JWS protected header", err)
	}

	return StrictB64Encode(b), nil
}

// PayloadBytes decodes the JWS payload.
func (j *JWS) PayloadBytes() ([]byte, error) {
	return StrictB64Decode("payload", j.Payload)
}

// Serialize marshals a JWS to wire bytes.
func Serialize(jws *JWS) ([]byte, error) {
	out, err := json.Marshal(jws)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.InvalidState, "marshal JWS", err)
	}

	return out, nil
}
