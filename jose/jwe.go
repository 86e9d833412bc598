/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jose serializes and parses the JWE/JWS JSON general-serialization
// structures spec §3/§4.2 define, strictly base64url (no padding) decoding
// every field and separating structural validation from cryptographic
// validation, as the spec's codec contract requires. It deliberately does
// not depend on a general-purpose JOSE library: the wire shape here mixes
// standard RFC 7516 fields with DIDComm-specific ones (skid, apu, apv,
// ECDH-1PU) no off-the-shelf JWE library models, so this codec is the
// "hard part" spec.md §1 calls out as core, hand-written the way the
// teacher's authcrypt/legacy packages hand-write their own envelope structs
// (see Envelope/Recipient in the teacher's jwe/authcrypt package).
package jose

import (
	"encoding/base64"
	"encoding/json"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
	"github.com/hyperledger/aries-didcomm-core/jwk"
)

// JWE is the general-serialization JWE object spec §3 defines.
type JWE struct {
	Protected  string      `json:"protected"`
	Recipients []Recipient `json:"recipients"`
	IV         string      `json:"iv,omitempty"`
	Ciphertext string      `json:"ciphertext"`
	Tag        string      `json:"tag,omitempty"`
}

// Recipient is one entry of a JWE's recipients array.
type Recipient struct {
	Header       RecipientHeader `json:"header"`
	EncryptedKey string          `json:"encrypted_key"`
}

// RecipientHeader carries the per-recipient kid.
type RecipientHeader struct {
	KID string `json:"kid,omitempty"`
}

// ProtectedHeader is the JWE protected header, decoded from JWE.Protected.
// apu/apv/skid are populated for authcrypt/anoncrypt per spec §3.
type ProtectedHeader struct {
	Alg  string   `json:"alg"`
	Enc  string   `json:"enc"`
	Typ  string   `json:"typ,omitempty"`
	APV  string   `json:"apv,omitempty"`
	APU  string   `json:"apu,omitempty"`
	SKID string   `json:"skid,omitempty"`
	EPK  *jwk.JWK `json:"epk,omitempty"`
}

// StrictB64Decode decodes strict (unpadded) base64url, per spec §4.2.
func StrictB64Decode(field, s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.Malformed, "decode "+field, err)
	}

	return b, nil
}

// StrictB64Encode encodes strict (unpadded) base64url.
func StrictB64Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// ParseJWE decodes the outer JWE JSON object and its protected header,
// surfacing spec §4.2's anti-oracle error: a missing protected, ciphertext,
// alg or enc maps to the single generic message so callers can't fingerprint
// which layer rejected crafted input. A missing apv is reported with its own
// "missing field 'apv'" message.
func ParseJWE(raw []byte) (*JWE, *ProtectedHeader, error) {
	var env JWE
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, nil, didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	if env.Protected == "" || env.Ciphertext == "" {
		return nil, nil, didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	protectedBytes, err := StrictB64Decode("protected", env.Protected)
	if err != nil {
		return nil, nil, err
	}

	var hdr ProtectedHeader
	if err := json.Unmarshal(protectedBytes, &hdr); err != nil {
		return nil, nil, didcommerr.Malformedf("unable parse protected header: %v", err)
	}

	if hdr.Alg == "" || hdr.Enc == "" {
		return nil, nil, didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
	}

	if hdr.APV == "" {
		return nil, nil, didcommerr.Malformedf("unable parse protected header: missing field 'apv' in JWE protected header")
	}

	return &env, &hdr, nil
}

// EncodeProtectedHeader returns the base64url-encoded protected header, the
// exact bytes spec §4.3 mandates as AAD for A256GCM/XC20P content
// encryption ("AAD = ASCII bytes of protected").
func EncodeProtectedHeader(hdr *ProtectedHeader) (string, error) {
	hdrBytes, err := json.Marshal(hdr)
	if err != nil {
		return "", didcommerr.Wrap(didcommerr.InvalidState, "marshal protected header", err)
	}

	return StrictB64Encode(hdrBytes), nil
}

// SerializeJWE marshals hdr and env into the wire bytes for a general JWE,
// setting env.Protected from hdr first.
func SerializeJWE(hdr *ProtectedHeader, env *JWE) ([]byte, error) {
	protected, err := EncodeProtectedHeader(hdr)
	if err != nil {
		return nil, err
	}

	env.Protected = protected

	out, err := json.Marshal(env)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.InvalidState, "marshal JWE", err)
	}

	return out, nil
}

// IVBytes decodes the JWE's iv field.
func (j *JWE) IVBytes() ([]byte, error) { return StrictB64Decode("iv", j.IV) }

// CiphertextBytes decodes the JWE's ciphertext field.
func (j *JWE) CiphertextBytes() ([]byte, error) { return StrictB64Decode("ciphertext", j.Ciphertext) }

// TagBytes decodes the JWE's tag field.
func (j *JWE) TagBytes() ([]byte, error) { return StrictB64Decode("tag", j.Tag) }
