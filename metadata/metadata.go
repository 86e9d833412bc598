/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metadata holds the algorithm enums, options, and trust-metadata
// types spec §3/§6 define, kept dependency-free so every other package can
// import it without risking a cycle.
package metadata

// SignAlg enumerates the supported JWS signature algorithms.
type SignAlg string

// Recognized signature algorithms, per spec §3.
const (
	EdDSA  SignAlg = "EdDSA"
	ES256  SignAlg = "ES256"
	ES256K SignAlg = "ES256K"
)

// AuthCryptAlg enumerates the supported authcrypt enc/alg combinations.
type AuthCryptAlg string

// A256cbcHs512Ecdh1puA256kw is the sole authcrypt algorithm spec §3 defines.
const A256cbcHs512Ecdh1puA256kw AuthCryptAlg = "A256cbcHs512Ecdh1puA256kw"

// JOSEHeader returns the wire (alg, enc) pair for this AuthCryptAlg.
func (a AuthCryptAlg) JOSEHeader() (alg, enc string) {
	return "ECDH-1PU+A256KW", "A256CBC-HS512"
}

// AnonCryptAlg enumerates the supported anoncrypt enc/alg combinations.
type AnonCryptAlg string

// Recognized anoncrypt algorithms, per spec §3.
const (
	A256cbcHs512EcdhEsA256kw AnonCryptAlg = "A256cbcHs512EcdhEsA256kw"
	Xc20pEcdhEsA256kw        AnonCryptAlg = "Xc20pEcdhEsA256kw"
	A256gcmEcdhEsA256kw      AnonCryptAlg = "A256gcmEcdhEsA256kw"
)

// JOSEHeader returns the wire (alg, enc) pair for this AnonCryptAlg.
func (a AnonCryptAlg) JOSEHeader() (alg, enc string) {
	switch a {
	case Xc20pEcdhEsA256kw:
		return "ECDH-ES+A256KW", "XC20P"
	case A256gcmEcdhEsA256kw:
		return "ECDH-ES+A256KW", "A256GCM"
	default:
		return "ECDH-ES+A256KW", "A256CBC-HS512"
	}
}

// AnonCryptAlgFromEnc maps a wire "enc" value back to its AnonCryptAlg.
func AnonCryptAlgFromEnc(enc string) (AnonCryptAlg, bool) {
	switch enc {
	case "XC20P":
		return Xc20pEcdhEsA256kw, true
	case "A256GCM":
		return A256gcmEcdhEsA256kw, true
	case "A256CBC-HS512":
		return A256cbcHs512EcdhEsA256kw, true
	default:
		return "", false
	}
}

// UnpackMetadata accumulates trust metadata across the unpack peel loop
// (spec §3/§4.8: "booleans OR'd, enums set at the layer that introduced
// them").
type UnpackMetadata struct {
	Encrypted           bool
	Authenticated       bool
	NonRepudiation      bool
	AnonymousSender     bool
	ReWrappedInForward  bool
	EncryptedFromKid    string
	EncryptedToKids     []string
	SignFrom            string
	EncAlgAuth          AuthCryptAlg
	EncAlgAnon          AnonCryptAlg
	SignAlg             SignAlg
	SignedMessage       string
	FromPriorIssuerKid  string
	FromPriorJWS        string
}

// PackSignedMetadata is returned by didcomm.Core.PackSigned.
type PackSignedMetadata struct {
	SignFrom string
}

// MessagingServiceMetadata describes the service endpoint hint spec §9's
// "messaging_service" option resolves to, supplemented from
// original_source/ffi/src/message/pack_encrypted.rs.
type MessagingServiceMetadata struct {
	ServiceEndpoint string
	RoutingKeys     []string
}

// PackEncryptedMetadata is returned by didcomm.Core.PackEncrypted.
type PackEncryptedMetadata struct {
	FromKid          string
	ToKids           []string
	SignFrom         string
	MessagingService *MessagingServiceMetadata
}

// PackEncryptedOptions is spec §6's PackEncryptedOptions.
type PackEncryptedOptions struct {
	ProtectSender     bool
	Forward           bool
	ForwardHeaders    map[string]interface{}
	MessagingService  string
	EncAlgAuth        AuthCryptAlg
	EncAlgAnon        AnonCryptAlg
}

// DefaultPackEncryptedOptions returns the defaults spec §6 lists.
func DefaultPackEncryptedOptions() PackEncryptedOptions {
	return PackEncryptedOptions{
		Forward:    true,
		EncAlgAuth: A256cbcHs512Ecdh1puA256kw,
		EncAlgAnon: Xc20pEcdhEsA256kw,
	}
}

// UnpackOptions is spec §6's UnpackOptions.
type UnpackOptions struct {
	ExpectDecryptByAllKeys  bool
	UnwrapReWrappingForward bool
}
