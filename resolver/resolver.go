/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package resolver declares the DID resolver and secrets resolver interfaces
// the packing core consumes. Implementations (static fixtures, network-backed
// clients) live outside this module; the core treats them as borrowed,
// read-only, concurrency-safe collaborators for the lifetime of a single
// pack/unpack call, per the spec's resource model.
package resolver

import "context"

// VerificationMethod is one entry in a DIDDoc's verificationMethod array.
type VerificationMethod struct {
	ID                 string
	Controller         string
	Type               string
	PublicKeyJWK       map[string]interface{}
	PublicKeyMultibase string
	PublicKeyBase58    string
}

// Service is one entry in a DIDDoc's service array.
type Service struct {
	ID              string
	Type            string
	ServiceEndpoint string
	RoutingKeys     []string
	Accept          []string
}

// DIDDoc is the subset of a resolved DID document this core cares about:
// the verification methods it can pick keys from, and the relationships
// (authentication vs keyAgreement) that classify them.
type DIDDoc struct {
	ID                 string
	VerificationMethod []VerificationMethod
	Authentication     []string
	KeyAgreement       []string
	Service            []Service
}

// FindVerificationMethod resolves a DID URL (kid) against this document's
// verificationMethod array, returning DIDUrlNotFound-shaped information via
// the boolean when absent (mapping to didcommerr.DIDUrlNotFound by the caller).
func (d *DIDDoc) FindVerificationMethod(kid string) (*VerificationMethod, bool) {
	for i := range d.VerificationMethod {
		if d.VerificationMethod[i].ID == kid {
			return &d.VerificationMethod[i], true
		}
	}

	return nil, false
}

// Secret is a private key held by the local secrets resolver.
type Secret struct {
	ID            string
	Type          string
	PrivateKeyJWK map[string]interface{}
}

// DIDResolver resolves a DID to its DIDDoc. A nil DIDDoc with a nil error
// means the DID is unknown (spec: "returns None when unknown"); implementations
// must be safe for concurrent use by independent pack/unpack calls.
type DIDResolver interface {
	Resolve(ctx context.Context, did string) (*DIDDoc, error)
}

// SecretsResolver looks up locally-held private key material by kid.
// GetSecret returns a nil Secret and nil error when the kid is not held.
type SecretsResolver interface {
	GetSecret(ctx context.Context, kid string) (*Secret, error)
	FindSecrets(ctx context.Context, kids []string) ([]string, error)
}
