/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resolvertest

import (
	"github.com/hyperledger/aries-didcomm-core/resolver"
)

func jwkToMap(k *KeyPair, withY bool) map[string]interface{} {
	m := map[string]interface{}{
		"kty": k.Public.Kty,
		"crv": k.Public.Crv,
		"x":   k.Public.X,
	}

	if withY {
		m["y"] = k.Public.Y
	}

	return m
}

// BuildDoc assembles a minimal DIDDoc advertising authKeys under
// authentication and agreeKeys under keyAgreement, the shape PackEncrypted/
// Unpack's resolver-facing code expects.
func BuildDoc(did string, authKeys, agreeKeys []*KeyPair) *resolver.DIDDoc {
	doc := &resolver.DIDDoc{ID: did}

	for _, k := range authKeys {
		withY := k.Public.Crv != "Ed25519"
		doc.VerificationMethod = append(doc.VerificationMethod, resolver.VerificationMethod{
			ID: k.KID, Controller: did, Type: "JsonWebKey2020", PublicKeyJWK: jwkToMap(k, withY),
		})
		doc.Authentication = append(doc.Authentication, k.KID)
	}

	for _, k := range agreeKeys {
		withY := k.Public.Crv != "X25519"
		doc.VerificationMethod = append(doc.VerificationMethod, resolver.VerificationMethod{
			ID: k.KID, Controller: did, Type: "JsonWebKey2020", PublicKeyJWK: jwkToMap(k, withY),
		})
		doc.KeyAgreement = append(doc.KeyAgreement, k.KID)
	}

	return doc
}

// BuildSecrets collects KeyPairs into a StaticSecretsResolver.
func BuildSecrets(keys ...*KeyPair) *StaticSecretsResolver {
	s := &StaticSecretsResolver{Secrets: map[string]*resolver.Secret{}}

	for _, k := range keys {
		m := map[string]interface{}{
			"kty": k.Secret.Kty,
			"crv": k.Secret.Crv,
			"x":   k.Secret.X,
			"d":   k.Secret.D,
		}

		if k.Secret.Y != "" {
			m["y"] = k.Secret.Y
		}

		s.Secrets[k.KID] = &resolver.Secret{ID: k.KID, Type: "JsonWebKey2020", PrivateKeyJWK: m}
	}

	return s
}
