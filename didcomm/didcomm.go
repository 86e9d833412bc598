/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package didcomm is the public facade spec §6 defines: PackPlaintext,
// PackSigned, PackEncrypted and Unpack, composing the sign/authcrypt/anoncrypt
// engines per spec §4.7's pack orchestration and §4.8's unpack state machine.
package didcomm

import (
	"context"
	"strings"

	"github.com/hyperledger/aries-didcomm-core/anoncrypt"
	"github.com/hyperledger/aries-didcomm-core/authcrypt"
	"github.com/hyperledger/aries-didcomm-core/didcommerr"
	"github.com/hyperledger/aries-didcomm-core/jose"
	"github.com/hyperledger/aries-didcomm-core/jwk"
	"github.com/hyperledger/aries-didcomm-core/message"
	"github.com/hyperledger/aries-didcomm-core/metadata"
	"github.com/hyperledger/aries-didcomm-core/resolver"
	"github.com/hyperledger/aries-didcomm-core/sign"
)

// ForwardTyp is the routing Forward message type spec §9's supplemented
// "re_wrapped_in_forward" detection matches against.
const ForwardTyp = "https://didcomm.org/routing/2.0/forward"

// Core is the facade over a DID resolver and a secrets resolver, the way the
// teacher's packager wires a DID resolver and a KMS into one entry point.
type Core struct {
	Resolver resolver.DIDResolver
	Secrets  resolver.SecretsResolver
}

// New builds a Core over the given resolvers.
func New(r resolver.DIDResolver, s resolver.SecretsResolver) *Core {
	return &Core{Resolver: r, Secrets: s}
}

func didOf(kidOrDID string) string {
	if i := strings.Index(kidOrDID, "#"); i >= 0 {
		return kidOrDID[:i]
	}

	return kidOrDID
}

// PackPlaintext validates msg and serializes it to wire bytes, unsigned and
// unencrypted, per spec §4.1/§6.
func (c *Core) PackPlaintext(msg *message.Message) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg.MarshalJSON()
}

// resolveSecretKey loads a locally-held secret by kid and normalizes it to a
// JWK, failing SecretNotFound when absent.
func (c *Core) resolveSecretKey(ctx context.Context, kid string) (*jwk.JWK, error) {
	secret, err := c.Secrets.GetSecret(ctx, kid)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.IOError, "get secret", err)
	}

	if secret == nil {
		return nil, didcommerr.New(didcommerr.SecretNotFound, "no secret for kid "+kid)
	}

	return jwk.FromSecret(*secret)
}

// resolvePublicKey resolves kid's DID document and returns the verification
// method named by kid, normalized to a public JWK.
func (c *Core) resolvePublicKey(ctx context.Context, kid string) (*jwk.JWK, error) {
	doc, err := c.Resolver.Resolve(ctx, didOf(kid))
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.IOError, "resolve DID", err)
	}

	if doc == nil {
		return nil, didcommerr.New(didcommerr.DIDNotResolved, "DID "+didOf(kid)+" did not resolve")
	}

	vm, ok := doc.FindVerificationMethod(kid)
	if !ok {
		return nil, didcommerr.New(didcommerr.DIDUrlNotFound, "kid "+kid+" not found in DID document")
	}

	return jwk.FromVerificationMethod(*vm)
}

// keyAgreementKIDs returns the keyAgreement verification method ids a
// resolved DID document advertises.
func (c *Core) keyAgreementKIDs(ctx context.Context, did string) (*resolver.DIDDoc, []string, error) {
	doc, err := c.Resolver.Resolve(ctx, did)
	if err != nil {
		return nil, nil, didcommerr.Wrap(didcommerr.IOError, "resolve DID", err)
	}

	if doc == nil {
		return nil, nil, didcommerr.New(didcommerr.DIDNotResolved, "DID "+did+" did not resolve")
	}

	return doc, doc.KeyAgreement, nil
}

// recipientsFor resolves the key-agreement public JWKs for each "to" entry: a
// DID URL names exactly one key, a bare DID contributes every keyAgreement
// verification method it advertises, grouped to a single curve family (spec
// §4.4). preferFamily, when non-empty, restricts selection to that family.
func (c *Core) recipientsFor(ctx context.Context, to []string, preferFamily string) ([]anoncrypt.Recipient, string, error) {
	var out []anoncrypt.Recipient

	family := preferFamily

	for _, t := range to {
		var kids []string

		if strings.Contains(t, "#") {
			kids = []string{t}
		} else {
			_, kaKids, err := c.keyAgreementKIDs(ctx, t)
			if err != nil {
				return nil, "", err
			}

			if len(kaKids) == 0 {
				return nil, "", didcommerr.New(didcommerr.DIDUrlNotFound, "DID "+t+" advertises no keyAgreement keys")
			}

			kids = kaKids
		}

		for _, kid := range kids {
			pub, err := c.resolvePublicKey(ctx, kid)
			if err != nil {
				return nil, "", err
			}

			crv, err := pub.Curve()
			if err != nil {
				return nil, "", err
			}

			if !crv.IsKeyAgreementCapable() {
				continue
			}

			if family == "" {
				family = crv.Family()
			}

			if crv.Family() != family {
				continue
			}

			out = append(out, anoncrypt.Recipient{KID: kid, JWK: pub})
		}
	}

	if len(out) == 0 {
		return nil, "", didcommerr.Malformedf("no recipient advertises a compatible keyAgreement key")
	}

	return out, family, nil
}

// PackSigned serializes msg to plaintext bytes and wraps it in a JWS signed
// by signFrom, per spec §4.6/§6.
func (c *Core) PackSigned(ctx context.Context, msg *message.Message, signFrom string) ([]byte, metadata.PackSignedMetadata, error) {
	plaintext, err := c.PackPlaintext(msg)
	if err != nil {
		return nil, metadata.PackSignedMetadata{}, err
	}

	signerKey, err := c.resolveSecretKey(ctx, signFrom)
	if err != nil {
		return nil, metadata.PackSignedMetadata{}, err
	}

	out, err := sign.Pack(plaintext, []sign.Signer{{KID: signFrom, JWK: signerKey}})
	if err != nil {
		return nil, metadata.PackSignedMetadata{}, err
	}

	return out, metadata.PackSignedMetadata{SignFrom: signFrom}, nil
}

// PackEncrypted composes sign (optional) -> authcrypt-or-anoncrypt ->
// optional outer anoncrypt (protect_sender), per spec §4.7.
func (c *Core) PackEncrypted(
	ctx context.Context,
	msg *message.Message,
	to []string,
	from string,
	signFrom string,
	opts metadata.PackEncryptedOptions,
) ([]byte, metadata.PackEncryptedMetadata, error) {
	payload, err := c.PackPlaintext(msg)
	if err != nil {
		return nil, metadata.PackEncryptedMetadata{}, err
	}

	if signFrom != "" {
		payload, _, err = c.PackSigned(ctx, msg, signFrom)
		if err != nil {
			return nil, metadata.PackEncryptedMetadata{}, err
		}
	}

	var (
		senderFamily string
		out          []byte
		toKids       []string
	)

	if from != "" {
		senderKey, err := c.resolveSecretKey(ctx, from)
		if err != nil {
			return nil, metadata.PackEncryptedMetadata{}, err
		}

		crv, err := senderKey.Curve()
		if err != nil {
			return nil, metadata.PackEncryptedMetadata{}, err
		}

		senderFamily = crv.Family()

		recipients, _, err := c.recipientsFor(ctx, to, senderFamily)
		if err != nil {
			return nil, metadata.PackEncryptedMetadata{}, err
		}

		authRecipients := make([]authcrypt.Recipient, len(recipients))
		for i, r := range recipients {
			authRecipients[i] = authcrypt.Recipient{KID: r.KID, JWK: r.JWK}
		}

		out, toKids, err = authcrypt.Pack(payload, from, senderKey, authRecipients, opts.EncAlgAuth)
		if err != nil {
			return nil, metadata.PackEncryptedMetadata{}, err
		}

		if opts.ProtectSender {
			outerRecipients, _, err := c.recipientsFor(ctx, to, "")
			if err != nil {
				return nil, metadata.PackEncryptedMetadata{}, err
			}

			out, _, err = anoncrypt.Pack(out, outerRecipients, opts.EncAlgAnon)
			if err != nil {
				return nil, metadata.PackEncryptedMetadata{}, err
			}
		}
	} else {
		recipients, _, err := c.recipientsFor(ctx, to, "")
		if err != nil {
			return nil, metadata.PackEncryptedMetadata{}, err
		}

		out, toKids, err = anoncrypt.Pack(payload, recipients, opts.EncAlgAnon)
		if err != nil {
			return nil, metadata.PackEncryptedMetadata{}, err
		}
	}

	md := metadata.PackEncryptedMetadata{
		FromKid:  from,
		ToKids:   toKids,
		SignFrom: signFrom,
	}

	if opts.MessagingService != "" {
		if svc, ok := c.resolveService(ctx, opts.MessagingService); ok {
			md.MessagingService = svc
		}
	}

	return out, md, nil
}

func (c *Core) resolveService(ctx context.Context, serviceID string) (*metadata.MessagingServiceMetadata, bool) {
	doc, err := c.Resolver.Resolve(ctx, didOf(serviceID))
	if err != nil || doc == nil {
		return nil, false
	}

	for _, svc := range doc.Service {
		if svc.ID == serviceID && svc.Type == "DIDCommMessaging" {
			return &metadata.MessagingServiceMetadata{
				ServiceEndpoint: svc.ServiceEndpoint,
				RoutingKeys:     svc.RoutingKeys,
			}, true
		}
	}

	return nil, false
}

// Unpack runs spec §4.8's peel loop: detect the outer envelope kind and peel
// anoncrypt/authcrypt/JWS layers until a plaintext JWM is reached, accumulating
// UnpackMetadata at the layer that introduces each fact.
func (c *Core) Unpack(ctx context.Context, raw []byte, opts metadata.UnpackOptions) (*message.Message, metadata.UnpackMetadata, error) {
	var md metadata.UnpackMetadata

	if opts.UnwrapReWrappingForward {
		return nil, md, didcommerr.Unsupportedf("Forward unwrapping is unsupported by this version")
	}

	cur := raw

	for {
		kind, err := jose.Detect(cur)
		if err != nil {
			return nil, md, err
		}

		switch kind {
		case jose.KindAnoncrypt:
			pt, toKids, alg, err := anoncrypt.Unpack(cur, c.anonSecretLookup(ctx), opts.ExpectDecryptByAllKeys)
			if err != nil {
				return nil, md, err
			}

			md.Encrypted = true
			md.AnonymousSender = true
			md.EncryptedToKids = toKids
			md.EncAlgAnon = alg
			cur = pt

		case jose.KindAuthcrypt:
			pt, senderKID, toKids, alg, err := authcrypt.Unpack(cur, c.anonSecretLookup(ctx), c.authSenderLookup(ctx), opts.ExpectDecryptByAllKeys)
			if err != nil {
				return nil, md, err
			}

			md.Encrypted = true
			md.Authenticated = true
			md.EncryptedFromKid = senderKID
			md.EncryptedToKids = toKids
			md.EncAlgAuth = alg
			cur = pt

		case jose.KindJWS:
			pt, signFrom, alg, err := sign.Unpack(cur, c.signerLookup(ctx))
			if err != nil {
				return nil, md, err
			}

			md.NonRepudiation = true
			md.Authenticated = true
			md.SignFrom = signFrom
			md.SignAlg = alg
			md.SignedMessage = string(cur)
			cur = pt

		case jose.KindPlaintext:
			m, err := message.ValidatePlaintext(cur)
			if err != nil {
				return nil, md, err
			}

			if m.Type == ForwardTyp {
				md.ReWrappedInForward = true
			}

			if m.FromPrior != "" {
				issuerKID, err := c.verifyFromPrior(ctx, m.FromPrior)
				if err != nil {
					return nil, md, err
				}

				md.FromPriorIssuerKid = issuerKID
				md.FromPriorJWS = m.FromPrior
			}

			clone, err := m.Clone()
			if err != nil {
				return nil, md, err
			}

			return clone, md, nil

		default:
			return nil, md, didcommerr.Malformedf("Message is not a valid JWE, JWS or JWM")
		}
	}
}

// verifyFromPrior verifies the from_prior rotation assertion JWS
// (spec §9 supplement) and returns its signer kid.
func (c *Core) verifyFromPrior(ctx context.Context, fromPriorJWS string) (string, error) {
	_, signFrom, _, err := sign.Unpack([]byte(fromPriorJWS), c.signerLookup(ctx))
	if err != nil {
		return "", err
	}

	return signFrom, nil
}

func (c *Core) anonSecretLookup(ctx context.Context) anoncrypt.SecretLookup {
	return func(kid string) (*jwk.JWK, bool) {
		k, err := c.resolveSecretKey(ctx, kid)
		if err != nil {
			return nil, false
		}

		return k, true
	}
}

func (c *Core) authSenderLookup(ctx context.Context) authcrypt.PublicKeyLookup {
	return func(kid string) (*jwk.JWK, bool) {
		k, err := c.resolvePublicKey(ctx, kid)
		if err != nil {
			return nil, false
		}

		return k, true
	}
}

func (c *Core) signerLookup(ctx context.Context) sign.PublicKeyLookup {
	return func(kid string) (*jwk.JWK, bool) {
		k, err := c.resolvePublicKey(ctx, kid)
		if err != nil {
			return nil, false
		}

		return k, true
	}
}
