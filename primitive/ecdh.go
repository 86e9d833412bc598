/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package primitive

import (
	"crypto/ecdh"
	"crypto/rand"

	"golang.org/x/crypto/curve25519"

	"github.com/hyperledger/aries-didcomm-core/jwk"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
)

// EphemeralKeyPair is a one-time key-agreement key generated for a single
// anoncrypt/authcrypt pack operation.
type EphemeralKeyPair struct {
	Priv []byte
	Pub  *jwk.JWK
}

func ecdhCurve(crv jwk.Curve) (ecdh.Curve, error) {
	switch crv {
	case jwk.P256:
		return ecdh.P256(), nil
	case jwk.P384:
		return ecdh.P384(), nil
	case jwk.P521:
		return ecdh.P521(), nil
	default:
		return nil, didcommerr.Unsupportedf("curve %q is not a NIST ECDH curve", crv)
	}
}

// GenerateEphemeralKey creates a fresh ephemeral key on the given curve
// family, used by the anoncrypt/authcrypt pack path to derive a one-time
// "epk" header value (spec §3).
func GenerateEphemeralKey(crv jwk.Curve) (*EphemeralKeyPair, error) {
	switch crv {
	case jwk.X25519:
		var priv [32]byte
		if _, err := rand.Read(priv[:]); err != nil {
			return nil, didcommerr.Wrap(didcommerr.IOError, "generate ephemeral key", err)
		}

		pub, err := curve25519.X25519(priv[:], curve25519.Basepoint)
		if err != nil {
			return nil, didcommerr.Wrap(didcommerr.Malformed, "derive ephemeral X25519 public key", err)
		}

		return &EphemeralKeyPair{
			Priv: priv[:],
			Pub: &jwk.JWK{
				Kty: "OKP",
				Crv: string(jwk.X25519),
				X:   b64(pub),
			},
		}, nil
	default:
		c, err := ecdhCurve(crv)
		if err != nil {
			return nil, err
		}

		priv, err := c.GenerateKey(rand.Reader)
		if err != nil {
			return nil, didcommerr.Wrap(didcommerr.IOError, "generate ephemeral key", err)
		}

		x, y := splitUncompressed(priv.PublicKey().Bytes())

		return &EphemeralKeyPair{
			Priv: priv.Bytes(),
			Pub: &jwk.JWK{
				Kty: "EC",
				Crv: string(crv),
				X:   b64(x),
				Y:   b64(y),
			},
		}, nil
	}
}

// splitUncompressed splits an uncompressed EC point (0x04 || X || Y) into
// its X and Y coordinates.
func splitUncompressed(point []byte) (x, y []byte) {
	if len(point) < 1 {
		return nil, nil
	}

	coord := (len(point) - 1) / 2

	return point[1 : 1+coord], point[1+coord:]
}

func joinUncompressed(x, y []byte) []byte {
	out := make([]byte, 0, 1+len(x)+len(y))
	out = append(out, 0x04)
	out = append(out, x...)
	out = append(out, y...)

	return out
}

// SharedSecret computes the raw ECDH shared secret between a private key
// (priv, raw scalar bytes) and a public JWK (pub), dispatching on pub's curve.
func SharedSecret(priv []byte, pub *jwk.JWK) ([]byte, error) {
	crv, err := pub.Curve()
	if err != nil {
		return nil, err
	}

	switch crv {
	case jwk.X25519:
		x, err := pub.RawX()
		if err != nil {
			return nil, err
		}

		shared, err := curve25519.X25519(priv, x)
		if err != nil {
			return nil, didcommerr.Wrap(didcommerr.Malformed, "X25519 key agreement", err)
		}

		return shared, nil
	default:
		c, err := ecdhCurve(crv)
		if err != nil {
			return nil, err
		}

		privKey, err := c.NewPrivateKey(priv)
		if err != nil {
			return nil, didcommerr.Wrap(didcommerr.Malformed, "parse ECDH private key", err)
		}

		x, errX := pub.RawX()
		y, errY := pub.RawY()

		if errX != nil {
			return nil, errX
		}

		if errY != nil {
			return nil, errY
		}

		pubKey, err := c.NewPublicKey(joinUncompressed(x, y))
		if err != nil {
			return nil, didcommerr.Wrap(didcommerr.Malformed, "unable instantiate epk: bad point encoding", err)
		}

		shared, err := privKey.ECDH(pubKey)
		if err != nil {
			return nil, didcommerr.Wrap(didcommerr.Malformed, "ECDH", err)
		}

		return shared, nil
	}
}

// ECDH1PUSharedSecret implements spec §4.5's Z = Ze || Zs: the ephemeral
// shared secret concatenated with the static sender/recipient shared secret.
func ECDH1PUSharedSecret(ephemeralPriv []byte, staticPriv []byte, peerPub *jwk.JWK) ([]byte, error) {
	ze, err := SharedSecret(ephemeralPriv, peerPub)
	if err != nil {
		return nil, err
	}

	zs, err := SharedSecret(staticPriv, peerPub)
	if err != nil {
		return nil, err
	}

	return append(ze, zs...), nil
}
