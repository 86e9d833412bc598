/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package primitive

import (
	"crypto/aes"
	"crypto/subtle"
	"encoding/binary"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
)

// defaultIV is the AES Key Wrap default integrity check register from
// RFC 3394 §2.2.3.1.
var defaultIV = [8]byte{0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6}

// WrapKey wraps a CEK with kek using RFC 3394 AES Key Wrap (A256KW), the
// algorithm spec §4.3 mandates. Neither Tink's subtle package nor
// golang.org/x/crypto exposes standalone AES-KW, so this is hand-rolled on
// crypto/aes, same as every other from-scratch JOSE implementation in the
// retrieval pack does for this particular primitive.
func WrapKey(kek, cek []byte) ([]byte, error) {
	if len(cek)%8 != 0 || len(cek) == 0 {
		return nil, didcommerr.Malformedf("key to wrap must be a nonzero multiple of 8 bytes")
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.Malformed, "init AES-KW cipher", err)
	}

	n := len(cek) / 8
	r := make([][8]byte, n)

	for i := 0; i < n; i++ {
		copy(r[i][:], cek[i*8:(i+1)*8])
	}

	a := defaultIV

	buf := make([]byte, 16)

	for j := 0; j <= 5; j++ {
		for i := 0; i < n; i++ {
			copy(buf[:8], a[:])
			copy(buf[8:], r[i][:])
			block.Encrypt(buf, buf)

			t := uint64(n*j + i + 1)

			var tb [8]byte
			binary.BigEndian.PutUint64(tb[:], t)

			for k := 0; k < 8; k++ {
				a[k] = buf[k] ^ tb[k]
			}

			copy(r[i][:], buf[8:])
		}
	}

	out := make([]byte, 8+len(cek))
	copy(out[:8], a[:])

	for i := 0; i < n; i++ {
		copy(out[8+i*8:], r[i][:])
	}

	return out, nil
}

// UnwrapKey reverses WrapKey, returning Malformed on integrity-check failure
// (tampered wrapped key, or a KEK that doesn't match the wrapping KEK).
func UnwrapKey(kek, wrapped []byte) ([]byte, error) {
	if len(wrapped)%8 != 0 || len(wrapped) < 16 {
		return nil, didcommerr.Malformedf("wrapped key has invalid length")
	}

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, didcommerr.Wrap(didcommerr.Malformed, "init AES-KW cipher", err)
	}

	n := len(wrapped)/8 - 1
	r := make([][8]byte, n)

	for i := 0; i < n; i++ {
		copy(r[i][:], wrapped[8+i*8:8+(i+1)*8])
	}

	var a [8]byte
	copy(a[:], wrapped[:8])

	buf := make([]byte, 16)

	for j := 5; j >= 0; j-- {
		for i := n - 1; i >= 0; i-- {
			t := uint64(n*j + i + 1)

			var tb [8]byte
			binary.BigEndian.PutUint64(tb[:], t)

			var ax [8]byte
			for k := 0; k < 8; k++ {
				ax[k] = a[k] ^ tb[k]
			}

			copy(buf[:8], ax[:])
			copy(buf[8:], r[i][:])
			block.Decrypt(buf, buf)

			copy(a[:], buf[:8])
			copy(r[i][:], buf[8:])
		}
	}

	if subtle.ConstantTimeCompare(a[:], defaultIV[:]) != 1 {
		return nil, didcommerr.Malformedf("key unwrap integrity check failed")
	}

	out := make([]byte, 0, n*8)
	for i := 0; i < n; i++ {
		out = append(out, r[i][:]...)
	}

	return out, nil
}
