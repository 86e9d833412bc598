/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package primitive

import (
	"encoding/binary"

	sha256simd "github.com/minio/sha256-simd"

	"github.com/hyperledger/aries-didcomm-core/didcommerr"
)

// ConcatKDF implements NIST SP 800-56A Concat KDF over SHA-256, with the
// SuppPubInfo layout RFC 7518 §4.6 / RFC 8037 mandate for ECDH-ES and
// ECDH-1PU: AlgorithmID || PartyUInfo || PartyVInfo || keydatalen, each of
// the first three length-prefixed with a big-endian uint32. Hashing uses
// minio/sha256-simd rather than crypto/sha256 for the same accelerated
// implementation the apv/apu digests use elsewhere in this core.
func ConcatKDF(z []byte, algID, apu, apv []byte, keyDataLenBits int, keyLenBytes int) ([]byte, error) {
	if keyLenBytes <= 0 {
		return nil, didcommerr.Malformedf("ConcatKDF requested a non-positive key length")
	}

	suppPubInfo := make([]byte, 4)
	binary.BigEndian.PutUint32(suppPubInfo, uint32(keyDataLenBits))

	otherInfo := concatWithLengthPrefix(algID, apu, apv)
	otherInfo = append(otherInfo, suppPubInfo...)

	const hashLen = 32

	rounds := (keyLenBytes + hashLen - 1) / hashLen

	out := make([]byte, 0, rounds*hashLen)

	for counter := uint32(1); counter <= uint32(rounds); counter++ {
		var counterBytes [4]byte
		binary.BigEndian.PutUint32(counterBytes[:], counter)

		h := sha256simd.New()
		h.Write(counterBytes[:])
		h.Write(z)
		h.Write(otherInfo)
		out = append(out, h.Sum(nil)...)
	}

	return out[:keyLenBytes], nil
}

func concatWithLengthPrefix(parts ...[]byte) []byte {
	out := make([]byte, 0)

	for _, p := range parts {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(p)))
		out = append(out, lenBuf[:]...)
		out = append(out, p...)
	}

	return out
}

// SHA256Sum is the apv/apu digest primitive (spec §3: "apv = base64url of
// SHA-256 over lex-sorted concatenation of recipient kids").
func SHA256Sum(data []byte) []byte {
	sum := sha256Sum256(data)
	return sum[:]
}
