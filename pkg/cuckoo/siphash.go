package cuckoo

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/crypto/blake2b"
)

// sipKeys is the siphash state a graph is generated from.
type sipKeys [4]uint64

// newSipKeys derives the graph keys from a serialized header, nonce included.
func newSipKeys(header []byte) sipKeys {
	digest := blake2b.Sum256(header)

	return sipKeys{
		binary.LittleEndian.Uint64(digest[0:8]),
		binary.LittleEndian.Uint64(digest[8:16]),
		binary.LittleEndian.Uint64(digest[16:24]),
		binary.LittleEndian.Uint64(digest[24:32]),
	}
}

// siphash24 is siphash-2-4 with the four state words seeded straight from the
// keys rather than from a 128 bit key and the usual constants.
func (k *sipKeys) siphash24(nonce uint64) uint64 {
	v0, v1, v2, v3 := k[0], k[1], k[2], k[3]^nonce

	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)

	v0 ^= nonce
	v2 ^= 0xff

	for i := 0; i < 4; i++ {
		v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	}

	return v0 ^ v1 ^ v2 ^ v3
}

func sipRound(v0, v1, v2, v3 uint64) (uint64, uint64, uint64, uint64) {
	v0 += v1
	v2 += v3
	v1 = bits.RotateLeft64(v1, 13)
	v3 = bits.RotateLeft64(v3, 16)
	v1 ^= v0
	v3 ^= v2
	v0 = bits.RotateLeft64(v0, 32)
	v2 += v1
	v0 += v3
	v1 = bits.RotateLeft64(v1, 17)
	v3 = bits.RotateLeft64(v3, 21)
	v1 ^= v2
	v3 ^= v0
	v2 = bits.RotateLeft64(v2, 32)

	return v0, v1, v2, v3
}
