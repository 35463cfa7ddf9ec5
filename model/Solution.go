package model

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"golang.org/x/crypto/blake2b"
)

// Solution is an encoded cycle proof: ProofSize edge indices, each stored as a
// little-endian uint64. The array type makes partial buffers impossible.
type Solution [CycleLengthU8]byte

// NewSolutionFromBytes copies b into a Solution. A buffer of any other length
// than CycleLengthU8 is a bug in the caller and panics.
func NewSolutionFromBytes(b []byte) Solution {
	if len(b) != CycleLengthU8 {
		panic(fmt.Sprintf("solution should be %d bytes long, got %d", CycleLengthU8, len(b)))
	}

	var s Solution

	copy(s[:], b)

	return s
}

// NewSolutionFromUint64s encodes exactly ProofSize edge indices.
func NewSolutionFromUint64s(v []uint64) Solution {
	if len(v) != ProofSize {
		panic(fmt.Sprintf("solution should have %d edges, got %d", ProofSize, len(v)))
	}

	var s Solution

	for i, edge := range v {
		binary.LittleEndian.PutUint64(s[i*8:], edge)
	}

	return s
}

// Uint64s decodes the edge indices.
func (s Solution) Uint64s() []uint64 {
	v := make([]uint64, ProofSize)

	for i := range v {
		v[i] = binary.LittleEndian.Uint64(s[i*8:])
	}

	return v
}

// Bytes returns a copy of the raw encoding.
func (s Solution) Bytes() []byte {
	b := make([]byte, CycleLengthU8)
	copy(b, s[:])

	return b
}

func (s Solution) Equal(other Solution) bool {
	return s == other
}

func (s Solution) IsZero() bool {
	return s == Solution{}
}

// Hash is the BLAKE2b-256 digest of the raw bytes. It identifies a solution for
// deduplication and logging and plays no part in work verification.
func (s Solution) Hash() chainhash.Hash {
	return chainhash.Hash(blake2b.Sum256(s[:]))
}

func (s Solution) String() string {
	return hex.EncodeToString(s[:])
}
