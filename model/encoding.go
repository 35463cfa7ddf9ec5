package model

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// SetHeaderNonce returns a copy of header with the last NonceSize bytes
// replaced by nonce in little-endian order. Everything before the nonce slot is
// left untouched. A header without a nonce slot panics.
func SetHeaderNonce(header []byte, nonce uint32) []byte {
	if len(header) < NonceSize {
		panic(fmt.Sprintf("header should be at least %d bytes long, got %d", NonceSize, len(header)))
	}

	patched := append([]byte(nil), header...)
	binary.LittleEndian.PutUint32(patched[len(patched)-NonceSize:], nonce)

	return patched
}

// HeaderNonce reads the nonce slot of a serialized header.
func HeaderNonce(header []byte) uint32 {
	if len(header) < NonceSize {
		panic(fmt.Sprintf("header should be at least %d bytes long, got %d", NonceSize, len(header)))
	}

	return binary.LittleEndian.Uint32(header[len(header)-NonceSize:])
}

// U256ToBytes encodes u as 32 little-endian bytes. A nil u encodes as zero.
func U256ToBytes(u *uint256.Int) []byte {
	b := make([]byte, 32)
	if u == nil {
		return b
	}

	// uint256.Int stores its limbs least significant first
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(b[i*8:], u[i])
	}

	return b
}

// U256FromBytes decodes 32 little-endian bytes.
func U256FromBytes(b []byte) *uint256.Int {
	if len(b) != 32 {
		panic(fmt.Sprintf("u256 should be 32 bytes long, got %d", len(b)))
	}

	u := new(uint256.Int)
	for i := 0; i < 4; i++ {
		u[i] = binary.LittleEndian.Uint64(b[i*8:])
	}

	return u
}
