package model

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolutionFromBytes(t *testing.T) {
	b := make([]byte, CycleLengthU8)
	for i := range b {
		b[i] = byte(i * 7)
	}

	s := NewSolutionFromBytes(b)
	assert.Equal(t, b, s.Bytes())

	// the solution owns its buffer
	b[0] = 0xff
	assert.Equal(t, byte(0), s[0])

	out := s.Bytes()
	out[1] = 0xff
	assert.Equal(t, byte(7), s[1])
}

func TestSolutionFromBytesWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, CycleLengthU8 - 1, CycleLengthU8 + 1} {
		assert.Panics(t, func() { NewSolutionFromBytes(make([]byte, n)) }, "length %d", n)
	}
}

func TestSolutionUint64s(t *testing.T) {
	v := make([]uint64, ProofSize)
	for i := range v {
		v[i] = uint64(i) * 0x0101010101010101
	}

	v[0] = 0
	v[ProofSize-1] = math.MaxUint64

	s := NewSolutionFromUint64s(v)
	assert.Equal(t, v, s.Uint64s())

	// little-endian lanes
	assert.Equal(t, []byte{1, 1, 1, 1, 1, 1, 1, 1}, s[8:16])
	assert.Equal(t, byte(0xff), s[CycleLengthU8-1])

	// bytes -> u64s -> bytes
	again := NewSolutionFromUint64s(NewSolutionFromBytes(s.Bytes()).Uint64s())
	assert.True(t, bytes.Equal(s[:], again[:]))

	assert.Panics(t, func() { NewSolutionFromUint64s(v[:ProofSize-1]) })
}

func TestSolutionEqualAndHash(t *testing.T) {
	var a, b Solution

	assert.True(t, a.IsZero())
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	b[5] = 1

	assert.False(t, b.IsZero())
	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Hash(), b.Hash())

	// usable as a map key
	seen := map[Solution]bool{a: true}
	assert.True(t, seen[Solution{}])
	assert.False(t, seen[b])
}

func TestSolutionString(t *testing.T) {
	var s Solution

	s[0] = 0xab

	require.Len(t, s.String(), 2*CycleLengthU8)
	assert.Equal(t, "ab00", s.String()[:4])
}
