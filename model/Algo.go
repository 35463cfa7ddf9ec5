package model

import (
	"fmt"
	"strings"
)

// Algo identifies a proof-of-work algorithm.
type Algo uint32

const (
	AlgoCuckoo Algo = 0
	AlgoScrypt Algo = 1
)

// AlgoFromUint32 decodes a wire value. Unknown values decode to AlgoCuckoo
// without an error so that older nodes keep reading headers of newer ones.
func AlgoFromUint32(v uint32) Algo {
	if v == uint32(AlgoScrypt) {
		return AlgoScrypt
	}

	return AlgoCuckoo
}

// AlgoFromString decodes a configured name, with the same fallback to
// AlgoCuckoo as AlgoFromUint32.
func AlgoFromString(s string) Algo {
	if strings.EqualFold(strings.TrimSpace(s), "SCRYPT") {
		return AlgoScrypt
	}

	return AlgoCuckoo
}

func (a Algo) Uint32() uint32 {
	return uint32(a)
}

func (a Algo) String() string {
	switch a {
	case AlgoCuckoo:
		return "CUCKOO"
	case AlgoScrypt:
		return "SCRYPT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint32(a))
	}
}

// Ptr returns a pointer to a copy of a, for optional fields.
func (a Algo) Ptr() *Algo {
	return &a
}
