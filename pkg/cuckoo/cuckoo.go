// Package cuckoo implements the Cuckoo Cycle proof-of-work: a solution is a set
// of ProofSize edges of a pseudo random bipartite graph, keyed by the header,
// that together form a single cycle.
package cuckoo

import (
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/blake2b"
)

const (
	// MinEdgeBits keeps the graph large enough to hold ProofSize distinct edges.
	MinEdgeBits = 8

	// MaxEdgeBits is the largest graph a node index can address.
	MaxEdgeBits = 31
)

var (
	ErrTooBig      = errors.New(errors.ERR_BLOCK_INVALID_SOLUTION, "edge index too big")
	ErrTooSmall    = errors.New(errors.ERR_BLOCK_INVALID_SOLUTION, "edge indices not ascending")
	ErrNonMatching = errors.New(errors.ERR_BLOCK_INVALID_SOLUTION, "endpoints don't match up")
	ErrBranch      = errors.New(errors.ERR_BLOCK_INVALID_SOLUTION, "branch in cycle")
	ErrDeadEnd     = errors.New(errors.ERR_BLOCK_INVALID_SOLUTION, "cycle dead ends")
	ErrShortCycle  = errors.New(errors.ERR_BLOCK_INVALID_SOLUTION, "cycle too short")
	ErrAboveTarget = errors.New(errors.ERR_BLOCK_INVALID_SOLUTION, "proof digest above target")
)

// Cuckoo verifies and finds cycles in graphs of 2^edgeBits edges.
type Cuckoo struct {
	edgeBits uint8
	numEdges uint64
	edgeMask uint64
}

func New(edgeBits uint8) (*Cuckoo, error) {
	if edgeBits < MinEdgeBits || edgeBits > MaxEdgeBits {
		return nil, errors.NewConfigurationError("cuckoo edge bits should be between %d and %d, got %d", MinEdgeBits, MaxEdgeBits, edgeBits)
	}

	numEdges := uint64(1) << edgeBits

	return &Cuckoo{
		edgeBits: edgeBits,
		numEdges: numEdges,
		edgeMask: numEdges - 1,
	}, nil
}

func (c *Cuckoo) EdgeBits() uint8 {
	return c.edgeBits
}

// node returns the endpoint of edge on the given side. U nodes are even, V
// nodes odd.
func (c *Cuckoo) node(keys *sipKeys, edge uint64, side uint64) uint64 {
	return (keys.siphash24(2*edge+side)&c.edgeMask)<<1 | side
}

// Verify checks that solution is a cycle in the graph keyed by header and that
// the proof digest meets target. header is the full mining template, nonce
// included.
func (c *Cuckoo) Verify(header []byte, solution model.Solution, target *uint256.Int) error {
	if err := c.VerifyCycle(header, solution.Uint64s()); err != nil {
		return err
	}

	if target == nil {
		return errors.NewInvalidArgumentError("no target to verify against")
	}

	if ProofValue(header, solution).Gt(target) {
		return ErrAboveTarget
	}

	return nil
}

// VerifyCycle checks only the graph part of a proof.
func (c *Cuckoo) VerifyCycle(header []byte, edges []uint64) error {
	if len(edges) != model.ProofSize {
		return errors.NewBlockInvalidSolutionError("proof should have %d edges, got %d", model.ProofSize, len(edges))
	}

	keys := newSipKeys(header)

	var (
		uvs        [2 * model.ProofSize]uint64
		xor0, xor1 uint64
	)

	for n, edge := range edges {
		if edge > c.edgeMask {
			return ErrTooBig
		}

		if n > 0 && edge <= edges[n-1] {
			return ErrTooSmall
		}

		uvs[2*n] = c.node(&keys, edge, 0)
		uvs[2*n+1] = c.node(&keys, edge, 1)
		xor0 ^= uvs[2*n]
		xor1 ^= uvs[2*n+1]
	}

	// every node of a cycle is hit exactly twice
	if xor0|xor1 != 0 {
		return ErrNonMatching
	}

	// walk the cycle, alternating between the two endpoints of each edge
	n, i := 0, 0

	for {
		j := i

		for k := (i + 2) % len(uvs); k != i; k = (k + 2) % len(uvs) {
			if uvs[k] == uvs[i] {
				if j != i {
					return ErrBranch
				}

				j = k
			}
		}

		if j == i {
			return ErrDeadEnd
		}

		i = j ^ 1
		n++

		if i == 0 {
			break
		}
	}

	if n != model.ProofSize {
		return ErrShortCycle
	}

	return nil
}

// ProofValue is the BLAKE2b-256 digest of header followed by the solution, read
// as a little-endian number. A proof meets a target when its value is not above
// it.
func ProofValue(header []byte, solution model.Solution) *uint256.Int {
	h, _ := blake2b.New256(nil)
	_, _ = h.Write(header)
	_, _ = h.Write(solution[:])

	return model.U256FromBytes(h.Sum(nil))
}
