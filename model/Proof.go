package model

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Proof is a claimed unit of work for one mining context.
type Proof struct {
	Solution Solution
	Nonce    uint32
	Algo     Algo
	Target   *uint256.Int
}

// DefaultProof is a placeholder with an all-zero solution and the easiest
// possible target. It never passes proof-of-work verification.
func DefaultProof() *Proof {
	return &Proof{
		Algo:   AlgoCuckoo,
		Target: new(uint256.Int).SetAllOne(),
	}
}

func (p *Proof) Equal(other *Proof) bool {
	if p == nil || other == nil {
		return p == other
	}

	if p.Solution != other.Solution || p.Nonce != other.Nonce || p.Algo != other.Algo {
		return false
	}

	if p.Target == nil || other.Target == nil {
		return p.Target == other.Target
	}

	return p.Target.Eq(other.Target)
}

func (p *Proof) Clone() *Proof {
	if p == nil {
		return nil
	}

	c := *p
	if p.Target != nil {
		c.Target = p.Target.Clone()
	}

	return &c
}

func (p *Proof) String() string {
	if p == nil {
		return "<nil>"
	}

	target := "<nil>"
	if p.Target != nil {
		target = p.Target.Hex()
	}

	return fmt.Sprintf("algo: %s, nonce: %d, target: %s, solution: %s", p.Algo, p.Nonce, target, p.Solution.Hash())
}
