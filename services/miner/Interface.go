// Package miner hands out mining contexts, accepts solutions for them and
// signals the producer of a round once it is solved or abandoned.
package miner

import (
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/holiman/uint256"
)

// MineState is the mining side of the consensus engine.
type MineState interface {
	// GetCurrentMineCtx returns a copy of the active context of algo, or nil
	// when no round is open for it.
	GetCurrentMineCtx(algo model.Algo) *model.MineCtx

	// MineAccept reports whether solution and nonce solve mineCtx, and
	// mineCtx is still the active context of its algorithm. It has no side
	// effects.
	MineAccept(mineCtx *model.MineCtx, solution model.Solution, nonce uint32) bool

	// MineBlock opens a round for header, abandoning the previous round of the
	// same algorithm. It never blocks. The receiver yields exactly one value:
	// the proof, or nil when the round was abandoned.
	MineBlock(header []byte, opts ...MineOption) (<-chan *model.Proof, *Completion)
}

type mineOptions struct {
	algo   *model.Algo
	target *uint256.Int
}

type MineOption func(*mineOptions)

// WithAlgo selects the algorithm of the round instead of the default one.
func WithAlgo(algo model.Algo) MineOption {
	return func(o *mineOptions) {
		o.algo = algo.Ptr()
	}
}

// WithTarget pins the target of the round instead of the default one.
func WithTarget(target *uint256.Int) MineOption {
	return func(o *mineOptions) {
		if target != nil {
			o.target = target.Clone()
		}
	}
}
