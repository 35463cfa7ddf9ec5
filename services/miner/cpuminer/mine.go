// Package cpuminer searches nonces for a mining context on the local CPU. It
// stands in for an external miner in tests and the command line tools.
package cpuminer

import (
	"context"
	"math"

	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/pkg/cuckoo"
	"github.com/bsv-blockchain/teranode-consensus/pkg/scryptpow"
	"github.com/bsv-blockchain/teranode-consensus/settings"
	"github.com/holiman/uint256"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// Mine tries nonces for mineCtx until one solves it under target with algo.
// The nonce space up to the configured max nonce is split over the configured
// number of workers. It returns nil without error when ctx ends or no nonce
// solves the context.
func Mine(ctx context.Context, tSettings *settings.Settings, mineCtx *model.MineCtx, target *uint256.Int, algo model.Algo) (*model.Proof, error) {
	if mineCtx == nil || len(mineCtx.Header) < model.NonceSize {
		return nil, errors.NewInvalidArgumentError("[Mine] mining context has no nonce slot")
	}

	if target == nil {
		return nil, errors.NewInvalidArgumentError("[Mine] no target")
	}

	var solve func(header []byte) (model.Solution, bool, error)

	switch algo {
	case model.AlgoCuckoo:
		c, err := cuckoo.New(tSettings.ChainCfgParams.CuckooEdgeBits)
		if err != nil {
			return nil, err
		}

		solve = func(header []byte) (model.Solution, bool, error) {
			solution, found, err := c.Solve(header)
			if err != nil || !found {
				return solution, false, err
			}

			return solution, !cuckoo.ProofValue(header, solution).Gt(target), nil
		}
	case model.AlgoScrypt:
		solve = func(header []byte) (model.Solution, bool, error) {
			digest, err := scryptpow.Digest(header)
			if err != nil {
				return model.Solution{}, false, err
			}

			return model.Solution{}, !digest.Gt(target), nil
		}
	default:
		return nil, errors.NewInvalidArgumentError("[Mine] no solver for algorithm %s", algo)
	}

	workers := uint64(max(tSettings.Mining.CPUMinerWorkers, 1))

	maxNonce := uint64(tSettings.Mining.MaxNonce)
	if maxNonce == 0 {
		maxNonce = math.MaxUint32
	}

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(searchCtx)

	found := atomic.NewPointer[model.Proof](nil)

	for w := uint64(0); w < workers; w++ {
		g.Go(func() error {
			for nonce := w; nonce <= maxNonce; nonce += workers {
				select {
				case <-gCtx.Done():
					return nil
				default:
				}

				n := uint32(nonce) //nolint:gosec // nonce <= math.MaxUint32

				solution, ok, err := solve(mineCtx.HeaderWithNonce(n))
				if err != nil {
					return err
				}

				if !ok {
					continue
				}

				proof := &model.Proof{
					Solution: solution,
					Nonce:    n,
					Algo:     algo,
					Target:   target.Clone(),
				}

				if found.CompareAndSwap(nil, proof) {
					cancel()
				}

				return nil
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.NewProcessingError("[Mine] %s solver failed", algo, err)
	}

	return found.Load(), nil
}
