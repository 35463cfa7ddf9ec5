// Package blockproducer extends the chain: it assembles header templates on
// the tip, hands them to the miner and seals them with the returned proof.
package blockproducer

import (
	"context"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/services/consensus"
	"github.com/bsv-blockchain/teranode-consensus/services/miner"
	"github.com/bsv-blockchain/teranode-consensus/services/miner/cpuminer"
	"github.com/bsv-blockchain/teranode-consensus/settings"
	"github.com/bsv-blockchain/teranode-consensus/stores/blockchain"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
	"github.com/bsv-blockchain/teranode-consensus/util/retry"
	"github.com/kpango/fastime"
	"github.com/ordishs/gocore"
)

const (
	blockVersion = 1

	// readBackoff is the unit of the backoff between retried chain reads
	readBackoff = 50 * time.Millisecond
)

var stats = gocore.NewStat("blockproducer")

type BlockProducer struct {
	logger     ulogger.Logger
	settings   *settings.Settings
	store      blockchain.Store
	difficulty *consensus.Difficulty
	consensus  consensus.Consensus
	miner      *miner.Miner
}

func New(logger ulogger.Logger, tSettings *settings.Settings, store blockchain.Store, difficulty *consensus.Difficulty,
	c consensus.Consensus, m *miner.Miner) *BlockProducer {
	return &BlockProducer{
		logger:     logger,
		settings:   tSettings,
		store:      store,
		difficulty: difficulty,
		consensus:  c,
		miner:      m,
	}
}

// Template returns an unsealed header extending the tip, carrying the target
// the block must meet.
func (b *BlockProducer) Template(ctx context.Context, algo model.Algo) (*model.BlockHeader, error) {
	start := time.Now()
	defer func() {
		stats.NewStat("Template").AddTime(start)
	}()

	tip, err := retry.Retry(ctx, b.logger, func() (*model.BlockHeader, error) {
		return b.store.GetBestBlockHeader(ctx)
	}, retry.WithBackoffDurationType(readBackoff), retry.WithMessage("[Template] error getting best block header"))
	if err != nil {
		return nil, errors.NewServiceError("[Template] error getting best block header", err)
	}

	stateRoot, err := retry.Retry(ctx, b.logger, func() (*chainhash.Hash, error) {
		return b.store.GetStateRoot(ctx)
	}, retry.WithBackoffDurationType(readBackoff), retry.WithMessage("[Template] error getting state root"))
	if err != nil {
		return nil, errors.NewServiceError("[Template] error getting state root", err)
	}

	height := tip.Height + 1

	target, err := b.difficulty.CalcNextWorkRequired(ctx, b.store, height)
	if err != nil {
		return nil, errors.NewServiceError("[Template] error getting target of block %d", height, err)
	}

	// timestamps never go backwards
	timestamp := uint32(fastime.Now().Unix()) //nolint:gosec // valid until 2106
	if timestamp <= tip.Timestamp {
		timestamp = tip.Timestamp + 1
	}

	return &model.BlockHeader{
		Version:       blockVersion,
		Height:        height,
		HashPrevBlock: tip.Hash(),
		HashStateRoot: stateRoot,
		Timestamp:     timestamp,
		Algo:          algo,
		Target:        target,
	}, nil
}

// Produce opens a round for the next block and waits for a proof submitted to
// the miner. The sealed header is verified and added to the store. An
// abandoned round is an error.
func (b *BlockProducer) Produce(ctx context.Context, algo model.Algo) (*model.BlockHeader, error) {
	header, rx, completion, err := b.issue(ctx, algo)
	if err != nil {
		return nil, err
	}

	return b.seal(ctx, header, rx, completion)
}

// MineBlocks produces n blocks, solving every round with the cpu miner.
func (b *BlockProducer) MineBlocks(ctx context.Context, n int, algo model.Algo) ([]*model.BlockHeader, error) {
	headers := make([]*model.BlockHeader, 0, n)

	for i := 0; i < n; i++ {
		b.logger.Infof("[BlockProducer] Mining block %d of %d", i+1, n)

		header, rx, completion, err := b.issue(ctx, algo)
		if err != nil {
			return headers, err
		}

		mineCtx, cancel := context.WithCancel(ctx)

		go b.cpuMine(mineCtx, header, algo, completion)

		sealed, err := b.seal(ctx, header, rx, completion)

		cancel()

		if err != nil {
			return headers, err
		}

		headers = append(headers, sealed)
	}

	return headers, nil
}

func (b *BlockProducer) issue(ctx context.Context, algo model.Algo) (*model.BlockHeader, <-chan *model.Proof, *miner.Completion, error) {
	header, err := b.Template(ctx, algo)
	if err != nil {
		return nil, nil, nil, err
	}

	if err = b.miner.SetDefaultTarget(header.Target); err != nil {
		return nil, nil, nil, err
	}

	rx, completion := b.miner.MineBlock(header.MiningBytes(), miner.WithAlgo(algo), miner.WithTarget(header.Target))

	b.logger.Debugf("[BlockProducer] issued round for block %d, target %s", header.Height, header.Target.Hex())

	return header, rx, completion, nil
}

func (b *BlockProducer) seal(ctx context.Context, header *model.BlockHeader, rx <-chan *model.Proof, completion *miner.Completion) (*model.BlockHeader, error) {
	start := time.Now()
	defer func() {
		stats.NewStat("Seal").AddTime(start)
	}()

	proof, err := miner.WaitForProof(ctx, rx)
	if err != nil {
		// only this producer's round, a newer one may already be open
		b.miner.AbandonRound(completion)

		return nil, err
	}

	if proof == nil {
		return nil, errors.NewProcessingError("[BlockProducer] round for block %d was abandoned", header.Height)
	}

	header.SetProof(proof)

	if err = b.consensus.VerifyHeader(ctx, b.store, header); err != nil {
		return nil, errors.NewProcessingError("[BlockProducer] sealed block %d failed verification", header.Height, err)
	}

	if err = b.store.AddHeader(ctx, header); err != nil {
		return nil, errors.NewServiceError("[BlockProducer] error adding block %d", header.Height, err)
	}

	b.logger.Infof("[BlockProducer] sealed block %s at height %d with nonce %d", header.Hash(), header.Height, header.Nonce)

	return header, nil
}

// cpuMine solves the open round of algo and submits the proof. The round is
// abandoned when the nonce space holds no solution.
func (b *BlockProducer) cpuMine(ctx context.Context, header *model.BlockHeader, algo model.Algo, completion *miner.Completion) {
	mineCtx := b.miner.GetCurrentMineCtx(algo)
	if mineCtx == nil {
		return
	}

	proof, err := cpuminer.Mine(ctx, b.settings, mineCtx, header.Target, algo)
	if err != nil {
		b.logger.Errorf("[BlockProducer] cpu miner failed on block %d: %v", header.Height, err)
		b.miner.AbandonRound(completion)

		return
	}

	if proof == nil {
		if ctx.Err() == nil {
			b.logger.Warnf("[BlockProducer] no solution for block %d", header.Height)
			b.miner.AbandonRound(completion)
		}

		return
	}

	if _, err = b.miner.Submit(algo, proof.Solution, proof.Nonce); err != nil {
		b.logger.Errorf("[BlockProducer] solution for block %d rejected: %v", header.Height, err)
		b.miner.AbandonRound(completion)
	}
}
