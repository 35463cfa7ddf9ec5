package consensus

import (
	"context"
	"math/big"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/teranode-consensus/chaincfg"
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/settings"
	"github.com/bsv-blockchain/teranode-consensus/stores/blockchain"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
	"github.com/holiman/uint256"
	"github.com/jellydator/ttlcache/v3"
)

// Difficulty computes the target a block must meet from the timestamps and
// targets of the BlockWindow blocks before it.
type Difficulty struct {
	difficultyAdjustment bool
	logger               ulogger.Logger
	chainParams          *chaincfg.Params
	cache                *ttlcache.Cache[chainhash.Hash, *uint256.Int]
}

func NewDifficulty(logger ulogger.Logger, tSettings *settings.Settings) (*Difficulty, error) {
	params := tSettings.ChainCfgParams
	if params == nil {
		return nil, errors.NewConfigurationError("[NewDifficulty] no chain params configured")
	}

	if params.BlockWindow < 2 {
		return nil, errors.NewConfigurationError("[NewDifficulty] block window of %d blocks is too small", params.BlockWindow)
	}

	if params.MaxAdjustFactor < 1 {
		return nil, errors.NewConfigurationError("[NewDifficulty] max adjust factor must be at least 1")
	}

	if params.TargetTimePerBlock < time.Second {
		return nil, errors.NewConfigurationError("[NewDifficulty] target time per block must be at least a second")
	}

	initPrometheusMetrics()

	cache := ttlcache.New[chainhash.Hash, *uint256.Int](
		ttlcache.WithTTL[chainhash.Hash, *uint256.Int](tSettings.Consensus.DifficultyCacheTTL),
		ttlcache.WithDisableTouchOnHit[chainhash.Hash, *uint256.Int](),
	)

	go cache.Start()

	return &Difficulty{
		difficultyAdjustment: tSettings.Consensus.DifficultyAdjustment && !params.NoDifficultyAdjustment,
		logger:               logger,
		chainParams:          params,
		cache:                cache,
	}, nil
}

// Stop ends the cache expiry loop.
func (d *Difficulty) Stop() {
	d.cache.Stop()
}

// CalcNextWorkRequired returns the target the block at height must meet.
//
// The first BlockWindow blocks use the genesis target. When difficulty
// adjustment is off every block uses the target of its parent. Otherwise the
// target follows from the window of BlockWindow blocks ending at the parent,
// see ComputeTarget.
func (d *Difficulty) CalcNextWorkRequired(ctx context.Context, reader blockchain.Reader, height uint64) (*uint256.Int, error) {
	start := time.Now()
	defer func() {
		prometheusConsensusDifficulty.Observe(float64(time.Since(start).Microseconds()) / 1_000_000)
	}()

	if height < d.chainParams.BlockWindow {
		d.logger.Debugf("[CalcNextWorkRequired] height %d inside the first window, using genesis target", height)
		return d.chainParams.GenesisTarget.Clone(), nil
	}

	parent, err := reader.GetHeaderByHeight(ctx, height-1)
	if err != nil {
		return nil, errors.NewStorageError("[CalcNextWorkRequired] error getting parent of block %d", height, err)
	}

	if parent.Target == nil {
		return nil, errors.NewProcessingError("[CalcNextWorkRequired] parent of block %d has no target", height)
	}

	// If regtest or difficulty adjustment is disabled we keep the current difficulty
	if !d.difficultyAdjustment {
		return parent.Target.Clone(), nil
	}

	parentHash := *parent.Hash()

	if item := d.cache.Get(parentHash); item != nil {
		prometheusConsensusDifficultyHits.Inc()
		return item.Value().Clone(), nil
	}

	window, err := reader.GetHeadersByHeight(ctx, height-d.chainParams.BlockWindow, height-1)
	if err != nil {
		return nil, errors.NewStorageError("[CalcNextWorkRequired] error getting difficulty window of block %d", height, err)
	}

	target, err := d.ComputeTarget(window)
	if err != nil {
		return nil, errors.NewProcessingError("[CalcNextWorkRequired] error computing target of block %d", height, err)
	}

	d.cache.Set(parentHash, target, ttlcache.DefaultTTL)

	d.logger.Debugf("[CalcNextWorkRequired] target of block %d: %s", height, target.Hex())

	return target.Clone(), nil
}

// ComputeTarget derives the next target from a window of consecutive headers,
// oldest first.
//
// The new target is the mean target of the window scaled by the ratio of the
// observed to the expected time the window took. In order to avoid difficulty
// cliffs the observed time is bounded to MaxAdjustFactor times the expected
// time in either direction, and so is the step away from the last target. The
// result never exceeds the pow limit and is never zero.
func (d *Difficulty) ComputeTarget(window []*model.BlockHeader) (*uint256.Int, error) {
	if len(window) < 2 {
		return nil, errors.NewInvalidArgumentError("[ComputeTarget] need at least 2 headers, got %d", len(window))
	}

	first := window[0]
	last := window[len(window)-1]

	sum := new(big.Int)

	for _, header := range window {
		if header.Target == nil {
			return nil, errors.NewProcessingError("[ComputeTarget] header %d has no target", header.Height)
		}

		sum.Add(sum, header.Target.ToBig())
	}

	avgTarget := sum.Div(sum, big.NewInt(int64(len(window))))

	factor := int64(d.chainParams.MaxAdjustFactor) //nolint:gosec // small configured value
	targetTimePerBlock := int64(d.chainParams.TargetTimePerBlock.Seconds())

	expected := int64(len(window)-1) * targetTimePerBlock
	actual := int64(last.Timestamp) - int64(first.Timestamp)

	if actual < expected/factor {
		d.logger.Debugf("[ComputeTarget] duration %d is less than %d - setting to %d", actual, expected/factor, expected/factor)
		actual = expected / factor
	} else if actual > expected*factor {
		d.logger.Debugf("[ComputeTarget] duration %d is greater than %d - setting to %d", actual, expected*factor, expected*factor)
		actual = expected * factor
	}

	newTarget := new(big.Int).Mul(avgTarget, big.NewInt(actual))
	newTarget.Div(newTarget, big.NewInt(expected))

	lastTarget := last.Target.ToBig()
	bigFactor := big.NewInt(factor)

	if minTarget := new(big.Int).Div(lastTarget, bigFactor); newTarget.Cmp(minTarget) < 0 {
		newTarget.Set(minTarget)
	}

	if maxTarget := new(big.Int).Mul(lastTarget, bigFactor); newTarget.Cmp(maxTarget) > 0 {
		newTarget.Set(maxTarget)
	}

	powLimit := d.chainParams.PowLimit.ToBig()
	if newTarget.Cmp(powLimit) > 0 {
		d.logger.Debugf("[ComputeTarget] new target would be above pow limit, set to pow limit")
		newTarget.Set(powLimit)
	}

	if newTarget.Sign() == 0 {
		newTarget.SetInt64(1)
	}

	target, overflow := uint256.FromBig(newTarget)
	if overflow {
		return nil, errors.NewProcessingError("[ComputeTarget] target overflows 256 bits")
	}

	return target, nil
}
