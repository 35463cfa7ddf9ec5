// Package memory is a chain store that keeps a single chain of headers in
// memory. It backs tests and the command line tools.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
	"github.com/ordishs/gocore"
)

var stats = gocore.NewStat("blockchain_memory")

type Memory struct {
	mu      sync.RWMutex
	logger  ulogger.Logger
	headers []*model.BlockHeader
	byHash  map[chainhash.Hash]*model.BlockHeader
	stopped bool
}

func New(logger ulogger.Logger) *Memory {
	return &Memory{
		logger: logger,
		byHash: make(map[chainhash.Hash]*model.BlockHeader),
	}
}

// AddHeader appends header to the chain. The first header must have height 0,
// every later one must extend the current tip.
func (m *Memory) AddHeader(ctx context.Context, header *model.BlockHeader) error {
	start := time.Now()
	defer func() {
		stats.NewStat("AddHeader").AddTime(start)
	}()

	if err := m.check(ctx); err != nil {
		return err
	}

	hash := header.Hash()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byHash[*hash]; exists {
		return errors.NewBlockExistsError("[AddHeader] header %s already added", hash)
	}

	if header.Height != uint64(len(m.headers)) {
		return errors.NewBlockInvalidError("[AddHeader] header height %d does not extend tip, expected %d", header.Height, len(m.headers))
	}

	if len(m.headers) > 0 {
		tip := m.headers[len(m.headers)-1]
		if header.HashPrevBlock == nil || !header.HashPrevBlock.IsEqual(tip.Hash()) {
			return errors.NewBlockInvalidError("[AddHeader] header %d does not build on tip %s", header.Height, tip.Hash())
		}
	}

	m.headers = append(m.headers, header)
	m.byHash[*hash] = header

	m.logger.Debugf("[AddHeader] added header %s at height %d", hash, header.Height)

	return nil
}

func (m *Memory) GetHeaderByHeight(ctx context.Context, height uint64) (*model.BlockHeader, error) {
	start := time.Now()
	defer func() {
		stats.NewStat("GetHeaderByHeight").AddTime(start)
	}()

	if err := m.check(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if height >= uint64(len(m.headers)) {
		return nil, errors.NewBlockNotFoundError("[GetHeaderByHeight] no header at height %d", height)
	}

	return m.headers[height], nil
}

func (m *Memory) GetHeaderByHash(ctx context.Context, blockHash *chainhash.Hash) (*model.BlockHeader, error) {
	start := time.Now()
	defer func() {
		stats.NewStat("GetHeaderByHash").AddTime(start)
	}()

	if err := m.check(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	header, ok := m.byHash[*blockHash]
	if !ok {
		return nil, errors.NewBlockNotFoundError("[GetHeaderByHash] header %s not found", blockHash)
	}

	return header, nil
}

func (m *Memory) GetHeadersByHeight(ctx context.Context, startHeight, endHeight uint64) ([]*model.BlockHeader, error) {
	start := time.Now()
	defer func() {
		stats.NewStat("GetHeadersByHeight").AddTime(start)
	}()

	if err := m.check(ctx); err != nil {
		return nil, err
	}

	if endHeight < startHeight {
		return nil, errors.NewInvalidArgumentError("[GetHeadersByHeight] end height %d before start height %d", endHeight, startHeight)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if endHeight >= uint64(len(m.headers)) {
		return nil, errors.NewBlockNotFoundError("[GetHeadersByHeight] no header at height %d", endHeight)
	}

	headers := make([]*model.BlockHeader, 0, endHeight-startHeight+1)
	headers = append(headers, m.headers[startHeight:endHeight+1]...)

	return headers, nil
}

func (m *Memory) GetBestBlockHeader(ctx context.Context) (*model.BlockHeader, error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.headers) == 0 {
		return nil, errors.NewBlockNotFoundError("[GetBestBlockHeader] chain is empty")
	}

	return m.headers[len(m.headers)-1], nil
}

// GetStateRoot returns the state root of the best header.
func (m *Memory) GetStateRoot(ctx context.Context) (*chainhash.Hash, error) {
	best, err := m.GetBestBlockHeader(ctx)
	if err != nil {
		return nil, err
	}

	if best.HashStateRoot == nil {
		return &chainhash.Hash{}, nil
	}

	return best.HashStateRoot, nil
}

// Stop makes every later call fail with a storage unavailable error, the way a
// store behaves while its backend is down.
func (m *Memory) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopped = true
}

// Start undoes Stop.
func (m *Memory) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopped = false
}

func (m *Memory) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.NewContextCanceledError("chain store call canceled", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.stopped {
		return errors.NewStorageUnavailableError("chain store is stopped")
	}

	return nil
}
