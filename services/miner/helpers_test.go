package miner

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/teranode-consensus/chaincfg"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/pkg/cuckoo"
	"github.com/bsv-blockchain/teranode-consensus/settings"
	"github.com/bsv-blockchain/teranode-consensus/stores/blockchain/memory"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func testSettings(params *chaincfg.Params) *settings.Settings {
	return &settings.Settings{
		ClientName:     "test",
		LogLevel:       "DEBUG",
		ChainCfgParams: params,
		Consensus: settings.ConsensusSettings{
			Type:                 "pow",
			DifficultyAdjustment: true,
			DifficultyCacheTTL:   time.Minute,
		},
		Mining: settings.MiningSettings{
			DefaultAlgo:     "CUCKOO",
			DedupTTL:        time.Minute,
			CPUMinerWorkers: 2,
			MaxNonce:        math.MaxUint32,
		},
	}
}

func newTestMiner(t *testing.T, params *chaincfg.Params) *Miner {
	t.Helper()

	m, err := NewMiner(ulogger.NewErrorTestLogger(t), testSettings(params))
	require.NoError(t, err)

	t.Cleanup(func() {
		m.Stop(context.Background())
	})

	return m
}

// genesisStore returns a store holding a single genesis header.
func genesisStore(t *testing.T) *memory.Memory {
	t.Helper()

	store := memory.New(ulogger.TestLogger{})

	require.NoError(t, store.AddHeader(context.Background(), &model.BlockHeader{
		Version:   1,
		Timestamp: 1700000000,
		Target:    chaincfg.RegressionNetParams.GenesisTarget.Clone(),
	}))

	return store
}

// template returns an unsealed header on top of the tip of store.
func template(t *testing.T, store *memory.Memory, algo model.Algo, target *uint256.Int) *model.BlockHeader {
	t.Helper()

	tip, err := store.GetBestBlockHeader(context.Background())
	require.NoError(t, err)

	root := chainhash.HashH([]byte("state"))

	return &model.BlockHeader{
		Version:       1,
		Height:        tip.Height + 1,
		HashPrevBlock: tip.Hash(),
		HashStateRoot: &root,
		Timestamp:     tip.Timestamp + model.BlockTimeSec,
		Algo:          algo,
		Target:        target.Clone(),
	}
}

// solveCuckoo plays an external miner: it tries nonces from 0 until MineAccept
// takes a locally found cycle.
func solveCuckoo(t *testing.T, m *Miner, mineCtx *model.MineCtx) (model.Solution, uint32) {
	t.Helper()

	c, err := cuckoo.New(m.chainParams.CuckooEdgeBits)
	require.NoError(t, err)

	for nonce := uint32(0); nonce < 20_000; nonce++ {
		solution, found, err := c.Solve(mineCtx.HeaderWithNonce(nonce))
		require.NoError(t, err)

		if found && m.MineAccept(mineCtx, solution, nonce) {
			return solution, nonce
		}
	}

	t.Fatal("no solution found")

	return model.Solution{}, 0
}
