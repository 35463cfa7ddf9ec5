package consensus

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

const genesisTime = uint32(1700000000)

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
			CPUMinerWorkers: 1,
			MaxNonce:        math.MaxUint32,
		},
	}
}

func newTestDifficulty(t *testing.T, params *chaincfg.Params) *Difficulty {
	t.Helper()

	d, err := NewDifficulty(ulogger.TestLogger{}, testSettings(params))
	require.NoError(t, err)

	t.Cleanup(d.Stop)

	return d
}

// pow2 returns 2^n.
func pow2(n uint) *uint256.Int {
	return new(uint256.Int).Lsh(uint256.NewInt(1), n)
}

// window builds n consecutive headers spaced spacing seconds apart, all with target.
func window(n int, spacing uint32, target *uint256.Int) []*model.BlockHeader {
	headers := make([]*model.BlockHeader, n)

	for i := range headers {
		headers[i] = &model.BlockHeader{
			Version:   1,
			Height:    uint64(i),
			Timestamp: genesisTime + uint32(i)*spacing,
			Target:    target.Clone(),
		}
	}

	return headers
}

// buildChain stores n linked headers spaced spacing seconds apart. The headers
// carry no proof, the store does not verify them.
func buildChain(t *testing.T, n int, spacing uint32, target *uint256.Int) *memory.Memory {
	t.Helper()

	return storeChain(t, window(n, spacing, target))
}

// storeChain links headers in order and stores them.
func storeChain(t *testing.T, headers []*model.BlockHeader) *memory.Memory {
	t.Helper()

	store := memory.New(ulogger.TestLogger{})

	var prev *chainhash.Hash

	for _, header := range headers {
		header.HashPrevBlock = prev
		require.NoError(t, store.AddHeader(context.Background(), header))

		prev = header.Hash()
	}

	return store
}

// childOf returns an unsealed header extending the tip of store.
func childOf(t *testing.T, store *memory.Memory, algo model.Algo, target *uint256.Int) *model.BlockHeader {
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

// sealCuckoo tries nonces until the header's graph has a 42-cycle.
func sealCuckoo(t *testing.T, edgeBits uint8, header *model.BlockHeader) {
	t.Helper()

	c, err := cuckoo.New(edgeBits)
	require.NoError(t, err)

	for nonce := uint32(0); nonce < 20_000; nonce++ {
		header.Nonce = nonce

		solution, found, err := c.Solve(header.MiningBytes())
		require.NoError(t, err)

		if found {
			header.Solution = solution
			return
		}
	}

	t.Fatal("no cycle found")
}
