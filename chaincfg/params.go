package chaincfg

import (
	"fmt"
	"strings"
	"time"

	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/holiman/uint256"
)

// These variables are the chain proof-of-work limit parameters for each default
// network. A target is a threshold, so the limit is the easiest target a block
// may declare.
var (
	// mainPowLimit is the highest proof of work value a block can have for the
	// main network.  It is the value 2^240 - 1.
	mainPowLimit = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 240), uint256.NewInt(1))

	// testNetPowLimit is the value 2^248 - 1.
	testNetPowLimit = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 248), uint256.NewInt(1))

	// regressionPowLimit accepts every digest: 2^256 - 1.
	regressionPowLimit = new(uint256.Int).SetAllOne()
)

// Params defines a network by the parameters its consensus rules depend on.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// PowLimit defines the highest (easiest) target a block may declare.
	PowLimit *uint256.Int

	// GenesisTarget is the target used for the first BlockWindow blocks, before
	// a full difficulty window exists.
	GenesisTarget *uint256.Int

	// CuckooEdgeBits is the log2 of the number of edges in the cuckoo graph.
	CuckooEdgeBits uint8

	// SupportedAlgos lists the proof-of-work algorithms accepted on this network.
	SupportedAlgos []model.Algo

	// DefaultAlgo is used for mining contexts that do not name an algorithm.
	DefaultAlgo model.Algo

	// TargetTimePerBlock is the desired amount of time to generate each block.
	TargetTimePerBlock time.Duration

	// BlockWindow is the number of most recent headers the retarget looks at.
	BlockWindow uint64

	// MaxAdjustFactor bounds the retarget in both directions: the new target is
	// never more than MaxAdjustFactor times easier or harder than the last one.
	MaxAdjustFactor uint64

	// NoDifficultyAdjustment defines whether the network should skip the
	// normal difficulty adjustment and keep the current difficulty.
	NoDifficultyAdjustment bool
}

// SupportsAlgo reports whether headers mined with algo are accepted on this network.
func (p *Params) SupportsAlgo(algo model.Algo) bool {
	for _, a := range p.SupportedAlgos {
		if a == algo {
			return true
		}
	}

	return false
}

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:               "mainnet",
	PowLimit:           mainPowLimit,
	GenesisTarget:      mainPowLimit,
	CuckooEdgeBits:     29,
	SupportedAlgos:     []model.Algo{model.AlgoCuckoo},
	DefaultAlgo:        model.AlgoCuckoo,
	TargetTimePerBlock: model.BlockTimeSec * time.Second,
	BlockWindow:        model.BlockWindow,
	MaxAdjustFactor:    4,
}

// TestNetParams defines the network parameters for the public test network.
var TestNetParams = Params{
	Name:               "testnet",
	PowLimit:           testNetPowLimit,
	GenesisTarget:      testNetPowLimit,
	CuckooEdgeBits:     19,
	SupportedAlgos:     []model.Algo{model.AlgoCuckoo, model.AlgoScrypt},
	DefaultAlgo:        model.AlgoCuckoo,
	TargetTimePerBlock: model.BlockTimeSec * time.Second,
	BlockWindow:        model.BlockWindow,
	MaxAdjustFactor:    4,
}

// RegressionNetParams defines the network parameters for the regression test
// network. The graph is tiny so a CPU finds cycles in milliseconds.
var RegressionNetParams = Params{
	Name:               "regtest",
	PowLimit:           regressionPowLimit,
	GenesisTarget:      regressionPowLimit,
	CuckooEdgeBits:     12,
	SupportedAlgos:     []model.Algo{model.AlgoCuckoo, model.AlgoScrypt},
	DefaultAlgo:        model.AlgoCuckoo,
	TargetTimePerBlock: model.BlockTimeSec * time.Second,
	BlockWindow:        model.BlockWindow,
	MaxAdjustFactor:    4,
}

// GetChainParams returns the parameters for the named network.
func GetChainParams(network string) (*Params, error) {
	switch strings.ToLower(network) {
	case "mainnet":
		return &MainNetParams, nil
	case "testnet":
		return &TestNetParams, nil
	case "regtest":
		return &RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %s", network)
	}
}

// Copy returns a deep copy of the params, so tests and tools can tweak a network
// without touching the package level values.
func (p *Params) Copy() *Params {
	c := *p
	c.PowLimit = p.PowLimit.Clone()
	c.GenesisTarget = p.GenesisTarget.Clone()
	c.SupportedAlgos = append([]model.Algo(nil), p.SupportedAlgos...)

	return &c
}
