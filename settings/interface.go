package settings

import (
	"time"

	"github.com/bsv-blockchain/teranode-consensus/chaincfg"
)

type ConsensusSettings struct {
	// Type selects the Consensus implementation: "pow" or "dummy".
	Type string
	// DifficultyAdjustment false pins the target to the parent's target.
	DifficultyAdjustment bool
	DifficultyCacheTTL   time.Duration
}

type MiningSettings struct {
	DefaultAlgo     string
	DedupTTL        time.Duration
	CPUMinerWorkers int
	MaxNonce        uint32
}

type Settings struct {
	ClientName     string
	LogLevel       string
	ChainCfgParams *chaincfg.Params
	Consensus      ConsensusSettings
	Mining         MiningSettings
}
