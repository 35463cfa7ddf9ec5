package settings

import (
	"github.com/bsv-blockchain/teranode-consensus/chaincfg"
)

func NewSettings() *Settings {
	params, err := chaincfg.GetChainParams(getString("network", "mainnet"))
	if err != nil {
		panic(err)
	}

	return &Settings{
		ClientName:     getString("clientName", "defaultClientName"),
		LogLevel:       getString("logLevel", "INFO"),
		ChainCfgParams: params,
		Consensus: ConsensusSettings{
			Type:                 getString("consensus_type", "pow"),
			DifficultyAdjustment: getBool("difficulty_adjustment", !params.NoDifficultyAdjustment),
			DifficultyCacheTTL:   getSeconds("difficulty_cache_ttl", 600),
		},
		Mining: MiningSettings{
			DefaultAlgo:     getString("mining_default_algo", params.DefaultAlgo.String()),
			DedupTTL:        getSeconds("mining_dedup_ttl", 300),
			CPUMinerWorkers: getInt("cpuminer_workers", 1),
			MaxNonce:        getNonceLimit("cpuminer_max_nonce"),
		},
	}
}
