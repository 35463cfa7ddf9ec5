package settings

import (
	"math"
	"strings"
	"testing"

	"github.com/bsv-blockchain/teranode-consensus/chaincfg"
	"github.com/stretchr/testify/require"
)

// check settings object is initialised
func TestInitialiseSettings(t *testing.T) {
	tSettings := NewSettings()

	if tSettings.ChainCfgParams == nil {
		t.Errorf("ChainCfgParams is nil")
	}

	require.Equal(t, "pow", tSettings.Consensus.Type)
	require.Equal(t, "CUCKOO", tSettings.Mining.DefaultAlgo)
	require.Equal(t, uint32(math.MaxUint32), tSettings.Mining.MaxNonce)
	require.Positive(t, tSettings.Mining.DedupTTL)
	require.Positive(t, tSettings.Consensus.DifficultyCacheTTL)

	// context overrides such as cpuminer_workers.dev apply, so compare with what gocore resolves
	require.Equal(t, getInt("cpuminer_workers", 1), tSettings.Mining.CPUMinerWorkers)
	require.Positive(t, tSettings.Mining.CPUMinerWorkers)
	require.Equal(t, strings.ToLower(getString("network", "mainnet")), tSettings.ChainCfgParams.Name)
}

func TestChainParamsOverride(t *testing.T) {
	tests := []struct {
		name   string
		params *chaincfg.Params
		expect uint8
	}{
		{"RegressionNet", &chaincfg.RegressionNetParams, 12},
		{"TestNet", &chaincfg.TestNetParams, 19},
		{"MainNet", &chaincfg.MainNetParams, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tSettings := NewSettings()
			tSettings.ChainCfgParams = tt.params
			require.Equal(t, tt.expect, tSettings.ChainCfgParams.CuckooEdgeBits)
		})
	}
}
