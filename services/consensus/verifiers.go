package consensus

import (
	"github.com/bsv-blockchain/teranode-consensus/chaincfg"
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/pkg/cuckoo"
	"github.com/bsv-blockchain/teranode-consensus/pkg/scryptpow"
)

// NewVerifiers returns a verifier for every algorithm the network supports.
func NewVerifiers(params *chaincfg.Params) (map[model.Algo]PowVerifier, error) {
	verifiers := make(map[model.Algo]PowVerifier, len(params.SupportedAlgos))

	for _, algo := range params.SupportedAlgos {
		switch algo {
		case model.AlgoCuckoo:
			c, err := cuckoo.New(params.CuckooEdgeBits)
			if err != nil {
				return nil, errors.NewConfigurationError("[NewVerifiers] invalid cuckoo parameters for %s", params.Name, err)
			}

			verifiers[algo] = c
		case model.AlgoScrypt:
			verifiers[algo] = scryptpow.New()
		default:
			return nil, errors.NewConfigurationError("[NewVerifiers] no verifier for algorithm %s", algo)
		}
	}

	return verifiers, nil
}
