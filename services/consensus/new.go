package consensus

import (
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/settings"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
)

// New returns the Consensus implementation selected by consensus_type.
func New(logger ulogger.Logger, tSettings *settings.Settings, difficulty *Difficulty) (Consensus, error) {
	switch tSettings.Consensus.Type {
	case "dummy":
		logger.Warnf("[Consensus] using dummy consensus, headers are NOT verified")
		return NewDummy(logger), nil
	case "pow", "":
		pow, err := NewProofOfWork(logger, tSettings, difficulty)
		if err != nil {
			return nil, err
		}

		return pow, nil
	}

	return nil, errors.NewConfigurationError("unknown consensus type: %s", tSettings.Consensus.Type)
}
