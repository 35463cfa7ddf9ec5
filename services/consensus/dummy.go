package consensus

import (
	"context"

	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/stores/blockchain"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
)

// Dummy accepts every header. It is meant for tests and private networks
// where block production is trusted.
type Dummy struct {
	logger ulogger.Logger
}

func NewDummy(logger ulogger.Logger) *Dummy {
	return &Dummy{
		logger: logger,
	}
}

func (d *Dummy) VerifyHeader(_ context.Context, _ blockchain.Reader, header *model.BlockHeader) error {
	if header == nil {
		return errors.NewInvalidArgumentError("[VerifyHeader] header is nil")
	}

	d.logger.Debugf("[VerifyHeader][%s] accepting header at height %d without verification", header.Hash(), header.Height)

	return nil
}
