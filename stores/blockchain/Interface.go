package blockchain

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/teranode-consensus/model"
)

// Reader is the read-only view of the chain the consensus engine needs.
// Lookups of headers that do not exist fail with errors.ErrBlockNotFound; any
// other failure is a storage error the caller may retry.
type Reader interface {
	GetHeaderByHeight(ctx context.Context, height uint64) (*model.BlockHeader, error)
	GetHeaderByHash(ctx context.Context, blockHash *chainhash.Hash) (*model.BlockHeader, error)
	// GetHeadersByHeight returns the headers from startHeight up to and including endHeight.
	GetHeadersByHeight(ctx context.Context, startHeight, endHeight uint64) ([]*model.BlockHeader, error)
	GetBestBlockHeader(ctx context.Context) (*model.BlockHeader, error)
	GetStateRoot(ctx context.Context) (*chainhash.Hash, error)
}

// Store is a Reader that headers can be appended to.
type Store interface {
	Reader
	AddHeader(ctx context.Context, header *model.BlockHeader) error
}
