// Package consensus decides whether a block header carries valid proof-of-work
// for its position in the chain.
package consensus

import (
	"context"

	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/stores/blockchain"
	"github.com/holiman/uint256"
)

// Consensus verifies headers against the chain they claim to extend.
//
// A nil error accepts the header. Errors for which errors.IsBlockRejection is
// true mean the header can never be valid: the algorithm is not supported, the
// target is easier than required or the proof is not a solution. Any other
// error means this node could not verify the header right now, typically
// because the chain reader failed.
type Consensus interface {
	VerifyHeader(ctx context.Context, reader blockchain.Reader, header *model.BlockHeader) error
}

// PowVerifier checks the work of one algorithm. header is the mining template
// with the nonce patched in.
type PowVerifier interface {
	Verify(header []byte, solution model.Solution, target *uint256.Int) error
}
