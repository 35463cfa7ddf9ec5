package model

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/holiman/uint256"
)

const (
	// blockHeaderPrefixSize covers every field up to and including the target.
	blockHeaderPrefixSize = 4 + 8 + chainhash.HashSize + chainhash.HashSize + 4 + 4 + 32

	// BlockHeaderMiningSize is the size of the template a miner patches nonces into.
	BlockHeaderMiningSize = blockHeaderPrefixSize + NonceSize

	// BlockHeaderSize is the size of a sealed header, solution included.
	BlockHeaderSize = blockHeaderPrefixSize + CycleLengthU8 + NonceSize
)

type BlockHeader struct {
	// Version of the block.
	Version uint32

	// Height of the block in the chain, genesis is 0.
	Height uint64

	// Hash of the previous block header in the blockchain.
	HashPrevBlock *chainhash.Hash

	// Root of the chain state after applying this block.
	HashStateRoot *chainhash.Hash

	// Time the block was created in unix time.
	Timestamp uint32

	// Proof-of-work algorithm the block was mined with.
	Algo Algo

	// Target the proof was mined against. Lower is harder.
	Target *uint256.Int

	// Cycle proof, all zero for algorithms that do not use one.
	Solution Solution

	// Nonce used to generate the block.
	Nonce uint32
}

func NewBlockHeaderFromBytes(headerBytes []byte) (*BlockHeader, error) {
	if len(headerBytes) != BlockHeaderSize {
		return nil, errors.NewInvalidArgumentError("block header should be %d bytes long, got %d", BlockHeaderSize, len(headerBytes))
	}

	hashPrevBlock, err := chainhash.NewHash(headerBytes[12:44])
	if err != nil {
		return nil, errors.NewProcessingError("error creating previous block hash from bytes", err)
	}

	hashStateRoot, err := chainhash.NewHash(headerBytes[44:76])
	if err != nil {
		return nil, errors.NewProcessingError("error creating state root hash from bytes", err)
	}

	return &BlockHeader{
		Version:       binary.LittleEndian.Uint32(headerBytes[:4]),
		Height:        binary.LittleEndian.Uint64(headerBytes[4:12]),
		HashPrevBlock: hashPrevBlock,
		HashStateRoot: hashStateRoot,
		Timestamp:     binary.LittleEndian.Uint32(headerBytes[76:80]),
		Algo:          AlgoFromUint32(binary.LittleEndian.Uint32(headerBytes[80:84])),
		Target:        U256FromBytes(headerBytes[84:blockHeaderPrefixSize]),
		Solution:      NewSolutionFromBytes(headerBytes[blockHeaderPrefixSize : blockHeaderPrefixSize+CycleLengthU8]),
		Nonce:         binary.LittleEndian.Uint32(headerBytes[BlockHeaderSize-NonceSize:]),
	}, nil
}

func NewBlockHeaderFromString(headerHex string) (*BlockHeader, error) {
	headerBytes, err := hex.DecodeString(headerHex)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("error decoding hex string to bytes", err)
	}

	return NewBlockHeaderFromBytes(headerBytes)
}

func (bh *BlockHeader) Hash() *chainhash.Hash {
	hash := chainhash.DoubleHashH(bh.Bytes())
	return &hash
}

// MiningBytes is the template miners work on: every field except the solution,
// ending with the nonce.
func (bh *BlockHeader) MiningBytes() []byte {
	b := bh.appendPrefix(make([]byte, 0, BlockHeaderMiningSize))
	b = binary.LittleEndian.AppendUint32(b, bh.Nonce)

	return b
}

// Bytes is the full serialization. Like MiningBytes it ends with the nonce.
func (bh *BlockHeader) Bytes() []byte {
	b := bh.appendPrefix(make([]byte, 0, BlockHeaderSize))
	b = append(b, bh.Solution[:]...)
	b = binary.LittleEndian.AppendUint32(b, bh.Nonce)

	return b
}

func (bh *BlockHeader) appendPrefix(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, bh.Version)
	b = binary.LittleEndian.AppendUint64(b, bh.Height)
	b = append(b, hashOrZero(bh.HashPrevBlock)...)
	b = append(b, hashOrZero(bh.HashStateRoot)...)
	b = binary.LittleEndian.AppendUint32(b, bh.Timestamp)
	b = binary.LittleEndian.AppendUint32(b, bh.Algo.Uint32())
	b = append(b, U256ToBytes(bh.Target)...)

	return b
}

func hashOrZero(h *chainhash.Hash) []byte {
	if h == nil {
		return make([]byte, chainhash.HashSize)
	}

	return h.CloneBytes()
}

// Proof returns the work embedded in the header.
func (bh *BlockHeader) Proof() *Proof {
	p := &Proof{
		Solution: bh.Solution,
		Nonce:    bh.Nonce,
		Algo:     bh.Algo,
	}

	if bh.Target != nil {
		p.Target = bh.Target.Clone()
	}

	return p
}

// SetProof seals the header with p.
func (bh *BlockHeader) SetProof(p *Proof) {
	bh.Solution = p.Solution
	bh.Nonce = p.Nonce
	bh.Algo = p.Algo

	if p.Target != nil {
		bh.Target = p.Target.Clone()
	}
}

func (bh *BlockHeader) String() string {
	target := "<nil>"
	if bh.Target != nil {
		target = bh.Target.Hex()
	}

	return fmt.Sprintf("hash: %s, height: %d, prev: %s, time: %d, algo: %s, target: %s, nonce: %d",
		bh.Hash(), bh.Height, hashOrZero32(bh.HashPrevBlock), bh.Timestamp, bh.Algo, target, bh.Nonce)
}

func hashOrZero32(h *chainhash.Hash) chainhash.Hash {
	if h == nil {
		return chainhash.Hash{}
	}

	return *h
}
