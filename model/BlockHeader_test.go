package model

import (
	"encoding/hex"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlockHeader() *BlockHeader {
	prev := chainhash.HashH([]byte("prev"))
	root := chainhash.HashH([]byte("root"))

	edges := make([]uint64, ProofSize)
	for i := range edges {
		edges[i] = uint64(i*3 + 1)
	}

	return &BlockHeader{
		Version:       1,
		Height:        1000,
		HashPrevBlock: &prev,
		HashStateRoot: &root,
		Timestamp:     1731944075,
		Algo:          AlgoCuckoo,
		Target:        uint256.NewInt(0x1234),
		Solution:      NewSolutionFromUint64s(edges),
		Nonce:         0xdeadbeef,
	}
}

func TestBlockHeaderSizes(t *testing.T) {
	bh := testBlockHeader()

	assert.Equal(t, 120, BlockHeaderMiningSize)
	assert.Equal(t, 456, BlockHeaderSize)
	assert.Len(t, bh.MiningBytes(), BlockHeaderMiningSize)
	assert.Len(t, bh.Bytes(), BlockHeaderSize)
}

func TestBlockHeaderLayout(t *testing.T) {
	bh := testBlockHeader()
	mining := bh.MiningBytes()
	full := bh.Bytes()

	t.Run("both layouts end with the nonce", func(t *testing.T) {
		assert.Equal(t, bh.Nonce, HeaderNonce(mining))
		assert.Equal(t, bh.Nonce, HeaderNonce(full))
	})

	t.Run("shared prefix", func(t *testing.T) {
		prefix := BlockHeaderMiningSize - NonceSize
		assert.Equal(t, mining[:prefix], full[:prefix])
		assert.Equal(t, bh.Solution[:], full[prefix:prefix+CycleLengthU8])
	})

	t.Run("field offsets", func(t *testing.T) {
		assert.Equal(t, []byte{1, 0, 0, 0}, mining[0:4])
		assert.Equal(t, []byte{0xe8, 0x03, 0, 0, 0, 0, 0, 0}, mining[4:12])
		assert.Equal(t, bh.HashPrevBlock.CloneBytes(), mining[12:44])
		assert.Equal(t, bh.HashStateRoot.CloneBytes(), mining[44:76])
		assert.Equal(t, []byte{0x34, 0x12}, mining[84:86])
	})

	t.Run("patching the nonce of the template", func(t *testing.T) {
		patched := SetHeaderNonce(mining, 7)

		bh.Nonce = 7
		assert.Equal(t, bh.MiningBytes(), patched)
	})
}

func TestNewBlockHeaderFromBytes(t *testing.T) {
	bh := testBlockHeader()

	decoded, err := NewBlockHeaderFromBytes(bh.Bytes())
	require.NoError(t, err)

	assert.Equal(t, bh.Version, decoded.Version)
	assert.Equal(t, bh.Height, decoded.Height)
	assert.Equal(t, *bh.HashPrevBlock, *decoded.HashPrevBlock)
	assert.Equal(t, *bh.HashStateRoot, *decoded.HashStateRoot)
	assert.Equal(t, bh.Timestamp, decoded.Timestamp)
	assert.Equal(t, bh.Algo, decoded.Algo)
	assert.True(t, bh.Target.Eq(decoded.Target))
	assert.Equal(t, bh.Solution, decoded.Solution)
	assert.Equal(t, bh.Nonce, decoded.Nonce)
	assert.Equal(t, bh.Hash(), decoded.Hash())

	t.Run("from hex", func(t *testing.T) {
		fromHex, err := NewBlockHeaderFromString(hex.EncodeToString(bh.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, bh.Hash(), fromHex.Hash())

		_, err = NewBlockHeaderFromString("zz")
		require.Error(t, err)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := NewBlockHeaderFromBytes(bh.MiningBytes())
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
	})

	t.Run("unknown algo decodes to cuckoo", func(t *testing.T) {
		b := bh.Bytes()
		b[80] = 9

		decoded, err := NewBlockHeaderFromBytes(b)
		require.NoError(t, err)
		assert.Equal(t, AlgoCuckoo, decoded.Algo)
	})
}

func TestBlockHeaderProof(t *testing.T) {
	bh := testBlockHeader()

	p := bh.Proof()
	assert.Equal(t, bh.Solution, p.Solution)
	assert.Equal(t, bh.Nonce, p.Nonce)
	assert.True(t, bh.Target.Eq(p.Target))

	sealed := &BlockHeader{Version: 1, Height: 3}
	sealed.SetProof(p)

	assert.True(t, p.Equal(sealed.Proof()))

	p.Target.SetUint64(1)
	assert.Equal(t, uint64(0x1234), sealed.Target.Uint64())
}

func TestBlockHeaderHash(t *testing.T) {
	bh := testBlockHeader()
	h1 := bh.Hash()

	bh.Nonce++
	assert.NotEqual(t, *h1, *bh.Hash())

	// nil hashes serialize as zero
	empty := &BlockHeader{}
	assert.Len(t, empty.Bytes(), BlockHeaderSize)
	assert.Contains(t, empty.String(), "height: 0")
	assert.Contains(t, bh.String(), "algo: CUCKOO")
}
