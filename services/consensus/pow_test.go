package consensus

import (
	"context"
	"testing"

	"github.com/bsv-blockchain/teranode-consensus/chaincfg"
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/pkg/cuckoo"
	"github.com/bsv-blockchain/teranode-consensus/pkg/scryptpow"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	err error
}

func (f *fakeVerifier) Verify(_ []byte, _ model.Solution, _ *uint256.Int) error {
	return f.err
}

func newTestProofOfWork(t *testing.T, params *chaincfg.Params, opts ...Option) *ProofOfWork {
	t.Helper()

	pow, err := NewProofOfWork(ulogger.TestLogger{}, testSettings(params), newTestDifficulty(t, params), opts...)
	require.NoError(t, err)

	return pow
}

// sealScrypt tries nonces until the scrypt digest of the header meets its target.
func sealScrypt(t *testing.T, header *model.BlockHeader) {
	t.Helper()

	for nonce := uint32(0); nonce < 1_000; nonce++ {
		header.Nonce = nonce

		digest, err := scryptpow.Digest(header.MiningBytes())
		require.NoError(t, err)

		if !digest.Gt(header.Target) {
			return
		}
	}

	t.Fatal("no nonce found")
}

func TestNewProofOfWork(t *testing.T) {
	params := chaincfg.RegressionNetParams.Copy()

	_, err := NewProofOfWork(ulogger.TestLogger{}, testSettings(params), nil)
	require.Error(t, err)

	bad := params.Copy()
	bad.CuckooEdgeBits = 2

	_, err = NewProofOfWork(ulogger.TestLogger{}, testSettings(bad), newTestDifficulty(t, params))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestVerifyHeaderValid(t *testing.T) {
	ctx := context.Background()
	params := chaincfg.RegressionNetParams.Copy()

	t.Run("cuckoo in the first window", func(t *testing.T) {
		pow := newTestProofOfWork(t, params)
		store := buildChain(t, 3, model.BlockTimeSec, params.PowLimit)

		header := childOf(t, store, model.AlgoCuckoo, params.PowLimit)
		sealCuckoo(t, params.CuckooEdgeBits, header)

		require.NoError(t, pow.VerifyHeader(ctx, store, header))
	})

	t.Run("cuckoo after the first window", func(t *testing.T) {
		pow := newTestProofOfWork(t, params)
		store := buildChain(t, model.BlockWindow+6, model.BlockTimeSec, params.PowLimit)

		header := childOf(t, store, model.AlgoCuckoo, params.PowLimit)
		sealCuckoo(t, params.CuckooEdgeBits, header)

		require.NoError(t, pow.VerifyHeader(ctx, store, header))

		// the sealed header extends the chain
		require.NoError(t, store.AddHeader(ctx, header))
	})

	t.Run("scrypt", func(t *testing.T) {
		pow := newTestProofOfWork(t, params)
		store := buildChain(t, 3, model.BlockTimeSec, params.PowLimit)

		header := childOf(t, store, model.AlgoScrypt, pow2(255))
		sealScrypt(t, header)

		require.NoError(t, pow.VerifyHeader(ctx, store, header))
	})
}

func TestVerifyHeaderRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("nil header", func(t *testing.T) {
		pow := newTestProofOfWork(t, chaincfg.RegressionNetParams.Copy())

		err := pow.VerifyHeader(ctx, buildChain(t, 1, model.BlockTimeSec, pow2(200)), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
		assert.False(t, errors.IsBlockRejection(err))
	})

	t.Run("algo not supported on network", func(t *testing.T) {
		params := chaincfg.MainNetParams.Copy()
		pow := newTestProofOfWork(t, params)
		store := buildChain(t, 3, model.BlockTimeSec, params.PowLimit)

		header := childOf(t, store, model.AlgoScrypt, params.PowLimit)

		err := pow.VerifyHeader(ctx, store, header)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBlockInvalidAlgo))
		assert.True(t, errors.IsBlockRejection(err))
	})

	t.Run("unknown algo", func(t *testing.T) {
		params := chaincfg.RegressionNetParams.Copy()
		pow := newTestProofOfWork(t, params)
		store := buildChain(t, 3, model.BlockTimeSec, params.PowLimit)

		header := childOf(t, store, model.Algo(7), params.PowLimit)

		err := pow.VerifyHeader(ctx, store, header)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBlockInvalidAlgo))
	})

	t.Run("target easier than required", func(t *testing.T) {
		params := chaincfg.RegressionNetParams.Copy()
		params.GenesisTarget = pow2(200)

		pow := newTestProofOfWork(t, params)
		store := buildChain(t, 3, model.BlockTimeSec, pow2(200))

		header := childOf(t, store, model.AlgoCuckoo, pow2(201))

		err := pow.VerifyHeader(ctx, store, header)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBlockInvalidDifficulty))
		assert.True(t, errors.IsBlockRejection(err))

		var data *errors.TargetErrData
		require.True(t, errors.AsData(err, &data))
		assert.Equal(t, uint64(3), data.Height)
		assert.Equal(t, pow2(200).Hex(), data.Required)
		assert.Equal(t, pow2(201).Hex(), data.Actual)
	})

	t.Run("missing target", func(t *testing.T) {
		params := chaincfg.RegressionNetParams.Copy()
		pow := newTestProofOfWork(t, params)
		store := buildChain(t, 3, model.BlockTimeSec, params.PowLimit)

		header := childOf(t, store, model.AlgoCuckoo, params.PowLimit)
		header.Target = nil

		err := pow.VerifyHeader(ctx, store, header)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBlockInvalidDifficulty))
	})

	t.Run("empty solution", func(t *testing.T) {
		params := chaincfg.RegressionNetParams.Copy()
		pow := newTestProofOfWork(t, params)
		store := buildChain(t, 3, model.BlockTimeSec, params.PowLimit)

		header := childOf(t, store, model.AlgoCuckoo, params.PowLimit)

		err := pow.VerifyHeader(ctx, store, header)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBlockInvalidSolution))
		assert.True(t, errors.IsBlockRejection(err))
	})

	t.Run("solution of another nonce", func(t *testing.T) {
		params := chaincfg.RegressionNetParams.Copy()
		pow := newTestProofOfWork(t, params)
		store := buildChain(t, 3, model.BlockTimeSec, params.PowLimit)

		header := childOf(t, store, model.AlgoCuckoo, params.PowLimit)
		sealCuckoo(t, params.CuckooEdgeBits, header)
		require.NoError(t, pow.VerifyHeader(ctx, store, header))

		header.Nonce++

		err := pow.VerifyHeader(ctx, store, header)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBlockInvalidSolution))
	})

	t.Run("scrypt above target", func(t *testing.T) {
		params := chaincfg.RegressionNetParams.Copy()
		pow := newTestProofOfWork(t, params, WithVerifier(model.AlgoScrypt, &fakeVerifier{err: scryptpow.ErrAboveTarget}))
		store := buildChain(t, 3, model.BlockTimeSec, params.PowLimit)

		err := pow.VerifyHeader(ctx, store, childOf(t, store, model.AlgoScrypt, params.PowLimit))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBlockInvalidSolution))
	})
}

func TestVerifyHeaderNotRejections(t *testing.T) {
	ctx := context.Background()
	params := chaincfg.RegressionNetParams.Copy()

	t.Run("reader unavailable", func(t *testing.T) {
		pow := newTestProofOfWork(t, params)
		store := buildChain(t, model.BlockWindow, model.BlockTimeSec, params.PowLimit)

		header := childOf(t, store, model.AlgoCuckoo, params.PowLimit)
		sealCuckoo(t, params.CuckooEdgeBits, header)

		store.Stop()

		err := pow.VerifyHeader(ctx, store, header)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrStorageUnavailable))
		assert.True(t, errors.IsRetryableError(err))
		assert.False(t, errors.IsBlockRejection(err))

		store.Start()

		require.NoError(t, pow.VerifyHeader(ctx, store, header))
	})

	t.Run("canceled", func(t *testing.T) {
		pow := newTestProofOfWork(t, params)
		store := buildChain(t, model.BlockWindow, model.BlockTimeSec, params.PowLimit)

		header := childOf(t, store, model.AlgoCuckoo, params.PowLimit)

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		err := pow.VerifyHeader(cancelCtx, store, header)
		require.Error(t, err)
		assert.True(t, errors.IsContextError(err))
		assert.False(t, errors.IsBlockRejection(err))
	})

	t.Run("bad window data", func(t *testing.T) {
		pow := newTestProofOfWork(t, params)

		headers := window(model.BlockWindow, model.BlockTimeSec, params.PowLimit)
		headers[1].Target = nil
		store := storeChain(t, headers)

		header := childOf(t, store, model.AlgoCuckoo, params.PowLimit)

		err := pow.VerifyHeader(ctx, store, header)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrProcessing))
		assert.False(t, errors.Is(err, errors.ErrStorageUnavailable))
		assert.False(t, errors.IsRetryableError(err))
		assert.False(t, errors.IsBlockRejection(err))
	})

	t.Run("verifier failure", func(t *testing.T) {
		pow := newTestProofOfWork(t, params, WithVerifier(model.AlgoCuckoo, &fakeVerifier{err: errors.NewServiceError("out of memory")}))
		store := buildChain(t, 3, model.BlockTimeSec, params.PowLimit)

		err := pow.VerifyHeader(ctx, store, childOf(t, store, model.AlgoCuckoo, params.PowLimit))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrProcessing))
		assert.False(t, errors.IsBlockRejection(err))
	})
}

func TestVerifyHeaderMatchesVerifier(t *testing.T) {
	params := chaincfg.RegressionNetParams.Copy()
	store := buildChain(t, 3, model.BlockTimeSec, params.PowLimit)

	header := childOf(t, store, model.AlgoCuckoo, params.PowLimit)
	sealCuckoo(t, params.CuckooEdgeBits, header)

	c, err := cuckoo.New(params.CuckooEdgeBits)
	require.NoError(t, err)

	require.NoError(t, c.Verify(header.MiningBytes(), header.Solution, header.Target))
	require.NoError(t, newTestProofOfWork(t, params).VerifyHeader(context.Background(), store, header))
}
