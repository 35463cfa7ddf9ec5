package consensus

import (
	"context"
	"time"

	"github.com/bsv-blockchain/teranode-consensus/chaincfg"
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/settings"
	"github.com/bsv-blockchain/teranode-consensus/stores/blockchain"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
)

// ProofOfWork verifies the algorithm, the target and the solution of a header.
type ProofOfWork struct {
	logger      ulogger.Logger
	settings    *settings.Settings
	chainParams *chaincfg.Params
	difficulty  *Difficulty
	verifiers   map[model.Algo]PowVerifier
}

type Option func(*ProofOfWork)

// WithVerifier replaces the verifier of algo.
func WithVerifier(algo model.Algo, verifier PowVerifier) Option {
	return func(p *ProofOfWork) {
		p.verifiers[algo] = verifier
	}
}

func NewProofOfWork(logger ulogger.Logger, tSettings *settings.Settings, difficulty *Difficulty, opts ...Option) (*ProofOfWork, error) {
	if difficulty == nil {
		return nil, errors.NewConfigurationError("[NewProofOfWork] difficulty is required")
	}

	verifiers, err := NewVerifiers(tSettings.ChainCfgParams)
	if err != nil {
		return nil, err
	}

	initPrometheusMetrics()

	p := &ProofOfWork{
		logger:      logger,
		settings:    tSettings,
		chainParams: tSettings.ChainCfgParams,
		difficulty:  difficulty,
		verifiers:   verifiers,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

func (p *ProofOfWork) VerifyHeader(ctx context.Context, reader blockchain.Reader, header *model.BlockHeader) error {
	start := time.Now()
	defer func() {
		prometheusConsensusVerifyHeader.Observe(float64(time.Since(start).Microseconds()) / 1_000_000)
	}()

	if header == nil {
		return errors.NewInvalidArgumentError("[VerifyHeader] header is nil")
	}

	hash := header.Hash()

	// (a) algorithm
	verifier, ok := p.verifiers[header.Algo]
	if !ok || !p.chainParams.SupportsAlgo(header.Algo) {
		prometheusConsensusRejected.WithLabelValues("algo").Inc()
		return errors.NewBlockInvalidAlgoError("[VerifyHeader][%s] algorithm %s is not supported on %s", hash, header.Algo, p.chainParams.Name)
	}

	// (b) difficulty
	required, err := p.difficulty.CalcNextWorkRequired(ctx, reader, header.Height)
	if err != nil {
		if errors.IsContextError(err) {
			return errors.NewContextCanceledError("[VerifyHeader][%s] canceled while computing required target", hash, err)
		}

		if errors.IsRetryableError(err) {
			return errors.NewStorageUnavailableError("[VerifyHeader][%s] could not compute required target", hash, err)
		}

		return errors.NewProcessingError("[VerifyHeader][%s] could not compute required target", hash, err)
	}

	if header.Target == nil || header.Target.Gt(required) {
		prometheusConsensusRejected.WithLabelValues("difficulty").Inc()

		actual := "<nil>"
		if header.Target != nil {
			actual = header.Target.Hex()
		}

		return errors.NewBlockInvalidDifficultyErrorWithData(header.Height, required.Hex(), actual)
	}

	// (c) solution
	if err = verifier.Verify(header.MiningBytes(), header.Solution, header.Target); err != nil {
		if !errors.IsBlockRejection(err) {
			return errors.NewProcessingError("[VerifyHeader][%s] %s verifier failed", hash, header.Algo, err)
		}

		prometheusConsensusRejected.WithLabelValues("solution").Inc()

		return errors.NewBlockInvalidSolutionError("[VerifyHeader][%s] invalid %s proof", hash, header.Algo, err)
	}

	p.logger.Debugf("[VerifyHeader][%s] valid %s proof at height %d", hash, header.Algo, header.Height)

	return nil
}
