package miner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bsv-blockchain/teranode-consensus/chaincfg"
	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
	"github.com/bsv-blockchain/teranode-consensus/services/consensus"
	"github.com/bsv-blockchain/teranode-consensus/settings"
	"github.com/bsv-blockchain/teranode-consensus/ulogger"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/jellydator/ttlcache/v3"
	"github.com/looplab/fsm"
	"go.uber.org/atomic"
)

// round is one issued mining context. It is never modified after it is
// published.
type round struct {
	id         uuid.UUID
	algo       model.Algo
	mineCtx    *model.MineCtx
	completion *Completion
	issuedAt   time.Time
}

// Miner is the MineState of a node. Every supported algorithm has at most one
// open round. Readers load the open round without locking; opening, resolving
// and abandoning rounds is serialized by mu.
type Miner struct {
	logger        ulogger.Logger
	settings      *settings.Settings
	chainParams   *chaincfg.Params
	verifiers     map[model.Algo]consensus.PowVerifier
	mu            sync.Mutex
	rounds        map[model.Algo]*atomic.Pointer[round]
	states        map[model.Algo]*fsm.FSM
	defaultTarget *atomic.Pointer[uint256.Int]
	defaultAlgo   *atomic.Uint32
	stopped       *atomic.Bool
	resolved      map[model.Algo]uuid.UUID // last round of each algo closed by a submit
	submitted     *ttlcache.Cache[string, struct{}]
}

func NewMiner(logger ulogger.Logger, tSettings *settings.Settings) (*Miner, error) {
	params := tSettings.ChainCfgParams
	if params == nil {
		return nil, errors.NewConfigurationError("[NewMiner] no chain params configured")
	}

	verifiers, err := consensus.NewVerifiers(params)
	if err != nil {
		return nil, errors.NewConfigurationError("[NewMiner] failed to create verifiers", err)
	}

	defaultAlgo := params.DefaultAlgo
	if tSettings.Mining.DefaultAlgo != "" {
		defaultAlgo = model.AlgoFromString(tSettings.Mining.DefaultAlgo)
	}

	if !params.SupportsAlgo(defaultAlgo) {
		return nil, errors.NewConfigurationError("[NewMiner] default algorithm %s is not supported on %s", defaultAlgo, params.Name)
	}

	initPrometheusMetrics()

	m := &Miner{
		logger:        logger,
		settings:      tSettings,
		chainParams:   params,
		verifiers:     verifiers,
		rounds:        make(map[model.Algo]*atomic.Pointer[round], len(params.SupportedAlgos)),
		states:        make(map[model.Algo]*fsm.FSM, len(params.SupportedAlgos)),
		defaultTarget: atomic.NewPointer(params.GenesisTarget.Clone()),
		defaultAlgo:   atomic.NewUint32(defaultAlgo.Uint32()),
		stopped:       atomic.NewBool(false),
		resolved:      make(map[model.Algo]uuid.UUID, len(params.SupportedAlgos)),
	}

	for _, algo := range params.SupportedAlgos {
		m.rounds[algo] = atomic.NewPointer[round](nil)
		m.states[algo] = newRoundStateMachine()
	}

	m.submitted = ttlcache.New[string, struct{}](
		ttlcache.WithTTL[string, struct{}](tSettings.Mining.DedupTTL),
		ttlcache.WithDisableTouchOnHit[string, struct{}](),
	)

	go m.submitted.Start()

	return m, nil
}

// Stop abandons all open rounds and ends the dedup cache expiry loop. Rounds
// opened after Stop are abandoned straight away and submits fail.
func (m *Miner) Stop(ctx context.Context) {
	if !m.stopped.CompareAndSwap(false, true) {
		return
	}

	m.logger.Infof("[Miner] Stopping miner")

	m.mu.Lock()
	for algo := range m.rounds {
		m.abandonLocked(ctx, algo)
	}
	m.mu.Unlock()

	m.submitted.Stop()
}

func (m *Miner) DefaultAlgo() model.Algo {
	return model.AlgoFromUint32(m.defaultAlgo.Load())
}

// SetDefaultAlgo sets the algorithm of rounds and contexts that do not name
// one.
func (m *Miner) SetDefaultAlgo(algo model.Algo) error {
	if !m.chainParams.SupportsAlgo(algo) {
		return errors.NewInvalidArgumentError("[SetDefaultAlgo] algorithm %s is not supported on %s", algo, m.chainParams.Name)
	}

	m.defaultAlgo.Store(algo.Uint32())

	return nil
}

func (m *Miner) DefaultTarget() *uint256.Int {
	return m.defaultTarget.Load().Clone()
}

// SetDefaultTarget sets the target of contexts that do not carry one. The
// block producer calls it with the target the next block must meet.
func (m *Miner) SetDefaultTarget(target *uint256.Int) error {
	if target == nil || target.IsZero() {
		return errors.NewInvalidArgumentError("[SetDefaultTarget] target must be positive")
	}

	m.defaultTarget.Store(target.Clone())

	return nil
}

// State returns the round state of algo, empty for unsupported algorithms.
func (m *Miner) State(algo model.Algo) string {
	state, ok := m.states[algo]
	if !ok {
		return ""
	}

	return state.Current()
}

func (m *Miner) GetCurrentMineCtx(algo model.Algo) *model.MineCtx {
	current, ok := m.rounds[algo]
	if !ok {
		return nil
	}

	r := current.Load()
	if r == nil {
		return nil
	}

	return r.mineCtx.Clone()
}

func (m *Miner) MineAccept(mineCtx *model.MineCtx, solution model.Solution, nonce uint32) bool {
	if mineCtx == nil || len(mineCtx.Header) < model.NonceSize {
		return false
	}

	algo := mineCtx.AlgoOr(m.DefaultAlgo())

	// the solution of a scrypt proof is unused
	if algo == model.AlgoCuckoo && solution.IsZero() {
		return false
	}

	current, ok := m.rounds[algo]
	if !ok {
		return false
	}

	r := current.Load()
	if r == nil || !r.mineCtx.Equal(mineCtx) {
		return false
	}

	verifier, ok := m.verifiers[algo]
	if !ok {
		return false
	}

	target := mineCtx.TargetOr(m.defaultTarget.Load())

	if err := verifier.Verify(mineCtx.HeaderWithNonce(nonce), solution, target); err != nil {
		m.logger.Debugf("[MineAccept][%s] nonce %d rejected: %v", r.id, nonce, err)
		return false
	}

	return true
}

func (m *Miner) MineBlock(header []byte, opts ...MineOption) (<-chan *model.Proof, *Completion) {
	options := &mineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	completion, rx := newCompletion()

	algo := m.DefaultAlgo()
	if options.algo != nil {
		algo = *options.algo
	}

	current, ok := m.rounds[algo]
	if !ok {
		m.logger.Warnf("[MineBlock] algorithm %s is not supported on %s, abandoning round", algo, m.chainParams.Name)
		completion.Abandon()

		return rx, completion
	}

	if len(header) < model.NonceSize {
		m.logger.Errorf("[MineBlock] header of %d bytes has no nonce slot, abandoning round", len(header))
		completion.Abandon()

		return rx, completion
	}

	if m.stopped.Load() {
		m.logger.Warnf("[MineBlock] miner is stopped, abandoning %s round", algo)
		completion.Abandon()

		return rx, completion
	}

	r := &round{
		id:         uuid.New(),
		algo:       algo,
		mineCtx:    model.NewMineCtx(header, options.target, algo.Ptr()),
		completion: completion,
		issuedAt:   time.Now(),
	}

	ctx := context.Background()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.abandonLocked(ctx, algo)

	current.Store(r)

	if err := m.states[algo].Event(ctx, EventIssue); err != nil {
		m.logger.Errorf("[MineBlock][%s] %v", r.id, err)
	}

	prometheusMinerRoundsIssued.WithLabelValues(algo.String()).Inc()

	m.logger.Infof("[MineBlock][%s] issued %s round", r.id, algo)

	return rx, completion
}

// Submit accepts a solution for the open round of algo. The proof is delivered
// to the producer of the round, which is closed. A solution and nonce pair is
// accepted once per round.
func (m *Miner) Submit(algo model.Algo, solution model.Solution, nonce uint32) (*model.Proof, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped.Load() {
		prometheusMinerSubmitRejected.WithLabelValues("stopped").Inc()
		return nil, errors.NewServiceUnavailableError("[Submit] miner is stopped")
	}

	current, ok := m.rounds[algo]
	if !ok {
		prometheusMinerSubmitRejected.WithLabelValues("algo").Inc()
		return nil, errors.NewInvalidArgumentError("[Submit] algorithm %s is not supported on %s", algo, m.chainParams.Name)
	}

	r := current.Load()
	if r == nil {
		if last, found := m.resolved[algo]; found && m.submitted.Get(submitKey(last, solution, nonce)) != nil {
			prometheusMinerSubmitRejected.WithLabelValues("duplicate").Inc()
			return nil, errors.NewMiningDuplicateSubmitError("[Submit][%s] %s solution with nonce %d already accepted", last, algo, nonce)
		}

		prometheusMinerSubmitRejected.WithLabelValues("stale").Inc()

		return nil, errors.NewMiningStaleContextError("[Submit] no open %s round", algo)
	}

	if !m.MineAccept(r.mineCtx, solution, nonce) {
		prometheusMinerSubmitRejected.WithLabelValues("invalid").Inc()
		return nil, errors.NewMiningSolutionRejectedError("[Submit][%s] nonce %d does not solve the round", r.id, nonce)
	}

	if _, found := m.submitted.GetOrSet(submitKey(r.id, solution, nonce), struct{}{}); found {
		prometheusMinerSubmitRejected.WithLabelValues("duplicate").Inc()
		return nil, errors.NewMiningDuplicateSubmitError("[Submit][%s] %s solution with nonce %d already accepted", r.id, algo, nonce)
	}

	proof := &model.Proof{
		Solution: solution,
		Nonce:    nonce,
		Algo:     algo,
		Target:   r.mineCtx.TargetOr(m.defaultTarget.Load()).Clone(),
	}

	r.completion.Send(proof)
	current.Store(nil)
	m.resolved[algo] = r.id

	if err := m.states[algo].Event(context.Background(), EventResolve); err != nil {
		m.logger.Errorf("[Submit][%s] %v", r.id, err)
	}

	prometheusMinerBlockMined.Observe(float64(time.Since(r.issuedAt).Microseconds()) / 1_000_000)

	m.logger.Infof("[Submit][%s] accepted %s solution with nonce %d", r.id, algo, nonce)

	return proof, nil
}

func submitKey(roundID uuid.UUID, solution model.Solution, nonce uint32) string {
	return fmt.Sprintf("%s:%s:%d", roundID, solution.Hash(), nonce)
}

// Abandon closes the open round of algo without a proof.
func (m *Miner) Abandon(algo model.Algo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.abandonLocked(context.Background(), algo)
}

// AbandonRound closes the round completion belongs to, if it is still open.
// A newer round of the same algo is left alone.
func (m *Miner) AbandonRound(completion *Completion) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for algo, current := range m.rounds {
		if r := current.Load(); r != nil && r.completion == completion {
			m.abandonLocked(context.Background(), algo)
			return true
		}
	}

	completion.Abandon()

	return false
}

func (m *Miner) abandonLocked(ctx context.Context, algo model.Algo) {
	current, ok := m.rounds[algo]
	if !ok {
		return
	}

	r := current.Swap(nil)
	if r == nil {
		return
	}

	r.completion.Abandon()

	if err := m.states[algo].Event(ctx, EventAbandon); err != nil {
		m.logger.Errorf("[Miner][%s] %v", r.id, err)
	}

	prometheusMinerRoundsAbandoned.WithLabelValues(algo.String()).Inc()

	m.logger.Infof("[Miner][%s] abandoned %s round", r.id, algo)
}
