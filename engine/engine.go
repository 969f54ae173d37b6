// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/blinklabs-io/polaris/database"
	"github.com/blinklabs-io/polaris/database/models"
	"github.com/blinklabs-io/polaris/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event type ranges and validation bounds
const (
	MinEventType   = 1
	MaxEventType   = 99
	MinContentType = 20
	MaxContentType = 39

	// EventTypeReleaseBundle is the only type gated on attestation
	EventTypeReleaseBundle = 21
	EventTypeMintEntity    = 22
	EventTypeResolveID     = 23
	EventTypeAddClaim      = 30
	EventTypeEditClaim     = 31
	EventTypeMergeEntity   = 60

	// MinOriginTime is 2023-01-01 00:00:00 UTC
	MinOriginTime = 1672531200
	// MaxFutureSkew bounds how far ahead of engine time a submission may claim
	MaxFutureSkew = 300

	MaxTags   = 10
	MinTagLen = 3
	MaxTagLen = 12

	MaxLikePathLen = 20

	MaxOracleBatch  = 1000
	MaxOracleWeight = 1000

	MinVoteWindow = 3600    // 1 hour
	MaxVoteWindow = 2592000 // 30 days
	MaxMultiplier = 100000000

	// MaxResetAnchors bounds how much history Reset will destroy
	MaxResetAnchors = 100
)

// Default accounts used when the engine config leaves them unset
const (
	DefaultEscrowAccount  = "registry.escrow"
	DefaultCouncilAccount = "registry.council"
)

// EngineConfig carries the engine's dependencies and policy knobs
type EngineConfig struct {
	Logger         *slog.Logger
	EventBus       *event.EventBus
	Database       *database.Database
	PromRegistry   prometheus.Registerer
	Tokens         TokenLedger
	NowFunc        func() time.Time
	AdminAccount   string
	CouncilAccount string
	EscrowAccount  string
	AllowReset     bool
}

// Engine is the registry's deterministic state-transition engine. Every
// operation executes to completion as one atomic unit under a single mutex;
// external token calls are queued during the transaction and dispatched only
// after it commits.
type Engine struct {
	logger         *slog.Logger
	db             *database.Database
	eventBus       *event.EventBus
	tokens         TokenLedger
	nowFunc        func() time.Time
	metrics        *engineMetrics
	adminAccount   string
	councilAccount string
	escrowAccount  string
	allowReset     bool
	mutex          sync.Mutex
}

type engineMetrics struct {
	anchorsTotal  prometheus.Counter
	votesTotal    prometheus.Counter
	finalizeTotal *prometheus.CounterVec
	mintedTotal   prometheus.Counter
	emissionX     prometheus.Gauge
}

// NewEngine creates an engine from the provided config
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Database == nil {
		return nil, errors.New("no database provided")
	}
	e := &Engine{
		logger:         cfg.Logger,
		db:             cfg.Database,
		eventBus:       cfg.EventBus,
		tokens:         cfg.Tokens,
		nowFunc:        cfg.NowFunc,
		adminAccount:   cfg.AdminAccount,
		councilAccount: cfg.CouncilAccount,
		escrowAccount:  cfg.EscrowAccount,
		allowReset:     cfg.AllowReset,
	}
	if e.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	e.logger = e.logger.With("component", "engine")
	if e.tokens == nil {
		e.tokens = NewMemoryTokenLedger()
	}
	if e.nowFunc == nil {
		e.nowFunc = time.Now
	}
	if e.councilAccount == "" {
		e.councilAccount = DefaultCouncilAccount
	}
	if e.escrowAccount == "" {
		e.escrowAccount = DefaultEscrowAccount
	}
	if cfg.PromRegistry != nil {
		e.initMetrics(cfg.PromRegistry)
	}
	return e, nil
}

func (e *Engine) initMetrics(registry prometheus.Registerer) {
	promRegistry := promauto.With(registry)
	e.metrics = &engineMetrics{
		anchorsTotal: promRegistry.NewCounter(prometheus.CounterOpts{
			Name: "registry_anchors_submitted_total",
			Help: "Total number of anchors submitted",
		}),
		votesTotal: promRegistry.NewCounter(prometheus.CounterOpts{
			Name: "registry_votes_cast_total",
			Help: "Total number of votes cast",
		}),
		finalizeTotal: promRegistry.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_finalizations_total",
			Help: "Total number of finalized anchors by outcome",
		}, []string{"outcome"}),
		mintedTotal: promRegistry.NewCounter(prometheus.CounterOpts{
			Name: "registry_tokens_minted_total",
			Help: "Total tokens minted into escrow by the emission curve",
		}),
		emissionX: promRegistry.NewGauge(prometheus.GaugeOpts{
			Name: "registry_emission_counter",
			Help: "Current value of the emission counter",
		}),
	}
}

// now returns the engine's current time as a unix timestamp
func (e *Engine) now() uint64 {
	t := e.nowFunc().Unix()
	if t < 0 {
		return 0
	}
	return uint64(t)
}

// loadGlobals fetches the globals row inside a transaction, mapping a
// missing row to ErrNotInitialized
func (e *Engine) loadGlobals(txn *database.Txn) (*models.Globals, error) {
	globals, err := e.db.GetGlobals(txn)
	if err != nil {
		return nil, err
	}
	if globals == nil {
		return nil, ErrNotInitialized
	}
	return globals, nil
}

// publish sends an event on the bus after a successful commit
func (e *Engine) publish(eventType event.EventType, data any) {
	if e.eventBus == nil {
		return
	}
	e.eventBus.Publish(eventType, event.NewEvent(eventType, data))
}

// dispatch executes queued token effects after commit. A failure here means
// registry state is already committed; the error is logged and returned so
// the caller knows the external call did not land.
func (e *Engine) dispatch(effects []tokenEffect) error {
	for _, effect := range effects {
		if effect.amount == 0 {
			continue
		}
		var err error
		if effect.from == "" {
			err = e.tokens.Mint(effect.to, effect.amount, effect.memo)
		} else {
			err = e.tokens.Move(
				effect.from,
				effect.to,
				effect.amount,
				effect.memo,
			)
		}
		if err != nil {
			e.logger.Error(
				"token effect failed after commit",
				"from", effect.from,
				"to", effect.to,
				"amount", effect.amount,
				"error", err,
			)
			return fmt.Errorf("token effect: %w", err)
		}
	}
	return nil
}

// isContentType reports whether the type advances the emission counter
func isContentType(eventType uint8) bool {
	return eventType >= MinContentType && eventType <= MaxContentType
}

// requiresAttestation reports whether finalization of this type is gated on
// a trusted attestation
func requiresAttestation(eventType uint8) bool {
	return eventType == EventTypeReleaseBundle
}

// voteWindow returns the configured voting window for an event type
func voteWindow(g *models.Globals, eventType uint8) uint32 {
	switch eventType {
	case EventTypeReleaseBundle:
		return g.VoteWindowRelease
	case EventTypeMintEntity:
		return g.VoteWindowMint
	case EventTypeResolveID:
		return g.VoteWindowResolve
	case EventTypeAddClaim, EventTypeEditClaim:
		return g.VoteWindowClaim
	case EventTypeMergeEntity:
		return g.VoteWindowMerge
	default:
		return g.VoteWindowDefault
	}
}

// multiplier returns the configured emission multiplier for an event type.
// Types without an entry (votes, likes, discussion) have no emission.
func multiplier(g *models.Globals, eventType uint8) uint64 {
	switch eventType {
	case EventTypeReleaseBundle:
		return g.MultiplierRelease
	case EventTypeMintEntity:
		return g.MultiplierMint
	case EventTypeResolveID:
		return g.MultiplierResolve
	case EventTypeAddClaim:
		return g.MultiplierAddClaim
	case EventTypeEditClaim:
		return g.MultiplierEditClaim
	case EventTypeMergeEntity:
		return g.MultiplierMerge
	default:
		return 0
	}
}

// Initialize creates the registry's globals row with default governance
// parameters. It can only succeed once.
func (e *Engine) Initialize(oracle, tokenRef string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if oracle == "" {
		return fmt.Errorf("%w: empty oracle account", ErrInvalidInput)
	}
	if tokenRef == "" {
		return fmt.Errorf("%w: empty token reference", ErrInvalidInput)
	}
	txn := e.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		existing, err := e.db.GetGlobals(txn)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: registry already initialized", ErrAlreadyExists)
		}
		globals := &models.Globals{
			X:                   1, // start at 1 to avoid ln(0)
			Carry:               "0",
			Round:               0,
			OracleAccount:       oracle,
			TokenRef:            tokenRef,
			Paused:              false,
			ApprovalThresholdBp: models.DefaultApprovalThresholdBp,
			MaxVoteWeight:       models.DefaultMaxVoteWeight,
			AttestorThreshold:   models.DefaultAttestorThreshold,
			VoteWindowRelease:   models.DefaultVoteWindowRelease,
			VoteWindowMint:      models.DefaultVoteWindowMint,
			VoteWindowResolve:   models.DefaultVoteWindowResolve,
			VoteWindowClaim:     models.DefaultVoteWindowClaim,
			VoteWindowMerge:     models.DefaultVoteWindowMerge,
			VoteWindowDefault:   models.DefaultVoteWindowDefault,
			MultiplierRelease:   models.DefaultMultiplierRelease,
			MultiplierMint:      models.DefaultMultiplierMint,
			MultiplierResolve:   models.DefaultMultiplierResolve,
			MultiplierAddClaim:  models.DefaultMultiplierAddClaim,
			MultiplierEditClaim: models.DefaultMultiplierEditClaim,
			MultiplierMerge:     models.DefaultMultiplierMerge,
			ApprovedAuthorBp:    models.DefaultApprovedAuthorBp,
			ApprovedVotersBp:    models.DefaultApprovedVotersBp,
			ApprovedStakersBp:   models.DefaultApprovedStakersBp,
			RejectedVotersBp:    models.DefaultRejectedVotersBp,
			RejectedStakersBp:   models.DefaultRejectedStakersBp,
		}
		return e.db.SetGlobals(globals, txn)
	})
	if err != nil {
		return err
	}
	if e.metrics != nil {
		e.metrics.emissionX.Set(1)
	}
	e.logger.Info(
		"registry initialized",
		"oracle", oracle,
		"token_ref", tokenRef,
	)
	return nil
}

// Globals returns a copy of the current globals row
func (e *Engine) Globals() (*models.Globals, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	txn := e.db.Transaction(false)
	defer txn.Release()
	return e.loadGlobals(txn)
}
