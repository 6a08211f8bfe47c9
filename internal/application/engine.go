package application

import (
	"fmt"
	"slices"
	"time"

	"github.com/bnema/picquiz/internal/domain"
	"github.com/bnema/picquiz/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const DefaultRoundSeconds = 5

// RoundSelector picks the next item among those not in used. It returns
// domain.ErrSelectorExhausted when every item is used.
type RoundSelector interface {
	SelectNext(pool []domain.Item, used map[domain.ItemID]struct{}) (domain.Item, error)
}

type Option func(*Engine)

func WithSelector(selector RoundSelector) Option {
	return func(e *Engine) {
		if selector != nil {
			e.selector = selector
		}
	}
}

func WithRoundSeconds(seconds int) Option {
	return func(e *Engine) {
		if seconds > 0 {
			e.roundSeconds = seconds
		}
	}
}

func WithClock(clock ports.Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithSessionIDs(next func() string) Option {
	return func(e *Engine) {
		if next != nil {
			e.newSessionID = next
		}
	}
}

// Engine owns the session state machine. It is not safe for concurrent use:
// drivers deliver Start, Submit, Tick and End one at a time.
type Engine struct {
	pool         []domain.Item
	selector     RoundSelector
	clock        ports.Clock
	logger       zerolog.Logger
	newSessionID func() string
	roundSeconds int

	phase     domain.Phase
	sessionID string
	startedAt time.Time
	current   *domain.Item
	used      map[domain.ItemID]struct{}
	usedOrder []domain.ItemID
	remaining int
	elapsed   int
	rounds    int
	previous  int
	maxRounds int
}

func NewEngine(items []domain.Item, opts ...Option) (*Engine, error) {
	if err := domain.ValidatePool(items); err != nil {
		return nil, fmt.Errorf("validate item pool: %w", err)
	}

	e := &Engine{
		pool:         slices.Clone(items),
		clock:        ports.SystemClock{},
		logger:       zerolog.Nop(),
		newSessionID: uuid.NewString,
		roundSeconds: DefaultRoundSeconds,
		phase:        domain.PhaseIdle,
		used:         map[domain.ItemID]struct{}{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.selector == nil {
		e.selector = NewSelector(globalRandom{})
	}

	e.remaining = e.roundSeconds
	e.selectPreview()

	return e, nil
}

func (e *Engine) Phase() domain.Phase {
	return e.phase
}

func (e *Engine) PoolSize() int {
	return len(e.pool)
}

func (e *Engine) RoundSeconds() int {
	return e.roundSeconds
}

func (e *Engine) State() domain.SessionState {
	state := domain.SessionState{
		Phase:                 e.phase,
		SessionID:             e.sessionID,
		UsedItemIDs:           slices.Clone(e.usedOrder),
		RemainingSeconds:      e.remaining,
		ElapsedSeconds:        e.elapsed,
		RoundsCorrect:         e.rounds,
		PreviousRoundsCorrect: e.previous,
		MaxRoundsCorrect:      e.maxRounds,
	}
	if e.current != nil {
		current := *e.current
		state.CurrentItem = &current
	}

	return state
}

func (e *Engine) Start() (domain.SessionState, error) {
	if len(e.pool) == 0 {
		return e.State(), domain.ErrPoolEmpty
	}
	if e.phase == domain.PhaseRunning {
		e.logger.Warn().Str("session_id", e.sessionID).Msg("restarting a running session")
	}

	first, err := e.selector.SelectNext(e.pool, nil)
	if err != nil {
		return e.State(), fmt.Errorf("select first item: %w", err)
	}

	e.previous = e.rounds
	e.rounds = 0
	clear(e.used)
	e.usedOrder = nil
	e.elapsed = 0
	e.remaining = e.roundSeconds
	e.current = &first
	e.sessionID = e.newSessionID()
	e.startedAt = e.clock.Now()
	e.phase = domain.PhaseRunning

	e.logger.Info().
		Str("session_id", e.sessionID).
		Int("pool_size", len(e.pool)).
		Int("previous_rounds_correct", e.previous).
		Msg("session started")

	return e.State(), nil
}

func (e *Engine) Submit(raw string) (domain.Outcome, error) {
	if e.phase != domain.PhaseRunning {
		return domain.Outcome{}, e.reject("submit answer")
	}

	if !domain.AnswerMatches(raw, e.current.Answer) {
		return domain.Outcome{Ended: true, Summary: e.end(domain.EndReasonWrongAnswer)}, nil
	}

	e.used[e.current.ID] = struct{}{}
	e.usedOrder = append(e.usedOrder, e.current.ID)
	e.rounds++
	e.maxRounds = max(e.maxRounds, e.rounds)

	e.logger.Debug().
		Str("session_id", e.sessionID).
		Str("item_id", string(e.current.ID)).
		Int("rounds_correct", e.rounds).
		Msg("correct answer")

	if len(e.used) == len(e.pool) {
		return domain.Outcome{Correct: true, Ended: true, Summary: e.end(domain.EndReasonExhausted)}, nil
	}

	next, err := e.selector.SelectNext(e.pool, e.used)
	if err != nil {
		e.logger.Error().Err(err).
			Str("session_id", e.sessionID).
			Int("used", len(e.used)).
			Int("pool_size", len(e.pool)).
			Msg("selector exhausted before the pool was used up")
		return domain.Outcome{Correct: true, Ended: true, Summary: e.end(domain.EndReasonInvariant)}, nil
	}

	e.current = &next
	e.remaining = e.roundSeconds

	return domain.Outcome{Correct: true}, nil
}

func (e *Engine) Tick() (domain.Outcome, error) {
	if e.phase != domain.PhaseRunning {
		return domain.Outcome{}, e.reject("tick")
	}

	e.remaining--
	e.elapsed++
	if e.remaining <= 0 {
		e.remaining = 0
		return domain.Outcome{Ended: true, Summary: e.end(domain.EndReasonTimeout)}, nil
	}

	return domain.Outcome{}, nil
}

// End stops the running session at the player's request.
func (e *Engine) End() (domain.Summary, error) {
	if e.phase != domain.PhaseRunning {
		return domain.Summary{}, e.reject("end session")
	}

	return e.end(domain.EndReasonManual), nil
}

func (e *Engine) end(reason domain.EndReason) domain.Summary {
	summary := domain.Summary{
		SessionID:             e.sessionID,
		Reason:                reason,
		PreviousRoundsCorrect: e.previous,
		MaxRoundsCorrect:      e.maxRounds,
		ElapsedSeconds:        e.elapsed,
		RoundsCorrect:         e.rounds,
		StartedAt:             e.startedAt,
		EndedAt:               e.clock.Now(),
	}
	if e.current != nil {
		summary.Answer = e.current.Answer
	}

	e.phase = domain.PhaseIdle
	e.remaining = e.roundSeconds
	e.elapsed = 0
	e.selectPreview()

	e.logger.Info().
		Str("session_id", summary.SessionID).
		Str("reason", string(reason)).
		Int("rounds_correct", summary.RoundsCorrect).
		Int("max_rounds_correct", summary.MaxRoundsCorrect).
		Int("elapsed_seconds", summary.ElapsedSeconds).
		Msg("session ended")

	return summary
}

// selectPreview picks the item shown while idle. It prefers items not used by
// the last session and falls back to the whole pool once it was exhausted.
func (e *Engine) selectPreview() {
	item, err := e.selector.SelectNext(e.pool, e.used)
	if err != nil {
		item, err = e.selector.SelectNext(e.pool, nil)
	}
	if err != nil {
		e.current = nil
		return
	}

	e.current = &item
}

func (e *Engine) reject(op string) error {
	e.logger.Debug().
		Str("op", op).
		Str("phase", string(e.phase)).
		Msg("rejected transition")

	return fmt.Errorf("%s while %s: %w", op, e.phase, domain.ErrInvalidTransition)
}
