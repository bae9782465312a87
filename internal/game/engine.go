// Package game implements the Midnight round/turn engine: scoring rules,
// the per-turn state machine, and the engine that sequences turns across
// rounds and records their outcomes.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nahuelalmeira/midnight/internal/dice"
	"github.com/nahuelalmeira/midnight/internal/game/events"
)

// Config holds the configuration for a game engine.
type Config struct {
	// Rounds is the number of rounds to play. Play fails when it is zero.
	Rounds int

	// Ante is the chips each player wagers per turn (doubled on
	// qualification). Defaults to DefaultAnte.
	Ante int

	// GameID identifies the game in logs and events. Defaults to a UUID.
	GameID string

	// Rng drives the dice. Each engine owns its RNG; defaults to a
	// time-seeded one.
	Rng *rand.Rand

	// Dice overrides the RNG-backed roller, for scripted tests.
	Dice dice.Source

	// EventBus receives game events. Defaults to a fresh bus.
	EventBus *events.EventBus

	// Logger is the parent logger for the engine and its turn engine.
	Logger zerolog.Logger
}

// Engine runs a complete Midnight simulation: it sequences one turn per
// player per round, keeps the pot, and records every outcome. It owns its
// round records and player list exclusively; recorded history is never
// mutated after Play returns.
type Engine struct {
	cfg    Config
	gameID string
	logger zerolog.Logger

	phase   GamePhase
	players []*Player
	byID    map[string]*Player

	turns    *TurnEngine
	eventBus *events.EventBus

	records   []RoundRecord
	summaries []RoundSummary

	pot         int
	firstPlayer int // insertion index of the player opening the next round
}

// NewEngine creates a game engine, applying defaults for anything the
// config leaves unset. Round and player count are validated by Play, so a
// half-configured engine fails there, not here.
func NewEngine(cfg Config) *Engine {
	if cfg.Ante <= 0 {
		cfg.Ante = DefaultAnte
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.New().String()
	}
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Dice == nil {
		cfg.Dice = dice.NewRoller(cfg.Rng)
	}
	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBus()
	}

	logger := cfg.Logger.With().
		Str("component", "game_engine").
		Str("game_id", cfg.GameID).
		Logger()

	return &Engine{
		cfg:      cfg,
		gameID:   cfg.GameID,
		logger:   logger,
		phase:    PhaseConfiguring,
		byID:     make(map[string]*Player),
		turns:    NewTurnEngine(cfg.Dice, cfg.Logger),
		eventBus: cfg.EventBus,
	}
}

// AddPlayer registers a player. Insertion order is play order for the first
// round. Fails once play has started or on a duplicate ID.
func (e *Engine) AddPlayer(p *Player) error {
	if !e.phase.CanAddPlayers() {
		return fmt.Errorf("%w: cannot add players in phase %s", ErrGameStarted, e.phase)
	}
	if p == nil || p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPlayer)
	}
	if p.ID == TieWinner {
		return fmt.Errorf("%w: id %q is reserved for tied rounds", ErrInvalidPlayer, p.ID)
	}
	if p.Strategy == nil {
		return fmt.Errorf("%w: player %q has no strategy", ErrInvalidPlayer, p.ID)
	}
	if _, exists := e.byID[p.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicatePlayer, p.ID)
	}

	e.players = append(e.players, p)
	e.byID[p.ID] = p
	e.logger.Debug().
		Str("player", p.ID).
		Str("strategy", p.StrategyName()).
		Msg("Player added")
	return nil
}

// Play runs the full simulation once. It fails fast on configuration
// errors, and a second invocation fails with ErrAlreadyPlayed; Reset is the
// explicit way to reuse the engine.
func (e *Engine) Play(ctx context.Context) error {
	switch e.phase {
	case PhasePlaying:
		return ErrGameStarted
	case PhaseFinished:
		return ErrAlreadyPlayed
	}
	if len(e.players) == 0 {
		return ErrNoPlayers
	}
	if e.cfg.Rounds <= 0 {
		return ErrNoRounds
	}

	e.phase = PhasePlaying
	start := time.Now()
	e.eventBus.Publish(events.NewGameStartedEvent(e.gameID, len(e.players), e.cfg.Rounds))
	e.logger.Info().
		Int("players", len(e.players)).
		Int("rounds", e.cfg.Rounds).
		Msg("Game started")

	for round := 0; round < e.cfg.Rounds; round++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("round %d: %w", round, ctx.Err())
		default:
		}
		if err := e.playRound(round); err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}
	}

	e.phase = PhaseFinished
	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, e.cfg.Rounds, time.Since(start)))
	e.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("Game ended")
	return nil
}

// playRound runs one turn per player, settles the pot, and records the
// round. Records are appended in player insertion order regardless of the
// rotated play order.
func (e *Engine) playRound(round int) error {
	e.eventBus.Publish(events.NewRoundStartedEvent(e.gameID, round, e.pot))

	n := len(e.players)
	recs := make([]RoundRecord, n)
	order := e.playOrder()

	topScore := -1
	var topPlayers []int // insertion indices, in play order

	for i, idx := range order {
		p := e.players[idx]
		rc := RoundContext{
			Round:       round,
			TopScore:    topScore,
			PlayersLeft: n - 1 - i,
			Pot:         e.pot,
		}

		rec, err := e.turns.PlayTurn(p, rc)
		if err != nil {
			return fmt.Errorf("turn for player %q: %w", p.ID, err)
		}
		recs[idx] = rec

		wager := e.cfg.Ante
		if rec.Qualified {
			wager += e.cfg.Ante
		}
		p.Stake -= wager
		e.pot += wager

		if !rec.Busted {
			p.TotalScore += rec.ScoreDelta
		}

		switch {
		case rec.ScoreDelta > topScore:
			topScore = rec.ScoreDelta
			topPlayers = []int{idx}
		case rec.ScoreDelta == topScore:
			topPlayers = append(topPlayers, idx)
		}

		e.eventBus.Publish(events.NewTurnEndedEvent(
			e.gameID, round, p.ID, rec.ScoreDelta, rec.Busted, rec.Rolls))
	}

	// Settle the pot: a unique top scorer takes it; a tie carries it over.
	summary := RoundSummary{
		Round:  round,
		Pot:    e.pot,
		Scores: make([]int, n),
	}
	for idx, rec := range recs {
		summary.Scores[idx] = rec.ScoreDelta
	}

	carried := len(topPlayers) != 1
	if carried {
		summary.Winner = TieWinner
	} else {
		winner := e.players[topPlayers[0]]
		winner.Stake += e.pot
		summary.Winner = winner.ID
		e.pot = 0
	}

	// The winner opens the next round; on a tie, the last tied player does.
	e.firstPlayer = topPlayers[len(topPlayers)-1]

	e.records = append(e.records, recs...)
	e.summaries = append(e.summaries, summary)

	e.eventBus.Publish(events.NewRoundEndedEvent(
		e.gameID, round, summary.Winner, summary.Pot, carried))
	return nil
}

// playOrder returns player insertion indices rotated so the current first
// player opens the round.
func (e *Engine) playOrder() []int {
	n := len(e.players)
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		order = append(order, (e.firstPlayer+i)%n)
	}
	return order
}

// Reset clears all recorded history and player totals so the engine can
// play again. Registered players are kept.
func (e *Engine) Reset() {
	e.records = nil
	e.summaries = nil
	e.pot = 0
	e.firstPlayer = 0
	for _, p := range e.players {
		p.reset()
	}
	e.phase = PhaseConfiguring
	e.logger.Info().Msg("Game reset")
}

// Public accessors. All return copies; recorded history is never aliased
// out of the engine.

// GameID returns the engine's identifier.
func (e *Engine) GameID() string { return e.gameID }

// Phase returns the engine's lifecycle phase.
func (e *Engine) Phase() GamePhase { return e.phase }

// Finished reports whether Play has completed.
func (e *Engine) Finished() bool { return e.phase == PhaseFinished }

// Rounds returns the configured number of rounds.
func (e *Engine) Rounds() int { return e.cfg.Rounds }

// NumPlayers returns the number of registered players.
func (e *Engine) NumPlayers() int { return len(e.players) }

// Pot returns the chips currently carried in the pot.
func (e *Engine) Pot() int { return e.pot }

// Records returns all round records, one per (round, player), in
// round-major then player-insertion order.
func (e *Engine) Records() []RoundRecord {
	return slices.Clone(e.records)
}

// Summaries returns one summary per completed round.
func (e *Engine) Summaries() []RoundSummary {
	out := make([]RoundSummary, len(e.summaries))
	for i, s := range e.summaries {
		s.Scores = slices.Clone(s.Scores)
		out[i] = s
	}
	return out
}

// Standings returns a snapshot of every player's totals, in insertion
// order.
func (e *Engine) Standings() []PlayerStanding {
	standings := make([]PlayerStanding, len(e.players))
	for i, p := range e.players {
		standings[i] = PlayerStanding{
			ID:            p.ID,
			Strategy:      p.StrategyName(),
			TotalScore:    p.TotalScore,
			Stake:         p.Stake,
			RelativeStake: p.RelativeStake(),
		}
	}
	return standings
}
