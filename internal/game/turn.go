package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nahuelalmeira/midnight/internal/dice"
	"github.com/nahuelalmeira/midnight/internal/strategy"
)

// TurnState is the mutable record of one player's turn. It is created fresh
// by the turn engine for each turn and never read or written outside that
// invocation.
type TurnState struct {
	PlayerID string
	Kept     []int
	Rolls    []dice.Roll
	Score    int
	Busted   bool
}

// NewTurnState creates an empty turn state for the given player.
func NewTurnState(playerID string) *TurnState {
	return &TurnState{PlayerID: playerID}
}

// View builds the read-only snapshot handed to strategies.
func (ts *TurnState) View(rc RoundContext) strategy.TurnView {
	kept := make([]int, len(ts.Kept))
	copy(kept, ts.Kept)
	return strategy.TurnView{
		Score:       ts.Score,
		Rolls:       len(ts.Rolls),
		Kept:        kept,
		DiceLeft:    NumDice - len(ts.Kept),
		Qualified:   Qualified(ts.Kept),
		Round:       rc.Round,
		TopScore:    rc.TopScore,
		PlayersLeft: rc.PlayersLeft,
		Pot:         rc.Pot,
	}
}

// RoundContext carries the table situation into a turn: what the player has
// to beat and what is at stake.
type RoundContext struct {
	Round int
	// TopScore is the best completed turn score so far this round, or -1
	// when no turn has completed yet.
	TopScore    int
	PlayersLeft int
	Pot         int
}

// TurnEngine runs single turns: it rolls dice, applies the scoring rules,
// and consults the player's strategy until the turn ends by choice, by
// exhausting the dice, or by a bust.
type TurnEngine struct {
	src    dice.Source
	logger zerolog.Logger
}

// NewTurnEngine creates a turn engine over the given dice source.
func NewTurnEngine(src dice.Source, logger zerolog.Logger) *TurnEngine {
	return &TurnEngine{
		src:    src,
		logger: logger.With().Str("component", "turn_engine").Logger(),
	}
}

// PlayTurn runs one complete turn for the player and returns its record.
// The record's score delta is zero when the turn busted.
func (te *TurnEngine) PlayTurn(p *Player, rc RoundContext) (RoundRecord, error) {
	ts := NewTurnState(p.ID)
	phase := PhaseRolling

	logger := te.logger.With().
		Int("round", rc.Round).
		Str("player", p.ID).
		Logger()

	for !phase.IsTerminal() {
		switch phase {
		case PhaseRolling:
			roll := te.src.Roll(NumDice - len(ts.Kept))
			out, err := ApplyRoll(ts, roll)
			if err != nil {
				return RoundRecord{}, fmt.Errorf("applying roll %v: %w", roll, err)
			}
			logger.Debug().
				Ints("roll", roll).
				Ints("kept", ts.Kept).
				Int("score", ts.Score).
				Bool("busted", out.Busted).
				Msg("Roll applied")

			next := PhaseDeciding
			if out.Busted || out.Exhausted {
				next = PhaseEnded
			}
			if phase, err = transition(phase, next); err != nil {
				return RoundRecord{}, err
			}

		case PhaseDeciding:
			d := p.Strategy.Decide(ts.View(rc))
			if !d.Valid() {
				return RoundRecord{}, fmt.Errorf("%w: strategy %q returned %v",
					ErrInvalidDecision, p.Strategy.Name(), d)
			}
			next := PhaseRolling
			if d == strategy.Stop {
				next = PhaseEnded
			}
			var err error
			if phase, err = transition(phase, next); err != nil {
				return RoundRecord{}, err
			}
		}
	}

	rec := RoundRecord{
		Round:     rc.Round,
		PlayerID:  p.ID,
		Busted:    ts.Busted,
		Qualified: Qualified(ts.Kept),
		Rolls:     len(ts.Rolls),
	}
	if !ts.Busted {
		rec.ScoreDelta = ts.Score
	}

	logger.Debug().
		Int("score_delta", rec.ScoreDelta).
		Bool("busted", rec.Busted).
		Int("rolls", rec.Rolls).
		Msg("Turn ended")
	return rec, nil
}

// transition validates a turn phase change. An invalid transition is a
// programming error in the turn engine itself.
func transition(from, to TurnPhase) (TurnPhase, error) {
	if !from.CanTransitionTo(to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}
