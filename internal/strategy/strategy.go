// Package strategy defines the decision policies players use during a turn.
// A Strategy sees a read-only view of the turn and decides whether to keep
// rolling or bank the accumulated score. New policies plug in without any
// change to the turn engine.
package strategy

import "fmt"

// Decision is the outcome of a strategy consultation.
type Decision int

const (
	// Continue rolls the remaining dice.
	Continue Decision = iota

	// Stop ends the turn and banks the accumulated score.
	Stop
)

// String returns the string representation of a Decision.
func (d Decision) String() string {
	switch d {
	case Continue:
		return "Continue"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// Valid reports whether the decision is one of the two defined values.
// Anything else is a programming error in the strategy.
func (d Decision) Valid() bool {
	return d == Continue || d == Stop
}

// TurnView is the read-only snapshot of a turn handed to Decide. Strategies
// must not retain or mutate it.
type TurnView struct {
	// Score is the turn's accumulated score so far (0 while unqualified).
	Score int
	// Rolls is the number of rolls made this turn.
	Rolls int
	// Kept holds the faces kept so far this turn, in keep order.
	Kept []int
	// DiceLeft is the number of dice not yet kept.
	DiceLeft int
	// Qualified reports whether both qualifier faces have been kept.
	Qualified bool

	// Round context, for policies that play the table rather than the dice.

	// Round is the zero-based round index.
	Round int
	// TopScore is the best completed turn score this round, or -1 when
	// this player rolls first.
	TopScore int
	// PlayersLeft is the number of players still to roll this round.
	PlayersLeft int
	// Pot is the number of chips at stake in the current round.
	Pot int
}

// Strategy decides, once per roll opportunity, whether to continue a turn.
// Decide must be a pure function of the view.
type Strategy interface {
	// Name returns the policy tag used in statistics and configuration.
	Name() string

	// Decide returns Continue or Stop for the given turn view.
	Decide(v TurnView) Decision
}
