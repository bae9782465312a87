package game

import (
	"fmt"
	"slices"

	"github.com/nahuelalmeira/midnight/internal/dice"
)

// Game constants, per the rules of Midnight ("1-4-24").
const (
	// NumDice is the number of dice a turn is played with.
	NumDice = 6

	// MaxTurnScore is the best possible turn: four sixes next to the two
	// qualifiers.
	MaxTurnScore = 24

	// DefaultAnte is the chips a player puts into the pot each turn.
	DefaultAnte = 1
)

// Qualifiers are the faces a player must keep in order to score. They
// contribute nothing to the score themselves.
var Qualifiers = []int{1, 4}

// Qualified reports whether the kept dice include every qualifier.
func Qualified(kept []int) bool {
	for _, q := range Qualifiers {
		if !slices.Contains(kept, q) {
			return false
		}
	}
	return true
}

// ScoreDice computes the score of a set of kept dice: zero unless qualified,
// otherwise the face sum minus one of each qualifier. Returns an invariant
// violation for faces or totals outside the rules' range.
func ScoreDice(kept []int) (int, error) {
	sum := 0
	for _, face := range kept {
		if face < 1 || face > dice.Faces {
			return 0, fmt.Errorf("%w: %d", ErrInvalidFace, face)
		}
		sum += face
	}
	if !Qualified(kept) {
		return 0, nil
	}
	for _, q := range Qualifiers {
		sum -= q
	}
	if sum < 0 || sum > MaxTurnScore {
		return 0, fmt.Errorf("%w: %d", ErrInvalidScore, sum)
	}
	return sum, nil
}

// Outcome is the result of applying one roll to a turn.
type Outcome struct {
	// Delta is the change in the turn's accumulated score from this roll.
	Delta int
	// Busted is set when the turn ended with the score discarded.
	Busted bool
	// Exhausted is set when all dice are kept and the turn is over.
	Exhausted bool
}

// ApplyRoll applies the scoring rules for one roll to the turn state: the
// roll is recorded, dice are kept per the keep rule, and the accumulated
// score and bust flag are updated. Mutating ts is the only side effect.
//
// The keep rule, from the game's scoring table: keep any still-missing
// qualifier that was rolled; once qualified, keep every 5 and 6; if nothing
// was kept, keep the single highest die. Every roll keeps at least one die,
// so a turn spans at most NumDice rolls.
func ApplyRoll(ts *TurnState, roll dice.Roll) (Outcome, error) {
	if ts.Busted || len(ts.Kept) >= NumDice {
		return Outcome{}, ErrTurnEnded
	}
	if len(roll) != NumDice-len(ts.Kept) {
		return Outcome{}, fmt.Errorf("%w: got %d, want %d",
			ErrInvalidRollSize, len(roll), NumDice-len(ts.Kept))
	}
	for _, face := range roll {
		if face < 1 || face > dice.Faces {
			return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidFace, face)
		}
	}

	keep := keepFromRoll(ts.Kept, roll)

	before := ts.Score
	ts.Rolls = append(ts.Rolls, slices.Clone(roll))
	ts.Kept = append(ts.Kept, keep...)

	score, err := ScoreDice(ts.Kept)
	if err != nil {
		return Outcome{}, err
	}
	ts.Score = score

	out := Outcome{Delta: score - before}
	if len(ts.Kept) == NumDice {
		out.Exhausted = true
		if !Qualified(ts.Kept) {
			// Bust: the accumulated score is discarded.
			out.Busted = true
			out.Delta = 0
			ts.Busted = true
			ts.Score = 0
		}
	}
	return out, nil
}

// keepFromRoll selects which of the rolled dice to keep, given the dice kept
// so far this turn.
func keepFromRoll(kept []int, roll dice.Roll) []int {
	rolled := slices.Clone([]int(roll))
	var keep []int

	// Missing qualifiers first.
	for _, q := range Qualifiers {
		if slices.Contains(kept, q) {
			continue
		}
		if i := slices.Index(rolled, q); i >= 0 {
			keep = append(keep, q)
			rolled = slices.Delete(rolled, i, i+1)
		}
	}

	// Once qualified, bank every high die.
	if Qualified(append(slices.Clone(kept), keep...)) {
		for _, face := range []int{6, 5} {
			for {
				i := slices.Index(rolled, face)
				if i < 0 {
					break
				}
				keep = append(keep, face)
				rolled = slices.Delete(rolled, i, i+1)
			}
		}
	}

	// Every roll must keep at least one die.
	if len(keep) == 0 {
		keep = append(keep, dice.Roll(rolled).Max())
	}
	return keep
}
