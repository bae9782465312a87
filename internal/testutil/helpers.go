// Package testutil provides common test helpers.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/nahuelalmeira/midnight/internal/dice"
)

// NewTestRNG creates a deterministic random number generator for tests.
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a logger that discards all output.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// ScriptedDice is a dice source that replays a fixed sequence of faces.
// Each Roll pops the next n faces from the script. It panics when the
// script runs out, which in a test means the scenario was mis-scripted.
type ScriptedDice struct {
	faces []int
	pos   int
}

// Script creates a scripted dice source over the given faces.
func Script(faces ...int) *ScriptedDice {
	return &ScriptedDice{faces: faces}
}

// Roll returns the next n scripted faces.
func (s *ScriptedDice) Roll(n int) dice.Roll {
	if s.pos+n > len(s.faces) {
		panic(fmt.Sprintf("scripted dice exhausted: need %d faces at position %d of %d",
			n, s.pos, len(s.faces)))
	}
	roll := make(dice.Roll, n)
	copy(roll, s.faces[s.pos:s.pos+n])
	s.pos += n
	return roll
}

// Remaining returns how many scripted faces are left unconsumed.
func (s *ScriptedDice) Remaining() int {
	return len(s.faces) - s.pos
}
