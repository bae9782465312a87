// Package dice provides the random die roller and the Roll value type used
// by the game engine.
package dice

import (
	"math/rand"
	"time"
)

// Faces is the number of sides on every die in the game.
const Faces = 6

// Roll is an ordered sequence of die faces produced by a single roll action.
// A Roll is never mutated once recorded.
type Roll []int

// Sum returns the total of all faces in the roll.
func (r Roll) Sum() int {
	total := 0
	for _, face := range r {
		total += face
	}
	return total
}

// Max returns the highest face in the roll, or 0 for an empty roll.
func (r Roll) Max() int {
	highest := 0
	for _, face := range r {
		if face > highest {
			highest = face
		}
	}
	return highest
}

// Count returns how many dice in the roll show the given face.
func (r Roll) Count(face int) int {
	n := 0
	for _, f := range r {
		if f == face {
			n++
		}
	}
	return n
}

// Source produces rolls of n dice. The game engine depends on this interface
// so tests can script exact face sequences.
type Source interface {
	Roll(n int) Roll
}

// Roller is the production Source, backed by an explicit *rand.Rand so that
// each simulation owns its random state and reruns are reproducible.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a roller over the given RNG. A nil RNG gets a
// time-seeded one.
func NewRoller(rng *rand.Rand) *Roller {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Roller{rng: rng}
}

// Roll returns n uniformly distributed faces in 1..Faces.
func (r *Roller) Roll(n int) Roll {
	roll := make(Roll, n)
	for i := range roll {
		roll[i] = r.rng.Intn(Faces) + 1
	}
	return roll
}
