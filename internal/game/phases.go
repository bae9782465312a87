package game

import "fmt"

// TurnPhase represents the state of a single turn's state machine.
type TurnPhase int

const (
	// PhaseRolling - dice are rolled and the scoring rules applied
	PhaseRolling TurnPhase = iota

	// PhaseDeciding - the player's strategy chooses continue or stop
	PhaseDeciding

	// PhaseEnded - terminal: the turn's outcome is fixed
	PhaseEnded
)

// String returns the string representation of a TurnPhase.
func (p TurnPhase) String() string {
	switch p {
	case PhaseRolling:
		return "Rolling"
	case PhaseDeciding:
		return "Deciding"
	case PhaseEnded:
		return "Ended"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase ends the turn.
func (p TurnPhase) IsTerminal() bool {
	return p == PhaseEnded
}

// AllowedTransitions returns the valid phases this phase can transition to.
func (p TurnPhase) AllowedTransitions() []TurnPhase {
	switch p {
	case PhaseRolling:
		return []TurnPhase{PhaseDeciding, PhaseEnded}
	case PhaseDeciding:
		return []TurnPhase{PhaseRolling, PhaseEnded}
	case PhaseEnded:
		return []TurnPhase{}
	default:
		return []TurnPhase{}
	}
}

// CanTransitionTo checks if a transition to the target phase is allowed.
func (p TurnPhase) CanTransitionTo(target TurnPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// GamePhase represents the lifecycle of a Game: players are added while
// Configuring, Play moves through Playing, and statistics become readable
// once Finished.
type GamePhase int

const (
	// PhaseConfiguring - players may be added, Play has not run
	PhaseConfiguring GamePhase = iota

	// PhasePlaying - the simulation is running
	PhasePlaying

	// PhaseFinished - history is recorded and read-only
	PhaseFinished
)

// String returns the string representation of a GamePhase.
func (p GamePhase) String() string {
	switch p {
	case PhaseConfiguring:
		return "Configuring"
	case PhasePlaying:
		return "Playing"
	case PhaseFinished:
		return "Finished"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// CanAddPlayers returns true if players may join in this phase.
func (p GamePhase) CanAddPlayers() bool {
	return p == PhaseConfiguring
}

// CanPlay returns true if the simulation may be started in this phase.
func (p GamePhase) CanPlay() bool {
	return p == PhaseConfiguring
}
