package events

import "time"

// Event type constants
const (
	TypeGameStarted  = "game.started"
	TypeGameEnded    = "game.ended"
	TypeRoundStarted = "round.started"
	TypeRoundEnded   = "round.ended"
	TypeTurnEnded    = "turn.ended"
)

// GameStartedEvent is published when a simulation begins
type GameStartedEvent struct {
	BaseEvent
	NumPlayers int
	Rounds     int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, numPlayers, rounds int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeGameStarted,
			Time:      time.Now(),
			Game:      gameID,
		},
		NumPlayers: numPlayers,
		Rounds:     rounds,
	}
}

// GameEndedEvent is published when a simulation completes
type GameEndedEvent struct {
	BaseEvent
	Rounds   int
	Duration time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, rounds int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeGameEnded,
			Time:      time.Now(),
			Game:      gameID,
		},
		Rounds:   rounds,
		Duration: duration,
	}
}

// RoundStartedEvent is published at the beginning of each round
type RoundStartedEvent struct {
	BaseEvent
	Round int
	Pot   int
}

// NewRoundStartedEvent creates a new RoundStartedEvent
func NewRoundStartedEvent(gameID string, round, pot int) *RoundStartedEvent {
	return &RoundStartedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeRoundStarted,
			Time:      time.Now(),
			Game:      gameID,
		},
		Round: round,
		Pot:   pot,
	}
}

// RoundEndedEvent is published after a round's pot is settled
type RoundEndedEvent struct {
	BaseEvent
	Round  int
	Winner string
	Pot    int
	// Carried is set when the round tied and the pot rolled over.
	Carried bool
}

// NewRoundEndedEvent creates a new RoundEndedEvent
func NewRoundEndedEvent(gameID string, round int, winner string, pot int, carried bool) *RoundEndedEvent {
	return &RoundEndedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeRoundEnded,
			Time:      time.Now(),
			Game:      gameID,
		},
		Round:   round,
		Winner:  winner,
		Pot:     pot,
		Carried: carried,
	}
}

// TurnEndedEvent is published after each player's turn
type TurnEndedEvent struct {
	BaseEvent
	Round      int
	PlayerID   string
	ScoreDelta int
	Busted     bool
	Rolls      int
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID string, round int, playerID string, scoreDelta int, busted bool, rolls int) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeTurnEnded,
			Time:      time.Now(),
			Game:      gameID,
		},
		Round:      round,
		PlayerID:   playerID,
		ScoreDelta: scoreDelta,
		Busted:     busted,
		Rolls:      rolls,
	}
}
