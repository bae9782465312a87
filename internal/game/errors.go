package game

import "errors"

// Configuration errors: caller mistakes, reported synchronously and never
// retried.
var (
	ErrNoPlayers       = errors.New("no players added")
	ErrNoRounds        = errors.New("no rounds configured")
	ErrDuplicatePlayer = errors.New("duplicate player id")
	ErrInvalidPlayer   = errors.New("invalid player")
	ErrGameStarted     = errors.New("game already started")
	ErrAlreadyPlayed   = errors.New("game already played")
	ErrNotPlayed       = errors.New("game has not been played")
)

// Invariant violations: programming errors in rules or strategies, surfaced
// immediately rather than masked.
var (
	ErrInvalidFace       = errors.New("die face outside valid range")
	ErrInvalidScore      = errors.New("score outside valid range")
	ErrInvalidRollSize   = errors.New("roll size does not match remaining dice")
	ErrTurnEnded         = errors.New("turn has already ended")
	ErrInvalidDecision   = errors.New("strategy returned invalid decision")
	ErrInvalidTransition = errors.New("invalid turn phase transition")
)
