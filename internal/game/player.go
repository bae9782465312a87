package game

import (
	"fmt"

	"github.com/nahuelalmeira/midnight/internal/strategy"
)

// DefaultStake is effectively a bottomless bankroll, for simulations that
// only care about scores.
const DefaultStake = 100_000_000

// Player holds an identifier, the strategy it plays, and its running totals
// across the game. Totals are mutated only by the game engine between turns.
type Player struct {
	ID       string
	Strategy strategy.Strategy

	// TotalScore is the sum of the player's non-busted turn scores.
	TotalScore int

	// Stake is the player's current chip count.
	Stake int

	initialStake int
}

// NewPlayer creates a player bound to one strategy, with the default stake.
func NewPlayer(id string, strat strategy.Strategy) *Player {
	return NewStakedPlayer(id, strat, DefaultStake)
}

// NewStakedPlayer creates a player with an explicit starting stake.
func NewStakedPlayer(id string, strat strategy.Strategy, stake int) *Player {
	return &Player{
		ID:           id,
		Strategy:     strat,
		Stake:        stake,
		initialStake: stake,
	}
}

// RelativeStake is the player's chip winnings (or losses) so far.
func (p *Player) RelativeStake() int {
	return p.Stake - p.initialStake
}

// StrategyName returns the tag of the player's strategy.
func (p *Player) StrategyName() string {
	if p.Strategy == nil {
		return ""
	}
	return p.Strategy.Name()
}

func (p *Player) String() string {
	return fmt.Sprintf("Player(id=%s, strategy=%s, total=%d, stake=%d)",
		p.ID, p.StrategyName(), p.TotalScore, p.Stake)
}

// reset restores the player to its pre-game totals.
func (p *Player) reset() {
	p.TotalScore = 0
	p.Stake = p.initialStake
}

// PlayerStanding is an immutable snapshot of a player's position, consumed
// by the statistics aggregator.
type PlayerStanding struct {
	ID            string
	Strategy      string
	TotalScore    int
	Stake         int
	RelativeStake int
}
