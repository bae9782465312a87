// Package stats turns a finished game's records into tabular views: the
// per-turn game stats, the per-player score table, and derived rates.
package stats

import (
	"fmt"

	"github.com/nahuelalmeira/midnight/internal/game"
)

// GameStatRow is one turn of the game, in round-major order.
type GameStatRow struct {
	Round      int
	PlayerID   string
	ScoreDelta int
	Busted     bool
}

// PlayerScoreRow is one player's final position.
type PlayerScoreRow struct {
	PlayerID   string
	Strategy   string
	TotalScore int
}

// QualificationRate is the fraction of a player's turns that qualified.
type QualificationRate struct {
	PlayerID  string
	Qualified int
	Rounds    int
	Rate      float64
}

// WinRate is the fraction of rounds a player won outright. The tie marker
// appears as its own row when any round carried over.
type WinRate struct {
	Winner string
	Wins   int
	Rounds int
	Rate   float64
}

// Aggregator reads a game engine's recorded history. All views fail with
// game.ErrNotPlayed until the simulation has finished.
type Aggregator struct {
	game *game.Engine
}

// NewAggregator creates an aggregator over the given engine.
func NewAggregator(g *game.Engine) *Aggregator {
	return &Aggregator{game: g}
}

func (a *Aggregator) played() error {
	if !a.game.Finished() {
		return fmt.Errorf("%w: phase %s", game.ErrNotPlayed, a.game.Phase())
	}
	return nil
}

// GameStats returns one row per (round, player) turn, rounds ascending and
// players in the order they were added.
func (a *Aggregator) GameStats() ([]GameStatRow, error) {
	if err := a.played(); err != nil {
		return nil, err
	}

	records := a.game.Records()
	rows := make([]GameStatRow, len(records))
	for i, rec := range records {
		rows[i] = GameStatRow{
			Round:      rec.Round,
			PlayerID:   rec.PlayerID,
			ScoreDelta: rec.ScoreDelta,
			Busted:     rec.Busted,
		}
	}
	return rows, nil
}

// AllScores returns one row per player with their strategy and final total,
// in the order players were added.
func (a *Aggregator) AllScores() ([]PlayerScoreRow, error) {
	if err := a.played(); err != nil {
		return nil, err
	}

	standings := a.game.Standings()
	rows := make([]PlayerScoreRow, len(standings))
	for i, s := range standings {
		rows[i] = PlayerScoreRow{
			PlayerID:   s.ID,
			Strategy:   s.Strategy,
			TotalScore: s.TotalScore,
		}
	}
	return rows, nil
}

// RoundSummaries returns the per-round winner and pot history.
func (a *Aggregator) RoundSummaries() ([]game.RoundSummary, error) {
	if err := a.played(); err != nil {
		return nil, err
	}
	return a.game.Summaries(), nil
}

// Standings returns the final chip standings, in the order players were
// added.
func (a *Aggregator) Standings() ([]game.PlayerStanding, error) {
	if err := a.played(); err != nil {
		return nil, err
	}
	return a.game.Standings(), nil
}

// QualificationRates returns, per player, how often their turns qualified.
func (a *Aggregator) QualificationRates() ([]QualificationRate, error) {
	if err := a.played(); err != nil {
		return nil, err
	}

	records := a.game.Records()
	byPlayer := make(map[string]*QualificationRate)
	var order []string
	for _, rec := range records {
		qr, ok := byPlayer[rec.PlayerID]
		if !ok {
			qr = &QualificationRate{PlayerID: rec.PlayerID}
			byPlayer[rec.PlayerID] = qr
			order = append(order, rec.PlayerID)
		}
		qr.Rounds++
		if rec.Qualified {
			qr.Qualified++
		}
	}

	rates := make([]QualificationRate, 0, len(order))
	for _, id := range order {
		qr := byPlayer[id]
		if qr.Rounds > 0 {
			qr.Rate = float64(qr.Qualified) / float64(qr.Rounds)
		}
		rates = append(rates, *qr)
	}
	return rates, nil
}

// WinRates returns, per winner, how many rounds they took the pot. Players
// are listed in the order they were added; the tie marker, when present,
// comes last.
func (a *Aggregator) WinRates() ([]WinRate, error) {
	if err := a.played(); err != nil {
		return nil, err
	}

	summaries := a.game.Summaries()
	wins := make(map[string]int)
	for _, s := range summaries {
		wins[s.Winner]++
	}

	rounds := len(summaries)
	rate := func(w int) float64 {
		if rounds == 0 {
			return 0
		}
		return float64(w) / float64(rounds)
	}

	var rates []WinRate
	for _, s := range a.game.Standings() {
		rates = append(rates, WinRate{
			Winner: s.ID,
			Wins:   wins[s.ID],
			Rounds: rounds,
			Rate:   rate(wins[s.ID]),
		})
	}
	if ties := wins[game.TieWinner]; ties > 0 {
		rates = append(rates, WinRate{
			Winner: game.TieWinner,
			Wins:   ties,
			Rounds: rounds,
			Rate:   rate(ties),
		})
	}
	return rates, nil
}
