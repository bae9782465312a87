package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahuelalmeira/midnight/internal/game"
	"github.com/nahuelalmeira/midnight/internal/strategy"
	"github.com/nahuelalmeira/midnight/internal/testutil"
)

// playedGame runs a two-player, two-round scripted game:
// round 0 ties at 5 apiece, round 1 goes to bob with 6 against 5.
func playedGame(t *testing.T) *game.Engine {
	t.Helper()

	src := testutil.Script(
		1, 4, 5, 2, 3, 2,
		1, 4, 5, 2, 3, 2,
		1, 4, 6, 2, 2, 2,
		1, 4, 5, 2, 2, 2,
	)
	e := game.NewEngine(game.Config{
		Rounds: 2,
		GameID: "stats-game",
		Dice:   src,
		Logger: testutil.NopLogger(),
	})
	require.NoError(t, e.AddPlayer(game.NewPlayer("alice", strategy.Conservative{})))
	require.NoError(t, e.AddPlayer(game.NewPlayer("bob", strategy.Conservative{})))
	require.NoError(t, e.Play(context.Background()))
	return e
}

func TestAggregatorBeforePlay(t *testing.T) {
	e := game.NewEngine(game.Config{Rounds: 1, Logger: testutil.NopLogger()})
	a := NewAggregator(e)

	_, err := a.GameStats()
	assert.ErrorIs(t, err, game.ErrNotPlayed)
	_, err = a.AllScores()
	assert.ErrorIs(t, err, game.ErrNotPlayed)
	_, err = a.RoundSummaries()
	assert.ErrorIs(t, err, game.ErrNotPlayed)
	_, err = a.QualificationRates()
	assert.ErrorIs(t, err, game.ErrNotPlayed)
	_, err = a.WinRates()
	assert.ErrorIs(t, err, game.ErrNotPlayed)
}

func TestGameStats(t *testing.T) {
	a := NewAggregator(playedGame(t))

	rows, err := a.GameStats()
	require.NoError(t, err)

	assert.Equal(t, []GameStatRow{
		{Round: 0, PlayerID: "alice", ScoreDelta: 5},
		{Round: 0, PlayerID: "bob", ScoreDelta: 5},
		{Round: 1, PlayerID: "alice", ScoreDelta: 5},
		{Round: 1, PlayerID: "bob", ScoreDelta: 6},
	}, rows)
}

func TestAllScores(t *testing.T) {
	a := NewAggregator(playedGame(t))

	rows, err := a.AllScores()
	require.NoError(t, err)

	assert.Equal(t, []PlayerScoreRow{
		{PlayerID: "alice", Strategy: "conservative", TotalScore: 10},
		{PlayerID: "bob", Strategy: "conservative", TotalScore: 11},
	}, rows)
}

func TestRoundSummaries(t *testing.T) {
	a := NewAggregator(playedGame(t))

	summaries, err := a.RoundSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, game.TieWinner, summaries[0].Winner)
	assert.Equal(t, "bob", summaries[1].Winner)
}

func TestQualificationRates(t *testing.T) {
	a := NewAggregator(playedGame(t))

	rates, err := a.QualificationRates()
	require.NoError(t, err)

	assert.Equal(t, []QualificationRate{
		{PlayerID: "alice", Qualified: 2, Rounds: 2, Rate: 1},
		{PlayerID: "bob", Qualified: 2, Rounds: 2, Rate: 1},
	}, rates)
}

func TestWinRates(t *testing.T) {
	a := NewAggregator(playedGame(t))

	rates, err := a.WinRates()
	require.NoError(t, err)

	assert.Equal(t, []WinRate{
		{Winner: "alice", Wins: 0, Rounds: 2, Rate: 0},
		{Winner: "bob", Wins: 1, Rounds: 2, Rate: 0.5},
		{Winner: game.TieWinner, Wins: 1, Rounds: 2, Rate: 0.5},
	}, rates)
}

func TestRenderTables(t *testing.T) {
	a := NewAggregator(playedGame(t))

	rows, err := a.GameStats()
	require.NoError(t, err)
	out := RenderGameStats(rows, 0)
	assert.Contains(t, out, "ROUND")
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "more rows")

	truncated := RenderGameStats(rows, 2)
	assert.Contains(t, truncated, "2 more rows")

	scores, err := a.AllScores()
	require.NoError(t, err)
	assert.Contains(t, RenderAllScores(scores), "conservative")

	quals, err := a.QualificationRates()
	require.NoError(t, err)
	assert.Contains(t, RenderQualificationRates(quals), "1.00")

	wins, err := a.WinRates()
	require.NoError(t, err)
	assert.Contains(t, RenderWinRates(wins), "Tie")
}
