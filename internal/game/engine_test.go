package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahuelalmeira/midnight/internal/game/events"
	"github.com/nahuelalmeira/midnight/internal/strategy"
	"github.com/nahuelalmeira/midnight/internal/testutil"
)

func newTestEngine(t *testing.T, rounds int, src *testutil.ScriptedDice) *Engine {
	t.Helper()
	return NewEngine(Config{
		Rounds: rounds,
		GameID: "test-game",
		Dice:   src,
		Logger: testutil.NopLogger(),
	})
}

func TestAddPlayer(t *testing.T) {
	t.Run("rejects empty id", func(t *testing.T) {
		e := newTestEngine(t, 1, testutil.Script())
		err := e.AddPlayer(NewPlayer("", strategy.Conservative{}))
		assert.ErrorIs(t, err, ErrInvalidPlayer)
	})

	t.Run("rejects nil strategy", func(t *testing.T) {
		e := newTestEngine(t, 1, testutil.Script())
		err := e.AddPlayer(&Player{ID: "alice"})
		assert.ErrorIs(t, err, ErrInvalidPlayer)
	})

	t.Run("rejects reserved id", func(t *testing.T) {
		e := newTestEngine(t, 1, testutil.Script())
		err := e.AddPlayer(NewPlayer(TieWinner, strategy.Conservative{}))
		assert.ErrorIs(t, err, ErrInvalidPlayer)
		assert.Contains(t, err.Error(), "reserved")
	})

	t.Run("rejects duplicate id", func(t *testing.T) {
		e := newTestEngine(t, 1, testutil.Script())
		require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))
		err := e.AddPlayer(NewPlayer("alice", strategy.Aggressive{}))
		assert.ErrorIs(t, err, ErrDuplicatePlayer)
		assert.Equal(t, 1, e.NumPlayers())
	})

	t.Run("rejects players after play", func(t *testing.T) {
		e := newTestEngine(t, 1, testutil.Script(1, 4, 5, 2, 3, 2))
		require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))
		require.NoError(t, e.Play(context.Background()))

		err := e.AddPlayer(NewPlayer("bob", strategy.Conservative{}))
		assert.ErrorIs(t, err, ErrGameStarted)
	})
}

func TestPlayConfigurationErrors(t *testing.T) {
	t.Run("no players", func(t *testing.T) {
		e := newTestEngine(t, 1, testutil.Script())
		assert.ErrorIs(t, e.Play(context.Background()), ErrNoPlayers)
	})

	t.Run("no rounds", func(t *testing.T) {
		e := newTestEngine(t, 0, testutil.Script())
		require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))
		assert.ErrorIs(t, e.Play(context.Background()), ErrNoRounds)
	})

	t.Run("second play fails", func(t *testing.T) {
		e := newTestEngine(t, 1, testutil.Script(1, 4, 5, 2, 3, 2))
		require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))
		require.NoError(t, e.Play(context.Background()))
		assert.ErrorIs(t, e.Play(context.Background()), ErrAlreadyPlayed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		e := newTestEngine(t, 1, testutil.Script(1, 4, 5, 2, 3, 2))
		require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, e.Play(ctx), context.Canceled)
	})
}

func TestPlaySingleRoundTie(t *testing.T) {
	// Both players see the same dice and stop at 5; the pot carries over.
	src := testutil.Script(
		1, 4, 5, 2, 3, 2,
		1, 4, 5, 2, 3, 2,
	)
	e := newTestEngine(t, 1, src)
	require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))
	require.NoError(t, e.AddPlayer(NewPlayer("bob", strategy.Conservative{})))

	require.NoError(t, e.Play(context.Background()))
	assert.True(t, e.Finished())

	records := e.Records()
	require.Len(t, records, 2)
	for i, id := range []string{"alice", "bob"} {
		assert.Equal(t, 0, records[i].Round)
		assert.Equal(t, id, records[i].PlayerID)
		assert.Equal(t, 5, records[i].ScoreDelta)
		assert.False(t, records[i].Busted)
		assert.True(t, records[i].Qualified)
	}

	summaries := e.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, TieWinner, summaries[0].Winner)
	assert.Equal(t, 4, summaries[0].Pot)
	assert.Equal(t, []int{5, 5}, summaries[0].Scores)
	assert.Equal(t, 4, e.Pot())

	standings := e.Standings()
	require.Len(t, standings, 2)
	for _, s := range standings {
		assert.Equal(t, 5, s.TotalScore)
		assert.Equal(t, -2, s.RelativeStake)
	}
}

func TestPlaySingleRoundWinnerTakesPot(t *testing.T) {
	src := testutil.Script(
		// alice qualifies and stops at 5.
		1, 4, 5, 2, 3, 2,
		// bob qualifies, rolls once more, stops at 3.
		1, 4, 2, 2, 3, 2,
		2, 3, 2, 2,
	)
	e := newTestEngine(t, 1, src)
	require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))
	require.NoError(t, e.AddPlayer(NewPlayer("bob", strategy.Conservative{})))

	require.NoError(t, e.Play(context.Background()))

	summaries := e.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, "alice", summaries[0].Winner)
	assert.Equal(t, 4, summaries[0].Pot)
	assert.Zero(t, e.Pot())

	standings := e.Standings()
	assert.Equal(t, 2, standings[0].RelativeStake)
	assert.Equal(t, -2, standings[1].RelativeStake)
	assert.Equal(t, 5, standings[0].TotalScore)
	assert.Equal(t, 3, standings[1].TotalScore)
}

func TestPlayCarriedPotGoesToNextWinner(t *testing.T) {
	src := testutil.Script(
		// Round 0: both stop at 5, pot of 4 carries.
		1, 4, 5, 2, 3, 2,
		1, 4, 5, 2, 3, 2,
		// Round 1: bob opens as the last tied player and scores 6.
		1, 4, 6, 2, 2, 2,
		// alice scores 5.
		1, 4, 5, 2, 2, 2,
	)
	e := newTestEngine(t, 2, src)
	require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))
	require.NoError(t, e.AddPlayer(NewPlayer("bob", strategy.Conservative{})))

	require.NoError(t, e.Play(context.Background()))

	summaries := e.Summaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, TieWinner, summaries[0].Winner)
	assert.Equal(t, 4, summaries[0].Pot)
	assert.Equal(t, "bob", summaries[1].Winner)
	assert.Equal(t, 8, summaries[1].Pot)
	assert.Zero(t, e.Pot())

	// Records stay in insertion order even though bob rolled first.
	records := e.Records()
	require.Len(t, records, 4)
	assert.Equal(t, "alice", records[2].PlayerID)
	assert.Equal(t, 5, records[2].ScoreDelta)
	assert.Equal(t, "bob", records[3].PlayerID)
	assert.Equal(t, 6, records[3].ScoreDelta)

	standings := e.Standings()
	assert.Equal(t, -4, standings[0].RelativeStake)
	assert.Equal(t, 4, standings[1].RelativeStake)
}

func TestPlayWinnerOpensNextRound(t *testing.T) {
	src := testutil.Script(
		// Round 0: alice busts without ever rolling a 1.
		2, 4, 2, 3, 2, 3,
		2, 3, 2, 3, 2,
		2, 3, 2, 2,
		2, 2, 2,
		2, 2,
		2,
		// bob qualifies and stops at 5.
		1, 4, 2, 2, 3, 2,
		5, 2, 3, 2,
		// Round 1: bob won, so the first six faces are his and score 11.
		1, 4, 6, 5, 2, 3,
		// alice scores 5.
		1, 4, 5, 2, 2, 2,
	)
	e := newTestEngine(t, 2, src)
	require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))
	require.NoError(t, e.AddPlayer(NewPlayer("bob", strategy.Conservative{})))

	require.NoError(t, e.Play(context.Background()))

	records := e.Records()
	require.Len(t, records, 4)

	assert.True(t, records[0].Busted)
	assert.Zero(t, records[0].ScoreDelta)
	assert.Equal(t, 5, records[1].ScoreDelta)

	assert.Equal(t, "alice", records[2].PlayerID)
	assert.Equal(t, 5, records[2].ScoreDelta)
	assert.Equal(t, "bob", records[3].PlayerID)
	assert.Equal(t, 11, records[3].ScoreDelta)

	summaries := e.Summaries()
	assert.Equal(t, "bob", summaries[0].Winner)
	assert.Equal(t, 3, summaries[0].Pot)
	assert.Equal(t, "bob", summaries[1].Winner)
	assert.Equal(t, 4, summaries[1].Pot)
}

func TestPlaySeededGameInvariants(t *testing.T) {
	const rounds = 50

	e := NewEngine(Config{
		Rounds: rounds,
		Rng:    testutil.NewTestRNG(42),
		Logger: testutil.NopLogger(),
	})
	players := []*Player{
		NewPlayer("alice", strategy.Conservative{}),
		NewPlayer("bob", strategy.NewThreshold(10)),
		NewPlayer("carol", strategy.Aggressive{}),
		NewPlayer("dave", strategy.Chase{}),
	}
	for _, p := range players {
		require.NoError(t, e.AddPlayer(p))
	}

	require.NoError(t, e.Play(context.Background()))

	records := e.Records()
	require.Len(t, records, rounds*len(players))

	totals := make(map[string]int)
	for i, rec := range records {
		assert.Equal(t, i/len(players), rec.Round)
		assert.Equal(t, players[i%len(players)].ID, rec.PlayerID)
		assert.GreaterOrEqual(t, rec.ScoreDelta, 0)
		assert.LessOrEqual(t, rec.ScoreDelta, MaxTurnScore)
		assert.GreaterOrEqual(t, rec.Rolls, 1)
		assert.LessOrEqual(t, rec.Rolls, NumDice)
		if rec.Busted {
			assert.Zero(t, rec.ScoreDelta)
			assert.False(t, rec.Qualified)
		}
		totals[rec.PlayerID] += rec.ScoreDelta
	}

	for _, s := range e.Standings() {
		assert.Equal(t, totals[s.ID], s.TotalScore, "player %s", s.ID)
	}

	// Chips are conserved: stakes plus the carried pot net to zero.
	net := e.Pot()
	for _, s := range e.Standings() {
		net += s.RelativeStake
	}
	assert.Zero(t, net)

	require.Len(t, e.Summaries(), rounds)
}

func TestReset(t *testing.T) {
	script := []int{1, 4, 5, 2, 3, 2, 1, 4, 2, 2, 3, 2, 2, 3, 2, 2}

	src := testutil.Script(script...)
	e := newTestEngine(t, 1, src)
	require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))
	require.NoError(t, e.AddPlayer(NewPlayer("bob", strategy.Conservative{})))
	require.NoError(t, e.Play(context.Background()))
	firstRecords := e.Records()

	e.Reset()
	assert.Equal(t, PhaseConfiguring, e.Phase())
	assert.Empty(t, e.Records())
	assert.Empty(t, e.Summaries())
	assert.Zero(t, e.Pot())
	for _, s := range e.Standings() {
		assert.Zero(t, s.TotalScore)
		assert.Zero(t, s.RelativeStake)
	}

	// The engine replays identically on the same script.
	e.turns = NewTurnEngine(testutil.Script(script...), testutil.NopLogger())
	require.NoError(t, e.Play(context.Background()))
	assert.Equal(t, firstRecords, e.Records())
}

func TestRecordsAreCopies(t *testing.T) {
	src := testutil.Script(1, 4, 5, 2, 3, 2)
	e := newTestEngine(t, 1, src)
	require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))
	require.NoError(t, e.Play(context.Background()))

	records := e.Records()
	records[0].ScoreDelta = 99
	assert.Equal(t, 5, e.Records()[0].ScoreDelta)

	summaries := e.Summaries()
	summaries[0].Scores[0] = 99
	assert.Equal(t, 5, e.Summaries()[0].Scores[0])
}

func TestPlayPublishesEvents(t *testing.T) {
	bus := events.NewEventBus()
	var published []string
	for _, typ := range []string{
		events.TypeGameStarted, events.TypeRoundStarted,
		events.TypeTurnEnded, events.TypeRoundEnded, events.TypeGameEnded,
	} {
		bus.SubscribeFunc(typ, func(e events.Event) {
			published = append(published, e.Type())
		})
	}

	e := NewEngine(Config{
		Rounds:   1,
		GameID:   "evt-game",
		Dice:     testutil.Script(1, 4, 5, 2, 3, 2),
		EventBus: bus,
		Logger:   testutil.NopLogger(),
	})
	require.NoError(t, e.AddPlayer(NewPlayer("alice", strategy.Conservative{})))
	require.NoError(t, e.Play(context.Background()))

	assert.Equal(t, []string{
		events.TypeGameStarted,
		events.TypeRoundStarted,
		events.TypeTurnEnded,
		events.TypeRoundEnded,
		events.TypeGameEnded,
	}, published)
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(Config{Rounds: 1, Logger: testutil.NopLogger()})
	assert.NotEmpty(t, e.GameID())
	assert.Equal(t, 1, e.Rounds())
	assert.Equal(t, PhaseConfiguring, e.Phase())
	assert.False(t, e.Finished())
}
