package stats

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteGameStats(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	path, err := w.WriteGameStats([]GameStatRow{
		{Round: 0, PlayerID: "alice", ScoreDelta: 5},
		{Round: 0, PlayerID: "bob", Busted: true},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "game_stats.csv"), path)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"round", "player_id", "score_delta", "busted"}, records[0])
	assert.Equal(t, []string{"0", "alice", "5", "false"}, records[1])
	assert.Equal(t, []string{"0", "bob", "0", "true"}, records[2])
}

func TestWriteAllScores(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	path, err := w.WriteAllScores([]PlayerScoreRow{
		{PlayerID: "alice", Strategy: "conservative", TotalScore: 10},
	})
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"player_id", "strategy", "total_score"}, records[0])
	assert.Equal(t, []string{"alice", "conservative", "10"}, records[1])
}

func TestWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir)

	_, err := w.WriteAllScores(nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
