package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nahuelalmeira/midnight/internal/game"
)

// Writer exports the tabular views as CSV files under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a CSV writer rooted at baseDir. The directory is
// created on first write.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

func (w *Writer) write(name string, header []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("writing %s header: %w", name, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return "", fmt.Errorf("writing %s rows: %w", name, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", name, err)
	}
	return path, nil
}

// WriteGameStats writes the per-turn table to game_stats.csv and returns
// its path.
func (w *Writer) WriteGameStats(rows []GameStatRow) (string, error) {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{
			strconv.Itoa(row.Round),
			row.PlayerID,
			strconv.Itoa(row.ScoreDelta),
			strconv.FormatBool(row.Busted),
		}
	}
	return w.write("game_stats.csv",
		[]string{"round", "player_id", "score_delta", "busted"}, records)
}

// WriteAllScores writes the per-player table to player_scores.csv and
// returns its path.
func (w *Writer) WriteAllScores(rows []PlayerScoreRow) (string, error) {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{
			row.PlayerID,
			row.Strategy,
			strconv.Itoa(row.TotalScore),
		}
	}
	return w.write("player_scores.csv",
		[]string{"player_id", "strategy", "total_score"}, records)
}

// WriteRoundSummaries writes the per-round history to round_summaries.csv
// and returns its path.
func (w *Writer) WriteRoundSummaries(summaries []game.RoundSummary) (string, error) {
	records := make([][]string, len(summaries))
	for i, s := range summaries {
		records[i] = []string{
			strconv.Itoa(s.Round),
			s.Winner,
			strconv.Itoa(s.Pot),
		}
	}
	return w.write("round_summaries.csv",
		[]string{"round", "winner", "pot"}, records)
}
