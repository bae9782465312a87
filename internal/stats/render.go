package stats

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// RenderGameStats formats game stat rows as an aligned text table. A
// non-positive limit renders every row; otherwise only the first limit rows
// are shown, with a trailing ellipsis line.
func RenderGameStats(rows []GameStatRow, limit int) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ROUND\tPLAYER\tSCORE DELTA\tBUSTED")
	shown := len(rows)
	if limit > 0 && limit < shown {
		shown = limit
	}
	for _, row := range rows[:shown] {
		fmt.Fprintf(w, "%d\t%s\t%d\t%t\n", row.Round, row.PlayerID, row.ScoreDelta, row.Busted)
	}
	if shown < len(rows) {
		fmt.Fprintf(w, "...\t(%d more rows)\t\t\n", len(rows)-shown)
	}
	w.Flush()
	return sb.String()
}

// RenderAllScores formats the per-player score table.
func RenderAllScores(rows []PlayerScoreRow) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "PLAYER\tSTRATEGY\tTOTAL SCORE")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%d\n", row.PlayerID, row.Strategy, row.TotalScore)
	}
	w.Flush()
	return sb.String()
}

// RenderQualificationRates formats per-player qualification rates.
func RenderQualificationRates(rates []QualificationRate) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "PLAYER\tQUALIFIED\tROUNDS\tRATE")
	for _, r := range rates {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\n", r.PlayerID, r.Qualified, r.Rounds, r.Rate)
	}
	w.Flush()
	return sb.String()
}

// RenderWinRates formats per-winner round win rates.
func RenderWinRates(rates []WinRate) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "WINNER\tWINS\tROUNDS\tRATE")
	for _, r := range rates {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\n", r.Winner, r.Wins, r.Rounds, r.Rate)
	}
	w.Flush()
	return sb.String()
}
