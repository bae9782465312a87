package game

// RoundRecord is the immutable outcome of one player's turn in one round.
// ScoreDelta is zero when the turn busted.
type RoundRecord struct {
	Round      int
	PlayerID   string
	ScoreDelta int
	Busted     bool

	// Qualified reports whether the player kept both qualifiers; it drives
	// the doubled wager and the qualification-rate statistic.
	Qualified bool

	// Rolls is how many rolls the turn took.
	Rolls int
}

// RoundSummary is the immutable outcome of one full round.
type RoundSummary struct {
	Round int

	// Winner is the ID of the unique top scorer, or "Tie" when the pot
	// carried over.
	Winner string

	// Pot is what was at stake this round, including the round's wagers.
	Pot int

	// Scores holds each player's turn score, in player insertion order.
	Scores []int
}

// TieWinner marks a round whose pot carried over to the next round.
const TieWinner = "Tie"
