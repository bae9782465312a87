package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nahuelalmeira/midnight/internal/config"
	"github.com/nahuelalmeira/midnight/internal/game"
	"github.com/nahuelalmeira/midnight/internal/game/events"
	"github.com/nahuelalmeira/midnight/internal/game/events/subscribers"
	"github.com/nahuelalmeira/midnight/internal/stats"
	"github.com/nahuelalmeira/midnight/internal/strategy"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	rounds := flag.Int("rounds", -1, "Number of rounds to simulate (-1 to use config default)")
	seed := flag.Int64("seed", 0, "Dice seed (0 to use config default or time)")
	csvDir := flag.String("csv", "", "Directory for CSV export (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	logEvents := flag.Bool("log-events", false, "Log every game event")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *rounds == -1 {
		*rounds = cfg.Simulation.Rounds
	}
	if *seed == 0 {
		*seed = cfg.Simulation.Seed
	}
	if *csvDir == "" {
		*csvDir = cfg.Simulation.CSVDir
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	bus := events.NewEventBus()
	if *logEvents {
		bus.Subscribe(subscribers.NewLoggerSubscriber("event_logger", log.Logger, zerolog.InfoLevel))
	}

	engine := game.NewEngine(game.Config{
		Rounds:   *rounds,
		Ante:     cfg.Game.Ante,
		Rng:      rng,
		EventBus: bus,
		Logger:   log.Logger,
	})

	if err := addPlayers(engine, cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up players")
	}

	log.Info().
		Int("rounds", *rounds).
		Int64("seed", *seed).
		Int("players", engine.NumPlayers()).
		Msg("Starting simulation")

	start := time.Now()
	if err := engine.Play(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}
	log.Info().Dur("duration", time.Since(start)).Msg("Simulation finished")

	if err := report(engine, *csvDir); err != nil {
		log.Fatal().Err(err).Msg("Failed to report results")
	}
}

// addPlayers builds the table from config, falling back to a default pair
// when none is configured.
func addPlayers(engine *game.Engine, cfg *config.Config) error {
	players := cfg.Simulation.Players
	if len(players) == 0 {
		players = []config.PlayerConfig{
			{Name: "conservative", Strategy: "conservative"},
			{Name: "aggressive", Strategy: "aggressive"},
		}
	}

	for _, pc := range players {
		strat, err := strategy.New(pc.Strategy, strategy.Options{Threshold: pc.Threshold})
		if err != nil {
			return fmt.Errorf("player %q: %w", pc.Name, err)
		}
		p := game.NewStakedPlayer(pc.Name, strat, cfg.Game.InitialStake)
		if err := engine.AddPlayer(p); err != nil {
			return err
		}
	}
	return nil
}

// report prints the tabular views and, when a directory is configured,
// exports them as CSV.
func report(engine *game.Engine, csvDir string) error {
	agg := stats.NewAggregator(engine)

	gameStats, err := agg.GameStats()
	if err != nil {
		return err
	}
	allScores, err := agg.AllScores()
	if err != nil {
		return err
	}
	qualRates, err := agg.QualificationRates()
	if err != nil {
		return err
	}
	winRates, err := agg.WinRates()
	if err != nil {
		return err
	}
	standings, err := agg.Standings()
	if err != nil {
		return err
	}

	fmt.Println("Game stats:")
	fmt.Print(stats.RenderGameStats(gameStats, 20))
	fmt.Println()
	fmt.Println("Scores:")
	fmt.Print(stats.RenderAllScores(allScores))
	fmt.Println()
	fmt.Println("Qualification rates:")
	fmt.Print(stats.RenderQualificationRates(qualRates))
	fmt.Println()
	fmt.Println("Win rates:")
	fmt.Print(stats.RenderWinRates(winRates))
	fmt.Println()
	fmt.Println("Winnings:")
	for _, s := range standings {
		fmt.Printf("  %s (%s): %+d chips\n", s.ID, s.Strategy, s.RelativeStake)
	}

	if csvDir == "" {
		return nil
	}

	w := stats.NewWriter(csvDir)
	if _, err := w.WriteGameStats(gameStats); err != nil {
		return err
	}
	if _, err := w.WriteAllScores(allScores); err != nil {
		return err
	}
	summaries, err := agg.RoundSummaries()
	if err != nil {
		return err
	}
	if _, err := w.WriteRoundSummaries(summaries); err != nil {
		return err
	}
	log.Info().Str("dir", csvDir).Msg("CSV export written")
	return nil
}

func setupLogging(level, format string) {
	// Parse log level
	var logLevel zerolog.Level
	switch level {
	case "trace":
		logLevel = zerolog.TraceLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
