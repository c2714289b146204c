// Command solve runs the diagnostic CFR problems against a loaded game
// file: exact best response vs. uniform (3.1), vanilla CFR exploitability
// after 1000 iterations (3.2), and CFR+ exploitability after 5000
// iterations (3.3).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/emgarVIII/liars-dice/sdk/cfr"
	"github.com/emgarVIII/liars-dice/sdk/gamefile"
	"github.com/emgarVIII/liars-dice/sdk/payoff"
	"github.com/emgarVIII/liars-dice/sdk/treeplex"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Game    string `help:"path to JSON game file" required:""`
	Problem string `help:"which diagnostic problem to run" enum:"3.1,3.2,3.3" required:""`
}

func main() {
	kong.Parse(&cli,
		kong.Name("solve"),
		kong.Description("Diagnostic CFR problem runner"),
		kong.UsageOnError(),
	)
	setupLogger(cli.Debug)

	if err := run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("solve failed")
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func run(ctx context.Context) error {
	log.Info().Str("path", cli.Game).Msgf("Reading game path %s...", cli.Game)
	game, err := gamefile.Load(cli.Game)
	if err != nil {
		return fmt.Errorf("load game file: %w", err)
	}
	log.Info().Msgf("... done. Running code for Problem %s", cli.Problem)

	switch cli.Problem {
	case "3.1":
		return solve31(ctx, game)
	case "3.2":
		return solve32(ctx, game)
	case "3.3":
		return solve33(ctx, game)
	default:
		return fmt.Errorf("unknown problem %q", cli.Problem)
	}
}

func solve31(ctx context.Context, game *gamefile.Game) error {
	uniform2 := treeplex.UniformStrategy(game.Pl2)
	u, err := payoff.ComputeUtilityVectorPl1(ctx, game.Table, game.Pl1.Index, uniform2)
	if err != nil {
		return err
	}
	value := cfr.BestResponseValue(game.Pl1, u)
	fmt.Println("Exact best-response value:", value)
	return nil
}

func solve32(ctx context.Context, game *gamefile.Game) error {
	progress := func(p cfr.Progress) {
		log.Info().Int("iteration", p.Iteration).Msg("CFR progress")
	}
	avg1, avg2, err := cfr.RunCFR(ctx, game.Pl1, game.Pl2, game.Table, 1000, progress)
	if err != nil {
		return err
	}
	return reportGap(ctx, game, avg1, avg2, "")
}

func solve33(ctx context.Context, game *gamefile.Game) error {
	progress := func(p cfr.Progress) {
		log.Info().Int("iteration", p.Iteration).Msg("CFR+ progress")
	}
	avg1, avg2, err := cfr.RunCFRPlus(ctx, game.Pl1, game.Pl2, game.Table, 5000, progress)
	if err != nil {
		return err
	}
	return reportGap(ctx, game, avg1, avg2, " (CFR+)")
}

func reportGap(ctx context.Context, game *gamefile.Game, avg1, avg2 *treeplex.Vector, label string) error {
	u1, err := payoff.ComputeUtilityVectorPl1(ctx, game.Table, game.Pl1.Index, avg2)
	if err != nil {
		return err
	}
	u2, err := payoff.ComputeUtilityVectorPl2(ctx, game.Table, game.Pl2.Index, avg1)
	if err != nil {
		return err
	}
	gap := cfr.Gap(game.Pl1, game.Pl2, u1, u2)
	eu1 := cfr.ExpectedUtility(avg1, u1)
	fmt.Printf("Final saddle point gap%s: %v\n", label, gap)
	fmt.Printf("Final expected utility for Player 1%s: %v\n", label, eu1)
	return nil
}
