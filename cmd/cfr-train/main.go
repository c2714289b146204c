// Command cfr-train runs CFR+ self-play over a loaded game file and writes
// player 1's average sequence-form strategy as a policy file.
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
	"github.com/emgarVIII/liars-dice/sdk/policyfile"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Game       string `help:"path to JSON game file" required:""`
	OutPolicy  string `help:"where to write the P1 average policy JSON" required:""`
	Iterations int    `name:"iters" help:"number of CFR+ self-play iterations" default:"50000"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("cfr-train"),
		kong.Description("CFR+ self-play over a sequence-form game file"),
		kong.UsageOnError(),
	)
	setupLogger(cli.Debug)

	if err := run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("cfr-train failed")
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
	log.Info().Str("path", cli.Game).Msg("loading game file")
	game, err := gamefile.Load(cli.Game)
	if err != nil {
		return fmt.Errorf("load game file: %w", err)
	}

	log.Info().Int("iterations", cli.Iterations).Msg("starting CFR+ self-play")
	progress := func(p cfr.Progress) {
		fmt.Printf("CFR+ self-play iteration %d/%d\n", p.Iteration, p.TotalIterations)
		log.Info().Int("iteration", p.Iteration).Dur("elapsed", p.Elapsed).Msg("progress")
	}

	avg1, _, err := cfr.RunCFRPlus(ctx, game.Pl1, game.Pl2, game.Table, cli.Iterations, progress)
	if err != nil {
		return fmt.Errorf("self-play: %w", err)
	}

	policy := policyfile.FromStrategy(game.Pl1, avg1)
	if err := policyfile.Save(cli.OutPolicy, policy); err != nil {
		return fmt.Errorf("save policy: %w", err)
	}
	log.Info().Str("path", cli.OutPolicy).Msg("policy saved")
	fmt.Printf("Wrote Nash-policy for P1 to %s\n", cli.OutPolicy)
	return nil
}
