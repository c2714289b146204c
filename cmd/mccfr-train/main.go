// Command mccfr-train runs MCCFR+ outcome-sampling self-play on the
// generative Liar's Dice game and writes the combined P1/P2 policy table.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/emgarVIII/liars-dice/sdk/liarsdice"
	"github.com/emgarVIII/liars-dice/sdk/policyfile"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	OutPolicy  string `help:"where to write the combined P1/P2 policy JSON" required:""`
	Iterations int    `name:"iters" help:"number of MCCFR+ self-play iterations" default:"500000"`
	Seed       int64  `help:"PRNG seed" default:"1"`
	Dice       int    `help:"number of dice per hand" default:"5"`
	Faces      int    `help:"number of faces per die" default:"6"`
	Workers    int    `help:"number of concurrent self-play workers (0 => GOMAXPROCS)" default:"0"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("mccfr-train"),
		kong.Description("MCCFR+ self-play over the generative Liar's Dice game"),
		kong.UsageOnError(),
	)
	setupLogger(cli.Debug)

	if err := run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("mccfr-train failed")
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
	workers := cli.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	cfg := liarsdice.TrainingConfig{
		Game:       liarsdice.Config{Dice: cli.Dice, Faces: cli.Faces},
		Iterations: cli.Iterations,
		Seed:       cli.Seed,
		Workers:    workers,
	}

	trainer, err := liarsdice.NewTrainer(cfg)
	if err != nil {
		return fmt.Errorf("configure trainer: %w", err)
	}

	log.Info().Int("iterations", cli.Iterations).Int("workers", workers).Int("dice", cli.Dice).Int("faces", cli.Faces).Msg("starting MCCFR+ self-play")

	progress := func(p liarsdice.Progress) {
		fmt.Printf("MCCFR+ iter %d/%d\n", p.Iteration, p.TotalIterations)
		log.Info().Int("iteration", p.Iteration).Int("infostates_pl1", p.InfoStatesPl1).Int("infostates_pl2", p.InfoStatesPl2).Dur("elapsed", p.Elapsed).Msg("progress")
	}

	if err := trainer.Run(ctx, progress); err != nil {
		return fmt.Errorf("self-play: %w", err)
	}

	policy := policyfile.Policy(trainer.Policy())
	if err := policyfile.Save(cli.OutPolicy, policy); err != nil {
		return fmt.Errorf("save policy: %w", err)
	}

	p1, p2 := trainer.InfoStateCounts()
	log.Info().Int("infostates_pl1", p1).Int("infostates_pl2", p2).Str("path", cli.OutPolicy).Msg("policy saved")
	fmt.Printf("Wrote MCCFR+ policy to %s\n", cli.OutPolicy)
	return nil
}
