package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lox/cutthroat/internal/display"
	"github.com/lox/cutthroat/internal/eval"
	"github.com/lox/cutthroat/internal/strategy"
)

// PlayCmd evaluates a merged policy file by playing hands.
type PlayCmd struct {
	File       string `arg:"" help:"merged policy file" type:"existingfile"`
	Iterations int    `help:"number of hands to play" default:"10000"`
	Mode       int    `help:"0=policy vs random, 1=both random, 2=self-play with dataset" default:"0"`
	Seed       uint32 `help:"seed; 0 uses a time seed" default:"0"`
	Dataset    string `help:"CSV dataset path (required for mode 2)"`
}

func (cmd *PlayCmd) Run(_ context.Context) error {
	mode, err := eval.ParseMode(cmd.Mode)
	if err != nil {
		return err
	}
	if cmd.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive (got %d)", cmd.Iterations)
	}
	if mode == eval.ModeSelfPlay && cmd.Dataset == "" {
		return fmt.Errorf("mode 2 (self-play) requires --dataset")
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = uint32(time.Now().Unix()) & 0x7fffffff
	}

	records, err := strategy.Load(cmd.File)
	if err != nil {
		return err
	}
	log.Info().Str("file", cmd.File).Int("records", len(records)).
		Stringer("mode", mode).Uint32("seed", seed).Msg("policy loaded")

	var dataset io.Writer
	var datasetFile *os.File
	if mode == eval.ModeSelfPlay {
		datasetFile, err = os.Create(cmd.Dataset)
		if err != nil {
			return fmt.Errorf("create dataset %s: %w", cmd.Dataset, err)
		}
		defer datasetFile.Close()
		dataset = datasetFile
	}

	stats, err := eval.Run(records, cmd.Iterations, seed, mode, dataset, log.Logger)
	if err != nil {
		return err
	}

	lines := []string{
		display.Title("Evaluation results"),
		display.Row("Hands played", stats.Hands),
		display.Row("P0 hands won", fmt.Sprintf("%d (%.2f%%)", stats.HandsWon[0], pct(stats.HandsWon[0], stats.Hands))),
		display.Row("P1 hands won", fmt.Sprintf("%d (%.2f%%)", stats.HandsWon[1], pct(stats.HandsWon[1], stats.Hands))),
		display.Row("Draws", stats.Draws),
		display.Row("P0 points", stats.Points[0]),
		display.Row("P1 points", stats.Points[1]),
		display.Row("P0 tricks", stats.TricksWon[0]),
		display.Row("P1 tricks", stats.TricksWon[1]),
	}
	if mode != eval.ModeRandom {
		lines = append(lines,
			display.Row("Policy hits", stats.NodesFound),
			display.Row("Policy misses", stats.NodesMissed),
			display.Row("Coverage", fmt.Sprintf("%.2f%%", 100*stats.Coverage())))
	}
	if datasetFile != nil {
		lines = append(lines, display.Row("Dataset", cmd.Dataset))
	}

	fmt.Fprintln(os.Stdout, display.Report(lines...))
	return nil
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
