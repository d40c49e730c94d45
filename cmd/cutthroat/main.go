// Command cutthroat is the solver toolchain for the two-player bid-and-trick
// card game: CFR training, shard merging, strategy-file validation, and
// policy evaluation.
package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Train    TrainCmd    `cmd:"" help:"run CFR training and write a strategy shard file"`
	Merge    MergeCmd    `cmd:"" help:"sort and k-way merge shard files into one policy file"`
	Validate ValidateCmd `cmd:"" help:"validate the structure of a strategy file"`
	Play     PlayCmd     `cmd:"" help:"evaluate a merged policy by playing hands"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("cutthroat"),
		kong.Description("CFR solver toolchain for the Cutthroat card game"),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)

	setupLogger(cli.Debug)

	if err := ctx.Run(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
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
