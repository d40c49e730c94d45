package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lox/cutthroat/internal/cfr"
)

// TrainCmd runs one training process: S shards in parallel, one binary shard
// file out. Flags override values loaded from the optional HCL config.
type TrainCmd struct {
	Out           string `help:"path to write the strategy shard file"`
	Shards        int    `help:"number of parallel shards (threads)" default:"0"`
	Iterations    int    `help:"total training iterations, split across shards" default:"0"`
	Seed          uint32 `help:"base seed; 0 uses a time seed" default:"0"`
	Buckets       int    `help:"hash buckets per shard (lower this for smoke runs)" default:"0"`
	ProgressEvery int    `help:"log progress every N iterations per shard (0 => 1% of the shard budget)" default:"0"`
	Config        string `help:"optional HCL training config file" default:"cutthroat.hcl"`
}

func (cmd *TrainCmd) Run(ctx context.Context) error {
	cfg, err := cfr.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}

	if cmd.Shards > 0 {
		cfg.Shards = cmd.Shards
	}
	if cmd.Iterations > 0 {
		cfg.Iterations = cmd.Iterations
	}
	if cmd.Seed != 0 {
		cfg.Seed = cmd.Seed
	}
	if cmd.Buckets > 0 {
		cfg.Buckets = cmd.Buckets
	}
	if cmd.ProgressEvery > 0 {
		cfg.ProgressEvery = cmd.ProgressEvery
	}
	if cmd.Out != "" {
		cfg.Output = cmd.Out
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint32(time.Now().Unix()) & 0x7fffffff
	}

	trainer, err := cfr.NewTrainer(cfg, log.Logger)
	if err != nil {
		return err
	}

	if err := trainer.Run(ctx); err != nil {
		return err
	}

	if err := trainer.WriteStrategy(cfg.Output); err != nil {
		return fmt.Errorf("save strategy: %w", err)
	}
	return nil
}
