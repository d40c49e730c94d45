package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/lox/cutthroat/internal/merge"
)

// MergeCmd combines independently trained shard files into one sorted policy.
type MergeCmd struct {
	Out       string   `help:"path to write the merged policy file" required:""`
	MinVisits int      `help:"reserved for visit-count pruning; currently ignored" default:"0"`
	Inputs    []string `arg:"" name:"input" help:"shard files to merge" type:"existingfile"`
}

func (cmd *MergeCmd) Run(_ context.Context) error {
	_, err := merge.Files(cmd.Out, cmd.MinVisits, cmd.Inputs, log.Logger)
	return err
}
