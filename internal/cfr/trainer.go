package cfr

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cutthroat/internal/game"
	"github.com/lox/cutthroat/internal/strategy"
)

// Trainer runs vanilla CFR across independent shards. Each shard gets its own
// goroutine, seed space, and hash-table arena; shards never share nodes, and
// duplicate information sets across shards are reconciled later by the merge
// tool.
type Trainer struct {
	cfg   Config
	table *Table
	clock quartz.Clock
	log   zerolog.Logger
	runID string
}

// NewTrainer validates the config and allocates the sharded table.
func NewTrainer(cfg Config, logger zerolog.Logger) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	return &Trainer{
		cfg:   cfg,
		table: NewTable(cfg.Shards, cfg.Buckets),
		clock: quartz.NewReal(),
		log:   logger.With().Str("run_id", runID).Logger(),
		runID: runID,
	}, nil
}

// SetClock replaces the trainer's clock; tests inject a quartz mock.
func (t *Trainer) SetClock(c quartz.Clock) {
	t.clock = c
}

// RunID identifies this training run in logs and reports.
func (t *Trainer) RunID() string {
	return t.runID
}

// Table exposes the trained node table.
func (t *Trainer) Table() *Table {
	return t.table
}

// Run trains every shard to completion, or until ctx is cancelled. The
// iteration budget is split evenly; a remainder is dropped, matching the
// fixed-count contract.
func (t *Trainer) Run(ctx context.Context) error {
	perShard := t.cfg.Iterations / t.cfg.Shards

	progressEvery := t.cfg.ProgressEvery
	if progressEvery == 0 {
		progressEvery = perShard / 100
		if progressEvery == 0 {
			progressEvery = perShard
		}
	}

	start := t.clock.Now()
	t.log.Info().
		Int("shards", t.cfg.Shards).
		Int("iterations", t.cfg.Iterations).
		Uint32("seed", t.cfg.Seed).
		Msg("starting training run")

	g, ctx := errgroup.WithContext(ctx)
	for shard := 0; shard < t.cfg.Shards; shard++ {
		g.Go(func() error {
			return t.runShard(ctx, shard, perShard, progressEvery)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	t.log.Info().
		Dur("elapsed", t.clock.Since(start)).
		Int("nodes", t.table.NodeCount()).
		Msg("training completed")
	return nil
}

// runShard executes one shard's iterations. Each iteration deals a fresh hand
// from the shard's seed space and traverses it once per perspective player.
func (t *Trainer) runShard(ctx context.Context, shard, iterations, progressEvery int) error {
	seed := t.cfg.Seed + uint32(shard)*SeedStride
	start := t.clock.Now()

	for i := 0; i < iterations; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// One deal, traversed once per perspective player. The recursion
		// applies actions to copies, so s stays pristine between passes.
		s := game.NewHand(seed + uint32(i))
		recurse(&s, t.table, shard, 0)
		recurse(&s, t.table, shard, 1)

		if (i+1)%progressEvery == 0 {
			t.log.Info().
				Int("shard", shard).
				Int("iteration", i+1).
				Int("nodes", t.table.ShardNodeCount(shard)).
				Dur("elapsed", t.clock.Since(start)).
				Msg("progress")
		}
	}
	return nil
}

// WriteStrategy serializes every node's average strategy as fixed-size
// records, all shards into one file. Record order is arbitrary here; the
// merge tool establishes the total order.
func (t *Trainer) WriteStrategy(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)
	var scratch [strategy.RecordSize]byte
	written := 0

	err = t.table.Walk(func(n *Node) error {
		rec := nodeRecord(n)
		rec.Marshal(scratch[:])
		if _, err := w.Write(scratch[:]); err != nil {
			return err
		}
		written++
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	t.log.Info().Int("records", written).Str("path", path).Msg("strategy saved")
	return nil
}

// nodeRecord converts a node to its on-disk form with the averaged strategy.
func nodeRecord(n *Node) strategy.Record {
	rec := strategy.Record{
		Key:         n.Key,
		ActionCount: uint8(len(n.Actions)),
	}
	copy(rec.Actions[:], n.Actions)
	for i, v := range n.AverageStrategy() {
		rec.Strategy[i] = float32(v)
	}
	return rec
}
