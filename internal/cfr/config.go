package cfr

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// SeedStride separates shard seed spaces so shards deal disjoint sequences.
const SeedStride = 10000

// Config aggregates the parameters of one training run.
type Config struct {
	Shards        int    `hcl:"shards,optional"`
	Iterations    int    `hcl:"iterations,optional"`
	Seed          uint32 `hcl:"seed,optional"`
	Output        string `hcl:"output,optional"`
	Buckets       int    `hcl:"buckets,optional"`
	ProgressEvery int    `hcl:"progress_every,optional"`
}

// DefaultConfig returns a single-shard configuration suitable for smoke runs.
func DefaultConfig() Config {
	return Config{
		Shards:     1,
		Iterations: 1000,
		Buckets:    DefaultBuckets,
	}
}

// Validate ensures the run parameters are safe to use.
func (c Config) Validate() error {
	if c.Shards <= 0 {
		return errors.New("shards must be > 0")
	}
	if c.Iterations <= 0 {
		return errors.New("iterations must be > 0")
	}
	if c.Iterations < c.Shards {
		return fmt.Errorf("iterations (%d) must be >= shards (%d)", c.Iterations, c.Shards)
	}
	if c.Buckets <= 0 {
		return errors.New("buckets must be > 0")
	}
	if c.Output == "" {
		return errors.New("output path is required")
	}
	if c.ProgressEvery < 0 {
		return errors.New("progress interval cannot be negative")
	}
	return nil
}

// LoadConfig reads an HCL training config, overlaying file values onto the
// defaults. A missing file yields the defaults unchanged.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var loaded Config
	if diags := gohcl.DecodeBody(file.Body, nil, &loaded); diags.HasErrors() {
		return cfg, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}

	if loaded.Shards != 0 {
		cfg.Shards = loaded.Shards
	}
	if loaded.Iterations != 0 {
		cfg.Iterations = loaded.Iterations
	}
	if loaded.Seed != 0 {
		cfg.Seed = loaded.Seed
	}
	if loaded.Output != "" {
		cfg.Output = loaded.Output
	}
	if loaded.Buckets != 0 {
		cfg.Buckets = loaded.Buckets
	}
	if loaded.ProgressEvery != 0 {
		cfg.ProgressEvery = loaded.ProgressEvery
	}
	return cfg, nil
}
