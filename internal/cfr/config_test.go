package cfr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlaysFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.hcl")
	content := `
shards     = 4
iterations = 200000
seed       = 99
output     = "shard-a.bin"
buckets    = 50000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Shards)
	require.Equal(t, 200000, cfg.Iterations)
	require.Equal(t, uint32(99), cfg.Seed)
	require.Equal(t, "shard-a.bin", cfg.Output)
	require.Equal(t, 50000, cfg.Buckets)
	require.Zero(t, cfg.ProgressEvery, "unset values keep defaults")
}

func TestLoadConfigRejectsMalformedHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("shards = = 2"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
