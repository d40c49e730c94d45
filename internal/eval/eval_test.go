package eval

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lox/cutthroat/internal/abstraction"
	"github.com/lox/cutthroat/internal/game"
	"github.com/lox/cutthroat/internal/strategy"
)

func keyOf(s *game.State) abstraction.Key {
	return abstraction.BuildKey(s)
}

func TestRunRandomBaseline(t *testing.T) {
	stats, err := Run(nil, 50, 7, ModeRandom, nil, zerolog.Nop())
	require.NoError(t, err)

	require.Equal(t, 50, stats.Hands)
	require.Equal(t, 50, stats.HandsWon[0]+stats.HandsWon[1]+stats.Draws)
	require.Equal(t, 50*game.HandSize, stats.TricksWon[0]+stats.TricksWon[1])
	require.Zero(t, stats.NodesFound, "random mode never consults the policy")
	require.Zero(t, stats.NodesMissed)
}

func TestRunPolicyMissFallsBackToRandom(t *testing.T) {
	// An empty policy misses every decision; play still completes and every
	// player-0 decision counts as a miss.
	stats, err := Run(nil, 10, 3, ModePolicy, nil, zerolog.Nop())
	require.NoError(t, err)

	require.Equal(t, 10, stats.Hands)
	require.Zero(t, stats.NodesFound)
	require.Greater(t, stats.NodesMissed, 0)
	require.Zero(t, stats.Coverage())
}

func TestRunDeterministicForSeed(t *testing.T) {
	a, err := Run(nil, 20, 11, ModeRandom, nil, zerolog.Nop())
	require.NoError(t, err)
	b, err := Run(nil, 20, 11, ModeRandom, nil, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRunSelfPlayEmitsDataset(t *testing.T) {
	var buf bytes.Buffer
	const hands = 3

	stats, err := Run(nil, hands, 5, ModeSelfPlay, &buf, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, hands, stats.Hands)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header plus one row per decision: two bids and twelve plays per hand.
	require.Len(t, rows, 1+hands*14)
	require.Equal(t, []string{"hand", "player", "stage", "trick", "key", "action", "prob", "policy_hit"}, rows[0])
	for _, row := range rows[1:] {
		require.Len(t, row, 8)
		require.Len(t, row[4], 30, "key is 15 bytes hex-encoded")
		require.Equal(t, "false", row[7], "empty policy never hits")
	}
}

func TestRunSelfPlayRequiresDataset(t *testing.T) {
	_, err := Run(nil, 1, 1, ModeSelfPlay, nil, zerolog.Nop())
	require.Error(t, err)
}

func TestRunUsesPolicyWhenCovered(t *testing.T) {
	// Policy covering the opening bid only: the first player-0 decision of a
	// hand where player 0 opens must count as a hit.
	var hits int
	for seed := uint32(1); seed <= 5; seed++ {
		s := game.NewHand(seed)
		if s.ToAct != 0 {
			continue
		}
		rec := strategy.Record{Key: keyOf(&s), ActionCount: 4}
		rec.Actions = [strategy.MaxActions]game.Action{game.Pass, game.BidTwo, game.BidThree, game.BidFour}
		rec.Strategy = [strategy.MaxActions]float32{0.1, 0.6, 0.2, 0.1}

		stats, err := Run([]strategy.Record{rec}, 1, seed, ModePolicy, nil, zerolog.Nop())
		require.NoError(t, err)
		require.Equal(t, 1, stats.NodesFound)
		hits++
	}
	require.Greater(t, hits, 0, "at least one seed in range has player 0 opening")
}

func TestParseMode(t *testing.T) {
	for v, want := range map[int]Mode{0: ModePolicy, 1: ModeRandom, 2: ModeSelfPlay} {
		got, err := ParseMode(v)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseMode(3)
	require.Error(t, err)
}
