package cfr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/cutthroat/internal/abstraction"
	"github.com/lox/cutthroat/internal/game"
)

func TestUpdateStrategyMatchesPositiveRegrets(t *testing.T) {
	n := newNode(abstraction.Key{}, []game.Action{game.Pass, game.BidTwo, game.BidThree})
	n.RegretSum[0] = 3
	n.RegretSum[1] = -2
	n.RegretSum[2] = 1

	n.updateStrategy()

	require.InDelta(t, 0.75, n.Strategy[0], 1e-9)
	require.Zero(t, n.Strategy[1])
	require.InDelta(t, 0.25, n.Strategy[2], 1e-9)

	var sum float64
	for _, p := range n.Strategy {
		sum += p
	}
	require.InDelta(t, 1.0, sum, 1e-6)
	require.Equal(t, 1, n.Visits)
}

func TestUpdateStrategyUniformWhenNoPositiveRegret(t *testing.T) {
	n := newNode(abstraction.Key{}, []game.Action{game.Pass, game.BidTwo})
	n.RegretSum[0] = -1
	n.RegretSum[1] = -5

	n.updateStrategy()

	require.InDelta(t, 0.5, n.Strategy[0], 1e-12)
	require.InDelta(t, 0.5, n.Strategy[1], 1e-12)
}

func TestUpdateRegretsAccumulatesAdvantage(t *testing.T) {
	n := newNode(abstraction.Key{}, []game.Action{game.Pass, game.BidTwo})
	n.updateRegrets([]float64{2, -1}, 0.5)
	require.InDelta(t, 1.5, n.RegretSum[0], 1e-12)
	require.InDelta(t, -1.5, n.RegretSum[1], 1e-12)

	n.updateRegrets([]float64{1, 1}, 1)
	require.InDelta(t, 1.5, n.RegretSum[0], 1e-12)
	require.InDelta(t, -1.5, n.RegretSum[1], 1e-12)
}

func TestAverageStrategyNormalises(t *testing.T) {
	n := newNode(abstraction.Key{}, []game.Action{game.Pass, game.BidTwo})
	n.StrategySum[0] = 3
	n.StrategySum[1] = 1

	avg := n.AverageStrategy()
	require.InDelta(t, 0.75, avg[0], 1e-12)
	require.InDelta(t, 0.25, avg[1], 1e-12)

	fresh := newNode(abstraction.Key{}, []game.Action{game.Pass, game.BidTwo})
	for _, v := range fresh.AverageStrategy() {
		require.InDelta(t, 0.5, v, 1e-12)
	}
}

// A full traversal of one dealt hand is a zero-sum tree: the two perspective
// passes see opposite utilities at every terminal, and every visited node's
// current strategy stays a distribution.
func TestRecurseFullHand(t *testing.T) {
	tbl := NewTable(1, 10007)

	s := game.NewHand(42)
	u0 := recurse(&s, tbl, 0, 0)
	u1 := recurse(&s, tbl, 0, 1)

	require.False(t, math.IsNaN(u0))
	require.False(t, math.IsNaN(u1))
	require.Greater(t, tbl.NodeCount(), 0)

	err := tbl.Walk(func(n *Node) error {
		var sum float64
		for _, p := range n.Strategy {
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-6)
		require.Greater(t, n.Visits, 0)
		require.LessOrEqual(t, len(n.Actions), game.MaxActions)
		return nil
	})
	require.NoError(t, err)
}

// The traversal never mutates the state it is handed.
func TestRecurseLeavesStatePristine(t *testing.T) {
	tbl := NewTable(1, 10007)
	s := game.NewHand(7)
	before := s
	recurse(&s, tbl, 0, 0)
	require.Equal(t, before, s)
}
