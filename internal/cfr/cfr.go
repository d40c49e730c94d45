package cfr

import (
	"github.com/lox/cutthroat/internal/abstraction"
	"github.com/lox/cutthroat/internal/game"
)

// recurse walks the full game tree below s and returns its utility for
// player p. Every legal action is explored; the node utility is the
// strategy-weighted mean of the action utilities, and regrets accumulate only
// at p's own decision nodes. Counterfactual weights are implicitly 1: reach
// probabilities are not tracked, the abstraction itself is the regret target.
func recurse(s *game.State, tbl *Table, shard int, p uint8) float64 {
	if s.HandDone {
		u := float64(s.ScoreHand())
		if p == 1 {
			u = -u
		}
		return u
	}

	var buf [game.MaxActions]game.Action
	actions := s.LegalActions(buf[:0])

	key := abstraction.BuildKey(s)
	node := tbl.GetOrCreate(shard, key, actions)
	node.updateStrategy()

	var utils [game.MaxActions]float64
	var nodeUtil float64

	// Iterate the node's stored order so regret indices line up with its
	// accumulators even when this state enumerated the set differently.
	for i, a := range node.Actions {
		next := *s
		next.Apply(a)
		utils[i] = recurse(&next, tbl, shard, p)
		nodeUtil += node.Strategy[i] * utils[i]
	}

	if s.ToAct == p {
		node.updateRegrets(utils[:len(node.Actions)], nodeUtil)
	}
	return nodeUtil
}
