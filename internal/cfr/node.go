// Package cfr implements the sharded counterfactual-regret-minimization
// trainer: a chained hash table of information-set nodes per shard and the
// full-traversal regret-matching recursion that fills it.
package cfr

import (
	"github.com/lox/cutthroat/internal/abstraction"
	"github.com/lox/cutthroat/internal/game"
)

// Node is one information set's accumulators. Identity is the pair
// (key, action set): the abstraction can map states with different legal
// action sets onto one key, and conflating them would corrupt the strategy
// vectors, so such states chain as separate nodes.
type Node struct {
	Key         abstraction.Key
	Actions     []game.Action
	RegretSum   []float64
	Strategy    []float64
	StrategySum []float64
	Visits      int

	next *Node
}

func newNode(key abstraction.Key, actions []game.Action) *Node {
	n := &Node{
		Key:         key,
		Actions:     append([]game.Action(nil), actions...),
		RegretSum:   make([]float64, len(actions)),
		Strategy:    make([]float64, len(actions)),
		StrategySum: make([]float64, len(actions)),
	}
	uniform := 1.0 / float64(len(actions))
	for i := range n.Strategy {
		n.Strategy[i] = uniform
	}
	return n
}

// updateStrategy recomputes the current strategy by regret matching over the
// positive regrets, accumulates it into the running average, and counts the
// visit.
func (n *Node) updateStrategy() {
	var norm float64
	for _, r := range n.RegretSum {
		if r > 0 {
			norm += r
		}
	}

	for i := range n.Strategy {
		if norm > 0 {
			if n.RegretSum[i] > 0 {
				n.Strategy[i] = n.RegretSum[i] / norm
			} else {
				n.Strategy[i] = 0
			}
		} else {
			n.Strategy[i] = 1.0 / float64(len(n.Strategy))
		}
		n.StrategySum[i] += n.Strategy[i]
	}
	n.Visits++
}

// updateRegrets adds each action's advantage over the node utility.
func (n *Node) updateRegrets(utils []float64, nodeUtil float64) {
	for i := range utils {
		n.RegretSum[i] += utils[i] - nodeUtil
	}
}

// AverageStrategy returns the normalised strategy-sum vector, uniform when
// nothing has accumulated.
func (n *Node) AverageStrategy() []float64 {
	out := make([]float64, len(n.StrategySum))
	var total float64
	for _, v := range n.StrategySum {
		total += v
	}
	if total <= 0 {
		uniform := 1.0 / float64(len(out))
		for i := range out {
			out[i] = uniform
		}
		return out
	}
	for i, v := range n.StrategySum {
		out[i] = v / total
	}
	return out
}
