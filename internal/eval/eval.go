// Package eval plays hands with a merged policy: against a random opponent,
// fully random as a baseline, or policy-vs-policy while emitting a decision
// dataset.
package eval

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/lox/cutthroat/internal/game"
	"github.com/lox/cutthroat/internal/strategy"
)

// Mode selects who plays from the policy.
type Mode int

const (
	ModePolicy   Mode = iota // player 0 uses the policy, player 1 random
	ModeRandom               // both random, baseline
	ModeSelfPlay             // both use the policy, dataset emitted
)

// ParseMode maps the CLI mode number.
func ParseMode(v int) (Mode, error) {
	if v < 0 || v > 2 {
		return 0, fmt.Errorf("unknown mode %d (want 0, 1, or 2)", v)
	}
	return Mode(v), nil
}

func (m Mode) String() string {
	switch m {
	case ModePolicy:
		return "policy"
	case ModeRandom:
		return "random"
	default:
		return "self-play"
	}
}

// Stats accumulates evaluation results.
type Stats struct {
	Hands       int
	HandsWon    [game.Players]int
	Draws       int
	Points      [game.Players]int
	TricksWon   [game.Players]int
	NodesFound  int
	NodesMissed int
}

// Coverage returns the fraction of policy decisions that found a node.
func (s *Stats) Coverage() float64 {
	total := s.NodesFound + s.NodesMissed
	if total == 0 {
		return 0
	}
	return float64(s.NodesFound) / float64(total)
}

// Run plays the requested number of hands. Hand i seeds its deterministic
// stream with seed+i, so a run is reproducible from (seed, hands, mode).
// dataset must be non-nil in self-play mode.
func Run(records []strategy.Record, hands int, seed uint32, mode Mode, dataset io.Writer, log zerolog.Logger) (Stats, error) {
	var stats Stats

	var w *csv.Writer
	if mode == ModeSelfPlay {
		if dataset == nil {
			return stats, fmt.Errorf("self-play mode requires a dataset writer")
		}
		w = csv.NewWriter(dataset)
		if err := w.Write([]string{"hand", "player", "stage", "trick", "key", "action", "prob", "policy_hit"}); err != nil {
			return stats, fmt.Errorf("write dataset header: %w", err)
		}
	}

	for i := 0; i < hands; i++ {
		s := game.NewHand(seed + uint32(i))
		if err := playHand(&s, records, mode, i, w, &stats); err != nil {
			return stats, err
		}

		u := s.ScoreHand()
		stats.Hands++
		switch {
		case u > 0:
			stats.HandsWon[0]++
		case u < 0:
			stats.HandsWon[1]++
		default:
			stats.Draws++
		}
		for p := 0; p < game.Players; p++ {
			stats.Points[p] += int(s.TotalScore[p])
			stats.TricksWon[p] += int(s.TricksWon[p])
		}

		if (i+1)%10000 == 0 {
			log.Debug().Int("hands", i+1).Msg("evaluation progress")
		}
	}

	if w != nil {
		w.Flush()
		if err := w.Error(); err != nil {
			return stats, fmt.Errorf("flush dataset: %w", err)
		}
	}
	return stats, nil
}

// playHand drives one hand to completion, choosing per-decision by mode.
func playHand(s *game.State, records []strategy.Record, mode Mode, hand int, w *csv.Writer, stats *Stats) error {
	var buf [game.MaxActions]game.Action

	for !s.HandDone {
		actions := s.LegalActions(buf[:0])

		usePolicy := mode == ModeSelfPlay || (mode == ModePolicy && s.ToAct == 0)

		var chosen game.Action
		var prob float32
		hit := false

		if usePolicy {
			chosen, prob = strategy.BestActionWithProb(records, s)
			if chosen == game.NoAction {
				stats.NodesMissed++
				chosen = randomAction(s, actions)
			} else {
				stats.NodesFound++
				hit = true
			}
		} else {
			chosen = randomAction(s, actions)
		}

		if w != nil {
			err := w.Write([]string{
				strconv.Itoa(hand),
				strconv.Itoa(int(s.ToAct)),
				s.Stage.String(),
				strconv.Itoa(int(s.TrickNum)),
				keyHex(s),
				chosen.String(),
				strconv.FormatFloat(float64(prob), 'f', 4, 32),
				strconv.FormatBool(hit),
			})
			if err != nil {
				return fmt.Errorf("write dataset row: %w", err)
			}
		}

		s.Apply(chosen)
	}
	return nil
}

// randomAction draws uniformly from the legal list using the hand's own
// deterministic stream.
func randomAction(s *game.State, actions []game.Action) game.Action {
	if len(actions) == 1 {
		return actions[0]
	}
	return actions[s.RNG.Range(0, len(actions)-1)]
}
