package strategy

import (
	"bytes"
	"fmt"
	"os"

	"github.com/lox/cutthroat/internal/abstraction"
	"github.com/lox/cutthroat/internal/game"
)

// Load reads a whole strategy file into memory. The file must be a multiple
// of the record size; anything else is a format mismatch (for example a file
// trained under a different abstraction variant).
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data)%RecordSize != 0 {
		return nil, fmt.Errorf("%s: size %d is not a multiple of record size %d", path, len(data), RecordSize)
	}

	records := make([]Record, len(data)/RecordSize)
	for i := range records {
		records[i].Unmarshal(data[i*RecordSize:])
	}
	return records, nil
}

// Find binary-searches records (sorted by the merge total order) for the
// key and returns an index, or -1 when absent. Only the key bytes are
// compared: if one key carries several action sets, any of them may be
// returned, and the caller's legality re-check keeps the answer safe.
func Find(records []Record, key abstraction.Key) int {
	lo, hi := 0, len(records)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch c := bytes.Compare(records[mid].Key[:], key[:]); {
		case c == 0:
			return mid
		case c < 0:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}

// BestAction builds the key for the live state, looks it up, and returns the
// highest-probability action that is legal right now. Legality is re-checked
// because the lossy abstraction can advertise actions the concrete state
// cannot back. Returns NoAction when the key is absent or nothing advertised
// is legal.
func BestAction(records []Record, s *game.State) game.Action {
	a, _ := BestActionWithProb(records, s)
	return a
}

// BestActionWithProb is BestAction plus the chosen action's stored
// probability, for dataset rows.
func BestActionWithProb(records []Record, s *game.State) (game.Action, float32) {
	key := abstraction.BuildKey(s)
	idx := Find(records, key)
	if idx < 0 {
		return game.NoAction, 0
	}
	rec := &records[idx]

	var buf [game.MaxActions]game.Action
	legal := s.LegalActions(buf[:0])

	best := game.NoAction
	bestProb := float32(-1)
	for i := uint8(0); i < rec.ActionCount; i++ {
		a := rec.Actions[i]
		ok := false
		for _, l := range legal {
			if l == a {
				ok = true
				break
			}
		}
		if ok && rec.Strategy[i] > bestProb {
			bestProb = rec.Strategy[i]
			best = a
		}
	}
	if best == game.NoAction {
		return game.NoAction, 0
	}
	return best, bestProb
}
