// Package randutil provides the deterministic random stream shared by the
// trainer and the evaluator.
package randutil

// LCG is a 31-bit linear congruential generator. The constants are pinned:
// two builds given the same base seed must shuffle identical decks, or shard
// files trained on different machines stop being comparable.
type LCG struct {
	seed uint32
}

// NewLCG returns a generator positioned at seed.
func NewLCG(seed uint32) LCG {
	return LCG{seed: seed}
}

// Range advances the stream and returns a value in [lo, hi].
func (r *LCG) Range(lo, hi int) int {
	r.seed = (r.seed*1103515245 + 12345) & 0x7fffffff
	return lo + int(r.seed%uint32(hi-lo+1))
}

// State returns the current stream position.
func (r *LCG) State() uint32 {
	return r.seed
}
