package game

import (
	"fmt"
	"strings"
)

// String renders the occupied slots, e.g. "AH 10C 5D".
func (h *Hand) String() string {
	var b strings.Builder
	for i, c := range h {
		if c.IsEmpty() {
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// Describe dumps the state for debugging.
func (s *State) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "stage=%s dealer=P%d to_act=P%d\n", s.Stage, s.Dealer, s.ToAct)
	if s.Stage == StageBid {
		fmt.Fprintf(&b, "bids: P0=%d P1=%d\n", s.Bid[0], s.Bid[1])
	} else {
		fmt.Fprintf(&b, "trump=%s leader=P%d trick=%d/%d led=%s\n",
			s.Trump, s.Leader, s.TrickNum, HandSize, s.LedSuit)
	}
	fmt.Fprintf(&b, "P0 hand: %s\n", s.Hands[0].String())
	fmt.Fprintf(&b, "P1 hand: %s", s.Hands[1].String())
	return b.String()
}
