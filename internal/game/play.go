package game

// isLegalPlay applies the follow-suit rule. The leader may play anything;
// a responder holding the led suit must follow it or trump.
func (s *State) isLegalPlay(c Card) bool {
	if s.Leader == s.ToAct {
		return true
	}

	hasSuit := false
	n := s.Hands[s.ToAct].Count()
	for i := 0; i < n; i++ {
		if s.Hands[s.ToAct][i].Suit == s.LedSuit {
			hasSuit = true
			break
		}
	}
	if !hasSuit {
		return true
	}
	return c.Suit == s.LedSuit || c.Suit == s.Trump
}

// LegalPlays appends the distinct action classes backed by at least one legal
// card in the acting player's hand. The list is in ascending action-byte
// order so that a node's stored action order never depends on hand layout.
func (s *State) LegalPlays(buf []Action) []Action {
	var seen [256]bool
	start := len(buf)
	n := s.Hands[s.ToAct].Count()

	for i := 0; i < n; i++ {
		c := s.Hands[s.ToAct][i]
		if !s.isLegalPlay(c) {
			continue
		}
		a := playAction(s.Trump, c)
		if !seen[a] {
			seen[a] = true
			buf = append(buf, a)
		}
	}
	if len(buf) == start {
		panic("game: no legal plays")
	}

	// Insertion sort; the list never exceeds MaxActions.
	for i := start + 1; i < len(buf); i++ {
		for j := i; j > start && buf[j-1] > buf[j]; j-- {
			buf[j-1], buf[j] = buf[j], buf[j-1]
		}
	}
	return buf
}

// BindCardIndex resolves a play action to a concrete hand index: the first
// legal card in slot order that matches the class. Determinism here keeps
// (key, action) reproducible between training and evaluation.
func (s *State) BindCardIndex(a Action) int {
	n := s.Hands[s.ToAct].Count()
	for i := 0; i < n; i++ {
		c := s.Hands[s.ToAct][i]
		if a.Matches(c, s.Trump) && s.isLegalPlay(c) {
			return i
		}
	}
	panic("game: no card in hand matches action " + a.String())
}

// removeCard deletes the card at index, shifting later slots down so empties
// stay a suffix.
func (s *State) removeCard(p uint8, index int) {
	for i := index; i+1 < HandSize; i++ {
		s.Hands[p][i] = s.Hands[p][i+1]
	}
	s.Hands[p][HandSize-1] = Card{}
}

// ApplyPlay plays the card at the given hand index: records it in the play
// history with its context tag, declares trump on the very first card, and
// resolves the trick when the responder has answered.
func (s *State) ApplyPlay(index int) {
	p := s.ToAct
	tn := s.TrickNum
	c := s.Hands[p][index]

	s.Played[p][tn] = c
	s.removeCard(p, index)

	switch {
	case p == s.Leader && s.Trump == PreTrump:
		// First card of the hand declares trump.
		s.Trump = c.Suit
		s.LedSuit = c.Suit
		s.HistTags[p][tn] = Tag(CtxLedTrump, c)
	case p == s.Leader:
		s.LedSuit = c.Suit
		if c.Suit == s.Trump {
			s.HistTags[p][tn] = Tag(CtxLedTrump, c)
		} else {
			s.HistTags[p][tn] = Tag(CtxLedOther, c)
		}
	case c.Suit == s.Trump:
		s.HistTags[p][tn] = Tag(CtxRespTrump, c)
	default:
		s.HistTags[p][tn] = Tag(CtxRespOther, c)
	}

	if p == s.Leader {
		s.ToAct = 1 - p
		return
	}

	// Trick complete: decide the winner.
	leader := s.Leader
	led := s.Played[leader][tn]
	resp := s.Played[1-leader][tn]

	var winner uint8
	switch {
	case resp.Suit == s.Trump && led.Suit != s.Trump:
		winner = 1 - leader
	case led.Suit == s.Trump && resp.Suit != s.Trump:
		winner = leader
	case led.Suit == resp.Suit:
		if led.Rank > resp.Rank {
			winner = leader
		} else {
			winner = 1 - leader
		}
	default:
		// Responder neither followed nor trumped.
		winner = leader
	}

	s.TrickWinner[tn] = winner
	s.TricksWon[winner]++
	s.Leader = winner
	s.TrickNum++

	if s.TrickNum == HandSize {
		s.HandDone = true
	} else {
		s.ToAct = s.Leader
	}
}
