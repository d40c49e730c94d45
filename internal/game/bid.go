package game

// LegalBids appends the legal bid actions onto buf. The non-dealer opens with
// the full alphabet; the dealer's options depend on the opening bid.
func (s *State) LegalBids(buf []Action) []Action {
	first := 1 - s.Dealer

	if s.ToAct == first {
		return append(buf, Pass, BidTwo, BidThree, BidFour)
	}

	switch s.Bid[first] {
	case 0:
		// Opener passed; the dealer's pass is converted to a forced bid
		// when applied.
		return append(buf, Pass)
	case 1:
		return append(buf, BidTwo, BidThree, BidFour)
	case 2:
		return append(buf, BidThree, BidFour)
	case 3:
		return append(buf, BidFour)
	}
	panic("game: invalid opening bid")
}

// ApplyBid records the bid and, once both players have acted, resolves the
// auction: forced bid when both pass, dealer steal on a matched bid,
// otherwise high bid wins. The winner leads with trump undeclared.
func (s *State) ApplyBid(a Action) {
	s.Bid[s.ToAct] = uint8(a)

	first := 1 - s.Dealer
	second := s.Dealer

	if s.ToAct == first {
		s.ToAct = second
		return
	}

	s.Stage = StagePlay
	s.Trump = PreTrump

	bid := uint8(a)
	switch {
	case bid == 0 && s.Bid[first] == 0:
		// Both passed: dealer is forced to two points.
		s.WinningBidder = second
		s.WinningBid = 1
		s.Bid[second] = 1
		s.BidForced = true
	case bid == 0:
		s.WinningBidder = first
		s.WinningBid = s.Bid[first]
	case bid == s.Bid[first]:
		// Matched bid: dealer steals.
		s.WinningBidder = second
		s.WinningBid = bid
		s.BidStolen = true
	case bid > s.Bid[first]:
		s.WinningBidder = second
		s.WinningBid = bid
	case bid < s.Bid[first]:
		s.WinningBidder = first
		s.WinningBid = s.Bid[first]
	default:
		panic("game: bid comparison fell through")
	}

	s.Leader = s.WinningBidder
	s.ToAct = s.WinningBidder
}
