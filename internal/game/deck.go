package game

// deal shuffles a fresh 52-card deck with the state's seeded stream and deals
// six cards to each player from the shuffled prefix, player 0 first.
func (s *State) deal() {
	var deck [52]uint8
	for i := range deck {
		deck[i] = uint8(i)
	}

	// Fisher-Yates from the top down.
	for i := 51; i > 0; i-- {
		j := s.RNG.Range(0, i)
		deck[i], deck[j] = deck[j], deck[i]
	}

	k := 0
	for p := 0; p < Players; p++ {
		for slot := 0; slot < HandSize; slot++ {
			v := deck[k]
			k++
			s.Hands[p][slot] = Card{Suit: Suit(v / 13), Rank: 2 + v%13}
		}
	}
}
