package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Seed 42 fixture produced by the reference deal: LCG draw for the dealer,
// Fisher-Yates over 52 cards, six cards each from the shuffled prefix.
func TestNewHandSeed42(t *testing.T) {
	s := NewHand(42)

	require.Equal(t, uint8(1), s.Dealer)
	require.Equal(t, uint8(0), s.ToAct, "non-dealer bids first")
	require.Equal(t, StageBid, s.Stage)

	p0 := Hand{
		{Hearts, 9}, {Hearts, 8}, {Clubs, 5}, {Diamonds, 2}, {Clubs, 7}, {Hearts, 13},
	}
	p1 := Hand{
		{Diamonds, 8}, {Diamonds, 3}, {Diamonds, 5}, {Diamonds, 6}, {Spades, 12}, {Spades, 5},
	}
	require.Equal(t, p0, s.Hands[0])
	require.Equal(t, p1, s.Hands[1])
}

func TestNewHandDeterministic(t *testing.T) {
	a := NewHand(7)
	b := NewHand(7)
	require.Equal(t, a, b)
}

func TestNewHandDealsTwelveDistinctCards(t *testing.T) {
	for seed := uint32(1); seed <= 50; seed++ {
		s := NewHand(seed)
		seen := map[Card]bool{}
		for p := 0; p < Players; p++ {
			require.Equal(t, HandSize, s.Hands[p].Count())
			for _, c := range s.Hands[p] {
				require.GreaterOrEqual(t, c.Rank, uint8(2))
				require.LessOrEqual(t, c.Rank, uint8(14))
				require.LessOrEqual(t, c.Suit, Spades)
				require.False(t, seen[c], "duplicate card %s at seed %d", c, seed)
				seen[c] = true
			}
		}
	}
}

func TestHandCount(t *testing.T) {
	var h Hand
	require.Equal(t, 0, h.Count())
	h[0] = Card{Hearts, 14}
	require.Equal(t, 1, h.Count())
	for i := range h {
		h[i] = Card{Clubs, uint8(2 + i)}
	}
	require.Equal(t, HandSize, h.Count())
}
