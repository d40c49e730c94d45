package game

import "github.com/lox/cutthroat/internal/randutil"

// Game constants.
const (
	HandSize = 6
	Players  = 2

	// MaxActions bounds the legal-action list at any decision point: with
	// trump declared there are four trump classes and four non-trump
	// classes, and a six-card hand holds at most six of them.
	MaxActions = 8
)

// Stage is the phase of a hand.
type Stage uint8

const (
	StageBid Stage = iota
	StagePlay
)

func (s Stage) String() string {
	if s == StageBid {
		return "BID"
	}
	return "PLAY"
}

// Hand is a fixed block of card slots, filled low-index-first; empty slots
// are always a suffix.
type Hand [HandSize]Card

// Count returns the number of occupied slots.
func (h *Hand) Count() int {
	for i, c := range h {
		if c.IsEmpty() {
			return i
		}
	}
	return HandSize
}

// State is the canonical game state for one hand. It is a plain value:
// the CFR recursion copies it by assignment before applying each action.
type State struct {
	RNG randutil.LCG

	Dealer uint8

	// Bidding.
	Bid           [Players]uint8
	BidForced     bool
	BidStolen     bool
	WinningBidder uint8
	WinningBid    uint8

	// Play.
	Stage    Stage
	Trump    Suit
	Leader   uint8
	ToAct    uint8
	TrickNum uint8
	LedSuit  Suit
	HandDone bool

	Hands  [Players]Hand
	Played [Players]Hand

	HistTags [Players][HandSize]HistoryTag

	TrickWinner [HandSize]uint8
	TricksWon   [Players]uint8

	Score      [Players]CategoryScore
	TotalScore [Players]int8
}

// NewHand seeds the deterministic stream, draws the dealer, and deals six
// cards to each player. The non-dealer bids first.
func NewHand(seed uint32) State {
	s := State{RNG: randutil.NewLCG(seed)}
	s.Dealer = uint8(s.RNG.Range(0, 1))
	s.Stage = StageBid
	s.ToAct = 1 - s.Dealer
	s.deal()
	return s
}

// LegalActions appends the legal actions for the player to act onto buf.
func (s *State) LegalActions(buf []Action) []Action {
	if s.Stage == StageBid {
		return s.LegalBids(buf)
	}
	return s.LegalPlays(buf)
}

// Apply advances the state by one action, binding a concrete card for play
// actions.
func (s *State) Apply(a Action) {
	if s.Stage == StageBid {
		s.ApplyBid(a)
		return
	}
	s.ApplyPlay(s.BindCardIndex(a))
}
