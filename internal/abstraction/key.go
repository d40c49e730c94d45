// Package abstraction compresses a game state into the fixed 15-byte
// information-set key shared by the trainer, merger, and player.
//
// Layout (bit 7 is the MSB):
//
//	byte 0: dealer:1 | bid0:2 | bid1:2 | bid_forced:1 | bid_stolen:1 | winning_bidder:1
//	byte 1: winning_bid:2 | trump:3 | leader:1 | to_act:1 | stage:1
//	byte 2: trick_num:3 | led_suit:2 | unused:3
//	byte 3: LTH:2 | RTH:2 | LTJ:1 | RTJ:1 | LT10:1 | RT10:1
//	byte 4: LTM:3 | RTM:3 | LTL:2
//	byte 5: RTL:2 | TL:2 | OL:2 | spare:2      (TL/OL are in-hand counters)
//	byte 6: LOH:4 | LOJ:2 | LO10:2
//	byte 7: LOM:4 | LOL:4
//	byte 8: ROH:4 | ROJ:2 | RO10:2
//	byte 9: ROM:4 | ROL:4
//	byte 10: TH:2 | TJ:1 | T10:1 | TM:4        (in-hand trump)
//	byte 11: OH:2 | OJ:1 | O10:1 | OM:4        (in-hand other)
//	bytes 12-14: reserved, zero
//
// All counters saturate at their field maximum. The abstraction is lossy but
// stable: states that agree on the public header and on the acting player's
// hand and play-history histograms share a key.
package abstraction

import "github.com/lox/cutthroat/internal/game"

// KeySize is the packed key width in bytes.
const KeySize = 15

// Key is the immutable information-set key. Equality is byte-wise.
type Key [KeySize]byte

// field identifies a saturating counter within the key.
type field struct {
	byteIdx int
	shift   uint
	width   uint
}

// incr bumps the counter, clamping at the field maximum so an overflow never
// bleeds into a neighbouring field.
func (f field) incr(k *Key) {
	max := byte(1<<f.width - 1)
	cur := (k[f.byteIdx] >> f.shift) & max
	if cur == max {
		return
	}
	k[f.byteIdx] &^= max << f.shift
	k[f.byteIdx] |= (cur + 1) << f.shift
}

// History counter fields, indexed by [context][bucket-1] where context order
// is LT, RT, LO, RO and bucket order is H, J, 10, M, L.
var histFields = [4][5]field{
	{ // led trump
		{3, 6, 2}, {3, 3, 1}, {3, 1, 1}, {4, 5, 3}, {4, 0, 2},
	},
	{ // response trump
		{3, 4, 2}, {3, 2, 1}, {3, 0, 1}, {4, 2, 3}, {5, 6, 2},
	},
	{ // led other
		{6, 4, 4}, {6, 2, 2}, {6, 0, 2}, {7, 4, 4}, {7, 0, 4},
	},
	{ // response other
		{8, 4, 4}, {8, 2, 2}, {8, 0, 2}, {9, 4, 4}, {9, 0, 4},
	},
}

// In-hand counter fields, indexed by [row][bucket-1] where row 0 is trump
// and row 1 is other.
var handFields = [2][5]field{
	{ // trump
		{10, 6, 2}, {10, 5, 1}, {10, 4, 1}, {10, 0, 4}, {5, 4, 2},
	},
	{ // other
		{11, 6, 2}, {11, 5, 1}, {11, 4, 1}, {11, 0, 4}, {5, 2, 2},
	},
}

// BuildKey packs the state as seen by the player to act.
func BuildKey(s *game.State) Key {
	var k Key

	k[0] |= (s.Dealer & 0x01) << 7
	k[0] |= (s.Bid[0] & 0x03) << 5
	k[0] |= (s.Bid[1] & 0x03) << 3
	k[0] |= b2b(s.BidForced) << 2
	k[0] |= b2b(s.BidStolen) << 1
	k[0] |= s.WinningBidder & 0x01

	k[1] |= (s.WinningBid & 0x03) << 6
	k[1] |= (byte(s.Trump) & 0x07) << 3 // PRE_TRUMP packs as 7
	k[1] |= (s.Leader & 0x01) << 2
	k[1] |= (s.ToAct & 0x01) << 1
	k[1] |= byte(s.Stage) & 0x01

	k[2] |= (s.TrickNum & 0x07) << 5
	k[2] |= (byte(s.LedSuit) & 0x03) << 3

	packHistory(s, &k)
	packHand(s, &k)

	return k
}

// packHistory counts the acting player's played cards by (context, bucket).
func packHistory(s *game.State, k *Key) {
	p := s.ToAct
	for i := 0; i < game.HandSize; i++ {
		if s.Played[p][i].IsEmpty() {
			break // plays fill from trick 0; first empty slot ends the history
		}
		tag := s.HistTags[p][i]

		var ctx int
		switch tag.Context() {
		case game.CtxLedTrump:
			ctx = 0
		case game.CtxRespTrump:
			ctx = 1
		case game.CtxLedOther:
			ctx = 2
		case game.CtxRespOther:
			ctx = 3
		default:
			panic("abstraction: history tag has no context flag")
		}

		bucket := int(tag.Bucket())
		if bucket < 1 || bucket > 5 {
			panic("abstraction: history tag has no rank bucket")
		}
		histFields[ctx][bucket-1].incr(k)
	}
}

// packHand counts the cards remaining in the acting player's hand. Any card
// whose suit differs from the trump field counts as Other, which folds the
// pre-trump sentinel into the Other rows.
func packHand(s *game.State, k *Key) {
	p := s.ToAct
	for i := 0; i < game.HandSize; i++ {
		c := s.Hands[p][i]
		if c.IsEmpty() {
			break
		}
		row := 1 // other
		if c.Suit == s.Trump {
			row = 0
		}
		handFields[row][int(c.Bucket())-1].incr(k)
	}
}

func b2b(v bool) byte {
	if v {
		return 1
	}
	return 0
}
