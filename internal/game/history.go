package game

// HistoryTag classifies how a card was played, for the state abstraction.
// The upper nibble holds exactly one context flag; the lower nibble is the
// five-way rank bucket (HistBucket).
type HistoryTag uint8

// Play contexts.
const (
	CtxLedTrump   HistoryTag = 0x80
	CtxRespTrump  HistoryTag = 0x40
	CtxLedOther   HistoryTag = 0x20
	CtxRespOther  HistoryTag = 0x10
	ctxMask       HistoryTag = 0xf0
	histBucketMax HistoryTag = 0x0f
)

// Tag builds the history tag for a card played in the given context.
func Tag(ctx HistoryTag, c Card) HistoryTag {
	return (ctx & ctxMask) | HistoryTag(c.Bucket())
}

// Context returns the context flag portion of the tag.
func (t HistoryTag) Context() HistoryTag {
	return t & ctxMask
}

// Bucket returns the rank bucket portion of the tag.
func (t HistoryTag) Bucket() HistBucket {
	return HistBucket(t & histBucketMax)
}
