package strategy

import (
	"fmt"
	"strings"
)

// Describe renders the record for dumps: key hex, then one action=probability
// pair per legal action.
func (r *Record) Describe() string {
	var b strings.Builder
	b.WriteString("key=")
	for _, by := range r.Key {
		fmt.Fprintf(&b, "%02x", by)
	}
	fmt.Fprintf(&b, " actions=%d", r.ActionCount)
	for i := uint8(0); i < r.ActionCount; i++ {
		fmt.Fprintf(&b, " %s=%.4f", r.Actions[i], r.Strategy[i])
	}
	return b.String()
}

// KeyHex renders just the key bytes.
func (r *Record) KeyHex() string {
	var b strings.Builder
	for _, by := range r.Key {
		fmt.Fprintf(&b, "%02x", by)
	}
	return b.String()
}
