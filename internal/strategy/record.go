// Package strategy defines the fixed-size on-disk policy record, the total
// order the merge tool sorts by, and the query path used at play time.
package strategy

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/lox/cutthroat/internal/abstraction"
	"github.com/lox/cutthroat/internal/game"
)

// MaxActions is the record's fixed action capacity.
const MaxActions = 8

// RecordSize is the packed record width: 15-byte key, one-byte action count,
// eight action bytes, eight little-endian float32 probabilities.
const RecordSize = abstraction.KeySize + 1 + MaxActions + MaxActions*4

// Record is one information set's average strategy. Unused action and
// strategy slots are zero.
type Record struct {
	Key         abstraction.Key
	ActionCount uint8
	Actions     [MaxActions]game.Action
	Strategy    [MaxActions]float32
}

// Marshal packs the record into buf, which must hold RecordSize bytes.
func (r *Record) Marshal(buf []byte) {
	_ = buf[RecordSize-1]
	copy(buf[:abstraction.KeySize], r.Key[:])
	buf[abstraction.KeySize] = r.ActionCount
	off := abstraction.KeySize + 1
	for i := 0; i < MaxActions; i++ {
		buf[off+i] = byte(r.Actions[i])
	}
	off += MaxActions
	for i := 0; i < MaxActions; i++ {
		binary.LittleEndian.PutUint32(buf[off+i*4:], math.Float32bits(r.Strategy[i]))
	}
}

// Unmarshal unpacks a record from buf, which must hold RecordSize bytes.
func (r *Record) Unmarshal(buf []byte) {
	_ = buf[RecordSize-1]
	copy(r.Key[:], buf[:abstraction.KeySize])
	r.ActionCount = buf[abstraction.KeySize]
	off := abstraction.KeySize + 1
	for i := 0; i < MaxActions; i++ {
		r.Actions[i] = game.Action(buf[off+i])
	}
	off += MaxActions
	for i := 0; i < MaxActions; i++ {
		r.Strategy[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[off+i*4:]))
	}
}

// Compare orders records by key bytes, then action count, then action bytes.
// This is the total order the merged file is sorted by.
func Compare(a, b *Record) int {
	if c := bytes.Compare(a.Key[:], b.Key[:]); c != 0 {
		return c
	}
	if a.ActionCount != b.ActionCount {
		return int(a.ActionCount) - int(b.ActionCount)
	}
	n := a.ActionCount
	for i := uint8(0); i < n; i++ {
		if a.Actions[i] != b.Actions[i] {
			return int(a.Actions[i]) - int(b.Actions[i])
		}
	}
	return 0
}

// SameGroup reports whether two records belong to one merge group:
// identical key, action count, and action array.
func SameGroup(a, b *Record) bool {
	return a.Key == b.Key && a.ActionCount == b.ActionCount && a.Actions == b.Actions
}
