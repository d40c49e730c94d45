package strategy

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/cutthroat/internal/abstraction"
	"github.com/lox/cutthroat/internal/game"
)

func sampleRecord() Record {
	r := Record{
		Key:         abstraction.Key{0x81, 0x3f, 0x40},
		ActionCount: 2,
	}
	r.Actions[0] = game.TrumpHigh
	r.Actions[1] = game.OtherLow
	r.Strategy[0] = 0.7
	r.Strategy[1] = 0.3
	return r
}

func TestRecordSizeIsPacked(t *testing.T) {
	require.Equal(t, 56, RecordSize)
}

func TestMarshalLayout(t *testing.T) {
	r := sampleRecord()
	buf := make([]byte, RecordSize)
	r.Marshal(buf)

	require.Equal(t, r.Key[:], buf[:15])
	require.Equal(t, byte(2), buf[15])
	require.Equal(t, byte(game.TrumpHigh), buf[16])
	require.Equal(t, byte(game.OtherLow), buf[17])
	for i := 18; i < 24; i++ {
		require.Equal(t, byte(0), buf[i], "unused action slots stay zero")
	}
	require.Equal(t, float32(0.7), math.Float32frombits(binary.LittleEndian.Uint32(buf[24:])))
	require.Equal(t, float32(0.3), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:])))
}

func TestMarshalRoundTrip(t *testing.T) {
	r := sampleRecord()
	buf := make([]byte, RecordSize)
	r.Marshal(buf)

	var got Record
	got.Unmarshal(buf)
	require.Equal(t, r, got)
}

func TestCompareTotalOrder(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	require.Zero(t, Compare(&a, &b))

	b.Key[14] = 1
	require.Negative(t, Compare(&a, &b))
	require.Positive(t, Compare(&b, &a))

	b = sampleRecord()
	b.ActionCount = 3
	require.Negative(t, Compare(&a, &b), "fewer actions sorts first on equal keys")

	b = sampleRecord()
	b.Actions[1] = game.OtherMedium
	require.Negative(t, Compare(&a, &b), "action bytes break the final tie")
}

func TestSameGroup(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	b.Strategy[0] = 0.5
	b.Strategy[1] = 0.5
	require.True(t, SameGroup(&a, &b), "strategies do not affect group identity")

	b.Actions[1] = game.OtherMedium
	require.False(t, SameGroup(&a, &b))
}
