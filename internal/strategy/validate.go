package strategy

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Report summarises a validation pass over a strategy file.
type Report struct {
	FileSize      int64
	Records       int
	ActionDist    [MaxActions + 1]int
	SumWarnings   int
	CountWarnings int
}

// Hooks receives per-record findings during validation. Any field may be nil.
type Hooks struct {
	// BadSum is called for records whose probabilities do not sum to 1
	// within 1%.
	BadSum func(record int, sum float32)
	// BadActionCount is called for records whose action count exceeds
	// MaxActions. The scan continues; only a misaligned file size is fatal.
	BadActionCount func(record int, count uint8)
	// Each is called after the checks for every record whose action count
	// fits MaxActions; records with an oversized count are not passed to it.
	Each func(record int, r *Record)
}

// Validate streams a strategy file and checks its structure. A file size that
// is not record-aligned is fatal; oversized action counts and out-of-tolerance
// probability sums are counted, reported through hooks, and the scan moves on.
func Validate(path string, hooks Hooks) (Report, error) {
	var rep Report

	st, err := os.Stat(path)
	if err != nil {
		return rep, fmt.Errorf("stat %s: %w", path, err)
	}
	rep.FileSize = st.Size()
	if rep.FileSize%RecordSize != 0 {
		return rep, fmt.Errorf("%s: size %d is not a multiple of record size %d (remainder %d)",
			path, rep.FileSize, RecordSize, rep.FileSize%RecordSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return rep, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 1<<20)
	var buf [RecordSize]byte
	var rec Record

	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if err == io.EOF {
				break
			}
			return rep, fmt.Errorf("read %s: %w", path, err)
		}
		rec.Unmarshal(buf[:])
		rep.Records++

		if rec.ActionCount > MaxActions {
			rep.CountWarnings++
			if hooks.BadActionCount != nil {
				hooks.BadActionCount(rep.Records, rec.ActionCount)
			}
			// The action and strategy arrays cannot be trusted past the
			// capacity; skip the per-record checks.
			continue
		}
		rep.ActionDist[rec.ActionCount]++

		var sum float32
		for i := uint8(0); i < rec.ActionCount; i++ {
			sum += rec.Strategy[i]
		}
		if sum < 0.99 || sum > 1.01 {
			rep.SumWarnings++
			if hooks.BadSum != nil {
				hooks.BadSum(rep.Records, sum)
			}
		}
		if hooks.Each != nil {
			hooks.Each(rep.Records, &rec)
		}
	}
	return rep, nil
}
