// Package merge combines per-shard strategy files into one sorted,
// deduplicated policy file. Phase 1 sorts each input in memory; phase 2
// streams a simultaneous k-way merge, averaging the strategy vectors of
// duplicate (key, action-set) groups as they pass.
package merge

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/lox/cutthroat/internal/strategy"
)

// Stats summarises a completed merge.
type Stats struct {
	InputRecords  int64
	OutputRecords int64
	Collapsed     int64
}

// Files sorts every input file in place, then merges them into output.
// minVisits is accepted for future visit-count pruning and currently ignored.
func Files(output string, minVisits int, inputs []string, log zerolog.Logger) (Stats, error) {
	var stats Stats
	_ = minVisits // reserved

	log.Info().Int("files", len(inputs)).Msg("phase 1: sorting input files")
	for _, path := range inputs {
		n, err := sortFile(path)
		if err != nil {
			return stats, err
		}
		log.Info().Str("path", path).Int("records", n).Msg("sorted")
	}

	log.Info().Str("output", output).Msg("phase 2: k-way merge")
	if err := mergeSorted(output, inputs, &stats); err != nil {
		return stats, err
	}
	stats.Collapsed = stats.InputRecords - stats.OutputRecords

	log.Info().
		Int64("input_records", stats.InputRecords).
		Int64("output_records", stats.OutputRecords).
		Int64("collapsed", stats.Collapsed).
		Msg("merge complete")
	return stats, nil
}

// sortFile loads one whole shard file, sorts it by the record total order,
// and writes it back atomically. One file is resident at a time; shard files
// are assumed to fit in memory.
func sortFile(path string) (int, error) {
	records, err := strategy.Load(path)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	sort.Slice(records, func(i, j int) bool {
		return strategy.Compare(&records[i], &records[j]) < 0
	})

	buf := make([]byte, len(records)*strategy.RecordSize)
	for i := range records {
		records[i].Marshal(buf[i*strategy.RecordSize:])
	}
	if err := writeSortedShard(path, buf); err != nil {
		return 0, err
	}
	return len(records), nil
}

// writeSortedShard replaces a shard file with its sorted record buffer. The
// bytes land in a sibling temp file and take the shard's place by rename, so
// an interrupted write-back leaves the unsorted original intact instead of a
// truncated shard that phase 2 would misread.
func writeSortedShard(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sort-*")
	if err != nil {
		return fmt.Errorf("sort %s: %w", path, err)
	}
	name := tmp.Name()

	_, werr := tmp.Write(data)
	if werr == nil {
		werr = tmp.Sync()
	}
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(name, 0o644)
	}
	if werr == nil {
		werr = os.Rename(name, path)
	}
	if werr != nil {
		os.Remove(name)
		return fmt.Errorf("sort %s: %w", path, werr)
	}
	return nil
}

// stream is one open input during the merge, holding its current head record.
type stream struct {
	r         *bufio.Reader
	current   strategy.Record
	exhausted bool
}

// advance reads the stream's next record, marking it exhausted at EOF.
func (s *stream) advance() error {
	var buf [strategy.RecordSize]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		if err == io.EOF {
			s.exhausted = true
			return nil
		}
		return err
	}
	s.current.Unmarshal(buf[:])
	return nil
}

// findMin returns the live stream with the least head record, or -1.
func findMin(streams []stream) int {
	min := -1
	for i := range streams {
		if streams[i].exhausted {
			continue
		}
		if min == -1 || strategy.Compare(&streams[i].current, &streams[min].current) < 0 {
			min = i
		}
	}
	return min
}

// group accumulates duplicate records so they can be averaged on flush.
type group struct {
	rec   strategy.Record
	sums  [strategy.MaxActions]float64
	count int
}

func (g *group) start(r *strategy.Record) {
	g.rec = *r
	g.sums = [strategy.MaxActions]float64{}
	for i := uint8(0); i < r.ActionCount; i++ {
		g.sums[i] = float64(r.Strategy[i])
	}
	g.count = 1
}

func (g *group) add(r *strategy.Record) {
	for i := uint8(0); i < r.ActionCount; i++ {
		g.sums[i] += float64(r.Strategy[i])
	}
	g.count++
}

// flush writes the group's arithmetic mean. Visit counts are not persisted in
// the record, so occurrences weigh equally.
func (g *group) flush(w io.Writer, scratch []byte) error {
	for i := uint8(0); i < g.rec.ActionCount; i++ {
		g.rec.Strategy[i] = float32(g.sums[i] / float64(g.count))
	}
	g.rec.Marshal(scratch)
	_, err := w.Write(scratch)
	return err
}

// mergeSorted opens all sorted inputs and streams the merge into output.
func mergeSorted(output string, inputs []string, stats *Stats) error {
	files := make([]*os.File, 0, len(inputs))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	streams := make([]stream, len(inputs))
	for i, path := range inputs {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		files = append(files, f)
		streams[i].r = bufio.NewReaderSize(f, 1<<20)
		if err := streams[i].advance(); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer out.Close()
	w := bufio.NewWriterSize(out, 1<<20)

	var g group
	scratch := make([]byte, strategy.RecordSize)

	for {
		idx := findMin(streams)
		if idx == -1 {
			break
		}
		cur := &streams[idx].current
		stats.InputRecords++

		switch {
		case g.count == 0:
			g.start(cur)
		case strategy.SameGroup(&g.rec, cur):
			g.add(cur)
		default:
			if err := g.flush(w, scratch); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			stats.OutputRecords++
			g.start(cur)
		}

		if err := streams[idx].advance(); err != nil {
			return fmt.Errorf("read %s: %w", inputs[idx], err)
		}
	}

	if g.count > 0 {
		if err := g.flush(w, scratch); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		stats.OutputRecords++
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", output, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", output, err)
	}
	return nil
}
