package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lox/cutthroat/internal/display"
	"github.com/lox/cutthroat/internal/strategy"
)

// ValidateCmd checks a strategy file's structure and optionally dumps every
// record whose action count fits the record capacity.
type ValidateCmd struct {
	File       string `arg:"" help:"strategy file to validate" type:"existingfile"`
	PrintNodes bool   `help:"dump every record with a valid action count" short:"p"`
}

func (cmd *ValidateCmd) Run(_ context.Context) error {
	hooks := strategy.Hooks{
		BadSum: func(record int, sum float32) {
			fmt.Fprintln(os.Stdout, display.Warn(
				fmt.Sprintf("record %d: strategy sums to %.4f", record, sum)))
		},
		BadActionCount: func(record int, count uint8) {
			fmt.Fprintln(os.Stdout, display.Warn(
				fmt.Sprintf("record %d: action count %d exceeds %d", record, count, strategy.MaxActions)))
		},
	}
	if cmd.PrintNodes {
		hooks.Each = func(n int, r *strategy.Record) {
			fmt.Fprintf(os.Stdout, "%6d %s\n", n, display.Dim(r.Describe()))
		}
	}

	rep, err := strategy.Validate(cmd.File, hooks)
	if err != nil {
		return err
	}

	lines := []string{
		display.Title("Strategy file validation"),
		display.Row("File", cmd.File),
		display.Row("Size", fmt.Sprintf("%d bytes", rep.FileSize)),
		display.Row("Record size", fmt.Sprintf("%d bytes", strategy.RecordSize)),
		display.Row("Records", rep.Records),
	}
	for count, n := range rep.ActionDist {
		if n == 0 {
			continue
		}
		pct := 100 * float64(n) / float64(rep.Records)
		lines = append(lines, display.Row(
			fmt.Sprintf("  %d actions", count),
			fmt.Sprintf("%d records (%.2f%%)", n, pct)))
	}
	if rep.CountWarnings > 0 {
		lines = append(lines, display.Warn(
			fmt.Sprintf("%d records with oversized action counts", rep.CountWarnings)))
	}
	if rep.SumWarnings > 0 {
		lines = append(lines, display.Warn(
			fmt.Sprintf("%d records with out-of-tolerance probability sums", rep.SumWarnings)))
	}
	if rep.CountWarnings == 0 && rep.SumWarnings == 0 {
		lines = append(lines, display.OK("file is valid"))
	}

	fmt.Fprintln(os.Stdout, display.Report(lines...))
	return nil
}
