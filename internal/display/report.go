// Package display renders CLI reports for the validator and evaluator.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(22)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Title renders a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Row renders an aligned label/value line.
func Row(label string, value any) string {
	return labelStyle.Render(label) + valueStyle.Render(fmt.Sprint(value))
}

// Warn renders a warning line.
func Warn(s string) string {
	return warnStyle.Render(s)
}

// OK renders a success line.
func OK(s string) string {
	return okStyle.Render(s)
}

// Dim renders secondary detail such as per-record dumps.
func Dim(s string) string {
	return dimStyle.Render(s)
}

// Report joins rendered lines into one block.
func Report(lines ...string) string {
	return strings.Join(lines, "\n")
}
