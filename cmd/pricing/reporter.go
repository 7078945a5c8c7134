package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/pricingexcellence/pricing/internal/models"
)

const (
	formatTable    = "table"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

// checkFormat rejects formats a command does not support.
func checkFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("unsupported format %q (allowed: %s)", format, strings.Join(allowed, ", "))
}

// outputFormat returns the --format flag value, falling back to the
// configured default when the command supports it and to fallback otherwise.
func (a *app) outputFormat(flag string, fallback string, allowed ...string) (string, error) {
	format := flag
	if format == "" {
		format = fallback
		if slices.Contains(allowed, a.cfg.Output.Format) {
			format = a.cfg.Output.Format
		}
	}
	return format, checkFormat(format, allowed...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table renders aligned columns. Widths are measured in terminal cells so
// wide runes line up.
type table struct {
	header []string
	rows   [][]string
	// style colors a cell after padding; nil leaves it plain.
	style func(row, col int, cell string) *color.Color
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(w io.Writer) {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range t.rows {
		for i, c := range r {
			if cw := runewidth.StringWidth(c); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	bold := color.New(color.Bold)
	line := make([]string, len(t.header))
	for i, h := range t.header {
		line[i] = bold.Sprint(padRight(h, widths[i]))
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(line, "  "), " ")) //nolint:errcheck

	for ri, r := range t.rows {
		for i := range t.header {
			cell := ""
			if i < len(r) {
				cell = r[i]
			}
			padded := padRight(cell, widths[i])
			if i == len(t.header)-1 {
				padded = cell
			}
			if t.style != nil {
				if c := t.style(ri, i, cell); c != nil {
					padded = c.Sprint(padded)
				}
			}
			line[i] = padded
		}
		fmt.Fprintln(w, strings.Join(line, "  ")) //nolint:errcheck
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// truncate shortens s to at most width display cells, marking the cut.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func levelColor(l models.Level) *color.Color {
	switch l {
	case models.LevelLow:
		return color.New(color.FgGreen)
	case models.LevelMedium:
		return color.New(color.FgYellow)
	case models.LevelHigh:
		return color.New(color.FgRed)
	}
	return nil
}

func confidenceColor(c int) *color.Color {
	switch {
	case c >= 85:
		return color.New(color.FgGreen)
	case c >= 75:
		return color.New(color.FgYellow)
	}
	return color.New(color.FgHiBlack)
}

// flagName turns a camelCase field name into a kebab-case flag name.
func flagName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
