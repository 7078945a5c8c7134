package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadRight(t *testing.T) {
	assert.Equal(t, "abc   ", padRight("abc", 6))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
	// CJK runes occupy two cells.
	assert.Equal(t, "価格  ", padRight("価格", 6))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	got := truncate("a rather long rationale", 10)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), 10)
}

func TestTableAlignment(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	tb := &table{header: []string{"ID", "TITLE"}}
	tb.add("outcome-based", "Outcome-Based Pricing")
	tb.add("t&m", "Time & Materials")
	tb.write(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID             TITLE", lines[0])
	assert.Equal(t, "outcome-based  Outcome-Based Pricing", lines[1])
	assert.Equal(t, "t&m            Time & Materials", lines[2])
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "outcome-measurability", flagName("outcomeMeasurability"))
	assert.Equal(t, "timeline", flagName("timeline"))
	assert.Equal(t, "client-risk-tolerance", flagName("clientRiskTolerance"))
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("json", formatTable, formatJSON))
	assert.ErrorContains(t, checkFormat("xml", formatTable, formatJSON), `unsupported format "xml" (allowed: table, json)`)
}
