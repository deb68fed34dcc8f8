package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{90, "90"},
		{90.5, "90.5"},
		{0.33, "0.33"},
		{28.004, "28"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.in), "%v", tt.in)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0m"},
		{-5, "0m"},
		{0.33, "0m"},
		{0.5, "1m"},
		{45, "45m"},
		{60, "1h"},
		{90.5, "1h 31m"},
		{125, "2h 5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in), "%v", tt.in)
	}
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatElapsed(0))
	assert.Equal(t, "00:00:00", FormatElapsed(-time.Minute))
	assert.Equal(t, "00:01:05", FormatElapsed(65*time.Second))
	assert.Equal(t, "26:03:09", FormatElapsed(26*time.Hour+3*time.Minute+9*time.Second+400*time.Millisecond))
}

func TestSinceFrom(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)

	assert.Equal(t, "just now", SinceFrom(now.Add(-20*time.Second), now))
	assert.Equal(t, "1h 30m ago", SinceFrom(now.Add(-90*time.Minute), now))
	assert.Equal(t, "in the future", SinceFrom(now.Add(time.Hour), now))
}

func TestRenderBox_TitleUppercased(t *testing.T) {
	got := stripANSI(RenderBox("report", "body line"))
	assert.Contains(t, got, "REPORT")
	assert.Contains(t, got, "body line")
	assert.True(t, strings.HasPrefix(got, "╭"))
}

func TestRenderShare(t *testing.T) {
	tests := []struct {
		name        string
		part, total float64
		filled      int
		pct         string
	}{
		{"half", 50, 100, 5, " 50%"},
		{"all", 100, 100, 10, "100%"},
		{"zero total", 10, 0, 0, "  0%"},
		{"over clamps", 150, 100, 10, "100%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderShare(tt.part, tt.total, 10))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.Equal(t, 10-tt.filled, strings.Count(got, emptyBlock))
			assert.True(t, strings.HasSuffix(got, tt.pct), got)
		})
	}
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	got := stripANSI(RenderTable(
		[]string{"USER", "MIN"},
		[][]string{{"ada", "90"}, {"grace", "5"}},
	))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Equal(t, []string{
		"USER   MIN",
		"─────  ───",
		"ada    90",
		"grace  5",
	}, lines)
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
