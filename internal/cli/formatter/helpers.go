package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Number prints a stored minute or hour value the way it is kept in the
// log: no trailing zeros, at most two decimals.
func Number(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// FormatMinutes converts minutes into a short human form such as "1h 30m".
// Fractions are rounded to the nearest whole minute.
func FormatMinutes(minutes float64) string {
	min := int(math.Round(minutes))
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatElapsed renders a running duration as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// SinceFrom describes how long ago a timestamp was, relative to now.
func SinceFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return "in the future"
	case diff < time.Minute:
		return "just now"
	default:
		return FormatMinutes(diff.Minutes()) + " ago"
	}
}
