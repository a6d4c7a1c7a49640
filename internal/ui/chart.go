// Package ui holds lipgloss styles and plain renderers shared by the TUI and
// the one-shot CLI output.
package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwulff/cineai/internal/predict"
)

const (
	labelWidth    = 18
	valueWidth    = 7
	minBarWidth   = 10
	chartMaxValue = 100.0
)

// RenderBarChart draws one horizontal bar per datum on a 0-100 scale.
func RenderBarChart(data []predict.ChartDatum, width int) string {
	if len(data) == 0 {
		return ""
	}
	barWidth := max(minBarWidth, width-labelWidth-valueWidth-2)

	lines := make([]string, 0, len(data))
	for _, d := range data {
		lines = append(lines, PadRight(Truncate(d.Label, labelWidth), labelWidth)+" "+
			BarStyle(d.ColorIndex).Render(bar(d.Value, barWidth))+" "+
			DimStyle.Render(FormatPercent(d.Value)))
	}
	return strings.Join(lines, "\n")
}

// FormatPercent renders a 0-100 value as "%91.4".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%%%.1f", v)
}

func bar(value float64, width int) string {
	v := math.Max(0, math.Min(value, chartMaxValue))
	filled := int(math.Round(v / chartMaxValue * float64(width)))
	if filled == 0 && v > 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat(" ", width-filled)
}

// PadRight pads s with spaces to the given visible width.
func PadRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// Truncate shortens plain text to the given visible width with an ellipsis.
func Truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Wrap breaks text into lines no wider than width.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if lipgloss.Width(current)+1+lipgloss.Width(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
