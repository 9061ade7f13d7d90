package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders bar segments on a solid background. Styling each word and
// each gap separately keeps the color unbroken between segments.
type BgStyle struct {
	fill lipgloss.Style
}

// NewBgStyle creates a helper for the given background color.
func NewBgStyle(bgColor string) BgStyle {
	return BgStyle{fill: lipgloss.NewStyle().Background(lipgloss.Color(bgColor))}
}

// Render applies style to every word of text and joins the words with
// background-filled spaces.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Inherit(b.fill)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = wordStyle.Render(w)
		}
	}
	return strings.Join(words, b.Space())
}

// Space returns a single filled space.
func (b BgStyle) Space() string {
	return b.fill.Render(" ")
}

// Spaces returns n filled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return b.fill.Render(strings.Repeat(" ", n))
}

// Sep returns a filled separator string.
func (b BgStyle) Sep(sep string) string {
	return b.fill.Render(sep)
}

// Join joins parts with a filled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, b.Sep(sep))
}
