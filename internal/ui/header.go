package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bloom/internal/diary"
)

// renderHeader renders the status bar: logo, greeting, selected day and the
// in-flight indicator.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("bloom", styles.Logo)}

	if name := strings.TrimSpace(m.snapshot.User.Nickname); name != "" && !compact {
		parts = append(parts, bg.Render("Hi, "+truncate(name, 24), styles.Text))
	}

	parts = append(parts, m.formatDay(styles, bg, compact))

	if m.inFlight > 0 {
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(bg.Join(parts, "  ")))
}

// formatDay renders the selected date with a marker for today.
func (m Model) formatDay(styles Styles, bg BgStyle, compact bool) string {
	if m.snapshot.Date.IsZero() {
		return ""
	}
	layout := "Mon, Jan 2 2006"
	if compact {
		layout = "Mon Jan 2"
	}
	day := bg.Render(m.snapshot.Date.Format(layout), styles.AccentText)
	if m.snapshot.Today {
		day += bg.Space() + bg.Render("(today)", styles.SuccessText)
	}
	return day
}

// renderCommandBar renders the command hints for the current mode.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.mode {
	case modeQuestion:
		commands = []cmd{
			{"ctrl+s", "Save"},
			{"esc", "Close"},
		}
	case modeTask:
		commands = []cmd{
			{"tab", "Field"},
			{"ctrl+s", "Save"},
			{"esc", "Close"},
		}
	default:
		commands = []cmd{
			{"[/]", "Day"},
			{"t", "Today"},
			{"a", "Answer"},
			{"n", "New"},
			{"enter", "Edit"},
			{"d", "Delete"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, sep))
}

// renderFooter shows the current notice, or the last refresh time.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	n, ok := m.toasts.current()
	if !ok {
		var status string
		if !m.lastUpdated.IsZero() {
			status = bg.Render("updated "+m.lastUpdated.Format("15:04:05"), styles.FaintText)
		}
		return styles.Footer.Width(m.width).Render(status)
	}

	titleStyle := styles.InfoText.Bold(true)
	if n.Kind == diary.NoticeError {
		titleStyle = styles.DangerText
	}
	line := bg.Render(n.Title, titleStyle)
	if detail := firstLine(n.Detail); detail != "" {
		limit := m.width - len([]rune(n.Title)) - 12
		line += bg.Spaces(2) + bg.Render(truncate(detail, limit), styles.MutedText)
	}
	if more := m.toasts.len() - 1; more > 0 {
		line += bg.Spaces(2) + bg.Render(fmt.Sprintf("+%d", more), styles.FaintText)
	}
	return styles.Footer.Width(m.width).Render(line)
}
