package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chrome is the number of lines used by header, command bar and footer.
const chrome = 3

// cardWidth is the inner width of the question card and the editors.
func (m Model) cardWidth() int {
	w := m.width - 6
	if w > LayoutMaxCardWidth {
		w = LayoutMaxCardWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// resize applies the terminal size to the widgets.
func (m *Model) resize() {
	w := m.cardWidth()
	m.answerInput.SetWidth(w)
	m.contentInput.SetWidth(w)
	m.titleInput.Width = w
	m.listViewport.Width = m.width
	m.updateListViewport()
}

// showQuestionCard reports whether the card is drawn. Past days without an
// answer can be hidden through preferences.
func (m Model) showQuestionCard() bool {
	if !m.hideEmptyAnswer || m.snapshot.Today {
		return true
	}
	return strings.TrimSpace(m.snapshot.Answer) != ""
}

func (m Model) renderQuestionCard() string {
	if !m.showQuestionCard() {
		return ""
	}
	styles := m.theme.Styles()
	snap := m.snapshot

	var b strings.Builder
	label := "Question"
	if snap.Today {
		label = "Today's question"
	}
	b.WriteString(styles.AccentText.Bold(true).Render(label))
	b.WriteString("\n")

	if strings.TrimSpace(snap.Question) == "" {
		b.WriteString(styles.FaintText.Render("No question for this day."))
		return styles.Card.Width(m.cardWidth()).Render(b.String())
	}

	b.WriteString(styles.Text.Render(snap.Question))
	b.WriteString("\n\n")
	switch {
	case strings.TrimSpace(snap.Answer) != "":
		b.WriteString(styles.Text.Render(snap.Answer))
	case snap.Editable:
		b.WriteString(styles.FaintText.Render("No answer yet. Press a to write one."))
	default:
		b.WriteString(styles.FaintText.Render("No answer."))
	}
	if snap.AnswerDirty {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("● unsaved"))
	}
	return styles.Card.Width(m.cardWidth()).Render(b.String())
}

// listHeight is the room left for the done list below the card.
func (m Model) listHeight() int {
	used := chrome + 1 // list heading
	if card := m.renderQuestionCard(); card != "" {
		used += lipgloss.Height(card)
	}
	h := m.height - used
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) renderListRows() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	if !snap.TasksLoaded {
		return styles.FaintText.Render("  Loading...")
	}
	if len(snap.Tasks) == 0 {
		return styles.FaintText.Render("  Nothing yet. Press n to add an item.")
	}

	titleWidth := m.width / 3
	if titleWidth < 12 {
		titleWidth = 12
	}

	rows := make([]string, 0, len(snap.Tasks))
	for i, task := range snap.Tasks {
		title := task.Title
		if strings.TrimSpace(title) == "" {
			title = "(untitled)"
		}
		title = padRight(truncate(title, titleWidth), titleWidth)
		content := truncate(firstLine(task.Content), m.width-titleWidth-6)

		if i == m.selectedRow {
			rows = append(rows, styles.Selected.Width(m.width).Render("▸ "+title+"  "+content))
			continue
		}
		rows = append(rows, "  "+styles.Text.Render(title)+"  "+styles.MutedText.Render(content))
	}
	return strings.Join(rows, "\n")
}

// updateListViewport refreshes the list content and keeps the selected row
// in view.
func (m *Model) updateListViewport() {
	if !m.ready {
		return
	}
	m.listViewport.Width = m.width
	m.listViewport.Height = m.listHeight()
	m.listViewport.SetContent(m.renderListRows())

	top := m.listViewport.YOffset
	switch {
	case m.selectedRow < top:
		m.listViewport.SetYOffset(m.selectedRow)
	case m.selectedRow >= top+m.listViewport.Height:
		m.listViewport.SetYOffset(m.selectedRow - m.listViewport.Height + 1)
	}
}

// renderDay renders the question card and the done list.
func (m Model) renderDay() string {
	styles := m.theme.Styles()

	var parts []string
	if card := m.renderQuestionCard(); card != "" {
		parts = append(parts, card)
	}

	heading := styles.AccentText.Bold(true).Render("Done")
	if m.snapshot.TasksLoaded {
		heading += " " + styles.FaintText.Render(fmt.Sprintf("(%d)", len(m.snapshot.Tasks)))
	}
	parts = append(parts, heading, m.listViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderQuestionEditor renders the answer editor modal.
func (m Model) renderQuestionEditor() string {
	styles := m.theme.Styles()
	modal := m.screen.QuestionModal
	q := m.screen.Question()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(modal.Title))
	if modal.Description != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(modal.Description))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render(q.Question()))
	b.WriteString("\n\n")

	if q.Editable() {
		b.WriteString(m.answerInput.View())
	} else {
		answer := q.Answer()
		if strings.TrimSpace(answer) == "" {
			answer = "No answer."
		}
		b.WriteString(styles.Text.Render(answer))
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("Past answers are read-only."))
	}

	if q.Dirty() {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("● unsaved"))
	}

	return m.placeEditor(b.String())
}

// renderTaskEditor renders the done-list item editor modal.
func (m Model) renderTaskEditor() string {
	styles := m.theme.Styles()
	modal := m.screen.TaskModal
	task := m.screen.Task()

	label := func(text string, focused bool) string {
		if focused {
			return styles.AccentText.Bold(true).Render(text)
		}
		return styles.MutedText.Render(text)
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(modal.Title))
	if modal.Description != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(modal.Description))
	}
	b.WriteString("\n\n")
	b.WriteString(label("Title", !m.contentFocus))
	b.WriteString("\n")
	b.WriteString(m.titleInput.View())
	b.WriteString("\n\n")
	b.WriteString(label("Content", m.contentFocus))
	b.WriteString("\n")
	b.WriteString(m.contentInput.View())

	if task.Dirty() {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("● unsaved"))
	}

	return m.placeEditor(b.String())
}

func (m Model) placeEditor(content string) string {
	styles := m.theme.Styles()
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	return lipgloss.Place(
		m.width,
		h,
		lipgloss.Center,
		lipgloss.Center,
		styles.Modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
