package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bloom/internal/diary"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// decisionMsg carries the answer to the unsaved-changes prompt.
type decisionMsg struct {
	decision diary.Decision
}

// deleteDecisionMsg carries the answer to the delete confirmation.
type deleteDecisionMsg struct {
	confirmed bool
}

func sendMsg(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// promptModal asks how to close an editor with unsaved changes.
type promptModal struct {
	prompt diary.Prompt
}

var _ Modal = promptModal{}

func newPromptModal(p diary.Prompt) promptModal {
	return promptModal{prompt: p}
}

func (p promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}
	switch {
	case key.Matches(km, keys.PromptSave):
		return p, sendMsg(decisionMsg{decision: diary.DecisionSave}), true
	case key.Matches(km, keys.PromptDiscard):
		return p, sendMsg(decisionMsg{decision: diary.DecisionDiscard}), true
	case key.Matches(km, keys.PromptCancel):
		return p, sendMsg(decisionMsg{decision: diary.DecisionCancel}), true
	}
	return p, nil, false
}

func (p promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.prompt.Title))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render(p.prompt.Message))
	b.WriteString("\n\n")
	b.WriteString(renderChoices(styles, []choice{
		{"s", p.prompt.Save},
		{"d", p.prompt.Discard},
		{"c", p.prompt.Cancel},
	}))
	return placeModal(theme, styles.Modal, b.String(), width, height)
}

// confirmModal asks before deleting a done-list item.
type confirmModal struct {
	title string
}

var _ Modal = confirmModal{}

func newConfirmModal(title string) confirmModal {
	return confirmModal{title: title}
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.ConfirmYes):
		return c, sendMsg(deleteDecisionMsg{confirmed: true}), true
	case key.Matches(km, keys.ConfirmNo):
		return c, sendMsg(deleteDecisionMsg{confirmed: false}), true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	title := c.title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Delete item"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(truncate(title, 40)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("This cannot be undone."))
	b.WriteString("\n\n")
	b.WriteString(renderChoices(styles, []choice{
		{"y", "Delete"},
		{"n", "Keep"},
	}))
	return placeModal(theme, styles.DangerModal, b.String(), width, height)
}

type choice struct {
	key   string
	label string
}

func renderChoices(styles Styles, choices []choice) string {
	parts := make([]string, 0, len(choices))
	for _, c := range choices {
		parts = append(parts, styles.AccentText.Render(c.key)+" "+styles.Text.Render(c.label))
	}
	return strings.Join(parts, "   ")
}

// placeModal centers content in a bordered box over the full terminal.
func placeModal(theme Theme, frame lipgloss.Style, content string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		frame.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
