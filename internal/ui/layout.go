package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// LayoutMaxCardWidth caps the question card and editor width on wide
	// terminals.
	LayoutMaxCardWidth = 100
)

// Editor sizing.
const (
	// AnswerCharLimit bounds the answer textarea.
	AnswerCharLimit = 2000

	// TitleCharLimit bounds the task title input.
	TitleCharLimit = 120

	// ContentCharLimit bounds the task content textarea.
	ContentCharLimit = 4000

	// EditorHeight is the number of text rows in the multi-line editors.
	EditorHeight = 8
)

// Timing constants.
const (
	// ToastDuration is how long a notice stays on screen.
	ToastDuration = 2 * time.Second

	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second
)
