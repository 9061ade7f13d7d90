// Package ui provides the terminal user interface for bloom.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model renders a diary.Screen snapshot and
// translates keys into Screen operations. The diary core owns all state that
// matters (the cached done list, editor sessions, modal states); the Model
// only keeps presentation state such as the selected row, the focused field
// and the toast queue.
//
// # Package Structure
//
//   - app.go: Model, Update routing, remote operations as commands, Run
//   - diary.go: question card, done list and editor rendering
//   - header.go: status bar, command bar and notice footer
//   - modal.go: unsaved-changes prompt and delete confirmation
//   - notices.go: NoticeQueue (diary.Notifier) and the toast queue
//   - help.go, keys.go, theme.go, layout.go: help overlay, bindings, palettes
//
// # Modes
//
//   - Browse: day view with the question card and the done list
//   - Question: answer editor inside the question modal
//   - Task: title and content editor inside the task modal
//
// The prompt and confirm overlays sit above any mode and take every key
// until answered.
//
// # Event Flow
//
//  1. Keys call Screen operations; remote ones run as commands that end in
//     an opDoneMsg, which re-reads the snapshot
//  2. Closing an editor goes through diary.ModalSession.RequestClose; a dirty
//     editor raises the prompt, and Dismiss applies the decision
//  3. A save on close leaves the editor at once and commits in the background
//  4. Notices from the core arrive through NoticeQueue and are shown one at a
//     time for ToastDuration
//  5. A periodic tick expires toasts and picks up background changes such as
//     the midnight rollover
//
// # Usage Example
//
//	notices := ui.NewNoticeQueue(16)
//	screen := diary.NewScreen(diary.Options{API: client, Notifier: notices})
//	err := ui.Run(ui.Options{
//		Context: ctx,
//		Screen:  screen,
//		Notices: notices,
//	})
package ui
