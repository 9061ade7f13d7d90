package diary

import (
	"context"
	"errors"
	"sync"
)

// ModalState is the state of a ModalSession.
type ModalState int

const (
	// ModalClosed is the initial and terminal state.
	ModalClosed ModalState = iota
	// ModalOpen presents an editor.
	ModalOpen
	// ModalConfirming presents an editor with unsaved changes and waits for a
	// save/discard/cancel decision before closing.
	ModalConfirming
)

func (s ModalState) String() string {
	switch s {
	case ModalOpen:
		return "open"
	case ModalConfirming:
		return "confirming"
	default:
		return "closed"
	}
}

// Decision answers the unsaved-changes prompt.
type Decision int

const (
	DecisionSave Decision = iota
	DecisionDiscard
	DecisionCancel
)

func (d Decision) String() string {
	switch d {
	case DecisionSave:
		return "save"
	case DecisionDiscard:
		return "discard"
	default:
		return "cancel"
	}
}

// Prompt is the text shown when closing with unsaved changes.
type Prompt struct {
	Title   string
	Message string
	Save    string
	Discard string
	Cancel  string
}

// UnsavedChangesPrompt is the prompt presented by the guarded close.
var UnsavedChangesPrompt = Prompt{
	Title:   "Save changes",
	Message: "You have unsaved changes.\nDo you want to save them?",
	Save:    "Save",
	Discard: "Don't save",
	Cancel:  "Cancel",
}

// Prompter asks the user to resolve a Prompt. Implementations may block.
type Prompter interface {
	Decide(ctx context.Context, p Prompt) Decision
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, p Prompt) Decision

// Decide implements Prompter.
func (f PrompterFunc) Decide(ctx context.Context, p Prompt) Decision { return f(ctx, p) }

var (
	// ErrModalOpen reports Open on a modal that is already presenting.
	ErrModalOpen = errors.New("modal already open")
	// ErrNoEditor reports Open without an editor.
	ErrNoEditor = errors.New("modal requires an editor")
	// ErrNoPendingDecision reports Resolve outside the confirming state.
	ErrNoPendingDecision = errors.New("no close decision pending")
)

// ModalSession is a visibility flag with a guarded close. Closing while the
// attached editor is dirty requires a save/discard/cancel decision.
type ModalSession struct {
	Title       string
	Description string

	mu     sync.Mutex
	state  ModalState
	editor Editor
}

// NewModalSession builds a closed modal.
func NewModalSession(title, description string) *ModalSession {
	return &ModalSession{Title: title, Description: description}
}

// State returns the current state.
func (m *ModalSession) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Visible reports whether the editing surface is presented.
func (m *ModalSession) Visible() bool {
	return m.State() != ModalClosed
}

// Editor returns the attached editor, nil when closed.
func (m *ModalSession) Editor() Editor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editor
}

// Open attaches ed and presents it. Only permitted while closed.
func (m *ModalSession) Open(ed Editor) error {
	if ed == nil {
		return ErrNoEditor
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalClosed {
		return ErrModalOpen
	}
	m.state = ModalOpen
	m.editor = ed
	return nil
}

// RequestClose handles a user-initiated close. A clean editor closes at
// once; a dirty one moves the modal to ModalConfirming. The new state is
// returned.
func (m *ModalSession) RequestClose() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalOpen {
		return m.state
	}
	if m.editor.Dirty() {
		m.state = ModalConfirming
		return m.state
	}
	m.closeLocked()
	return m.state
}

// Dismiss applies decision to a pending close without blocking. For
// DecisionSave the modal closes and the returned Committer must be run by the
// caller; the modal stays closed whatever the commit outcome, since failures
// are surfaced through notices. Other decisions return a nil Committer.
func (m *ModalSession) Dismiss(decision Decision) (Committer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalConfirming {
		return nil, ErrNoPendingDecision
	}
	ed := m.editor
	switch decision {
	case DecisionSave:
		m.closeLocked()
		return ed, nil
	case DecisionDiscard:
		if d, ok := ed.(discarder); ok {
			d.Discard()
		}
		m.closeLocked()
		return nil, nil
	default:
		m.state = ModalOpen
		return nil, nil
	}
}

// Resolve applies decision and, for DecisionSave, runs the commit. The
// commit error is returned for logging; the modal is closed regardless.
func (m *ModalSession) Resolve(ctx context.Context, decision Decision) error {
	c, err := m.Dismiss(decision)
	if err != nil || c == nil {
		return err
	}
	return c.CommitEdit(ctx)
}

// Close runs the whole guarded close, asking p when a decision is needed.
func (m *ModalSession) Close(ctx context.Context, p Prompter) error {
	if m.RequestClose() != ModalConfirming {
		return nil
	}
	return m.Resolve(ctx, p.Decide(ctx, UnsavedChangesPrompt))
}

// Save commits the attached editor while keeping the modal open.
func (m *ModalSession) Save(ctx context.Context) error {
	ed := m.Editor()
	if ed == nil {
		return ErrNoEditor
	}
	return ed.CommitEdit(ctx)
}

func (m *ModalSession) closeLocked() {
	m.state = ModalClosed
	m.editor = nil
}
