package diary

import (
	"errors"
	"fmt"
)

// NoticeKind classifies a user-facing notification.
type NoticeKind int

const (
	NoticeError NoticeKind = iota
	NoticeInfo
)

func (k NoticeKind) String() string {
	if k == NoticeInfo {
		return "info"
	}
	return "error"
}

// Notice is a transient two-line notification.
type Notice struct {
	Kind   NoticeKind
	Title  string
	Detail string
}

// Notifier presents notices to the user.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}

// Notice titles.
const (
	msgLoadTasksFailed   = "Failed to load the done list."
	msgAddTaskFailed     = "Failed to add a done-list item."
	msgDeleteTaskFailed  = "Failed to delete the done-list item."
	msgSaveTaskFailed    = "Failed to save the done-list item."
	msgRegisterFailed    = "Failed to register today's question."
	msgSaveAnswerFailed  = "Failed to save your answer."
	msgAnswerSaved       = "Answer saved."
	msgAnswerNotEditable = "Past answers cannot be edited."
)

var (
	// ErrStale reports a response that arrived after a newer request for the
	// same feed and was discarded.
	ErrStale = errors.New("stale response discarded")
	// ErrUnknownTask reports an id that is not in the cached list.
	ErrUnknownTask = errors.New("task not in the current list")
	// ErrNoQuestion reports that no question exists for the selected date.
	ErrNoQuestion = errors.New("no question for the selected date")
	// ErrNotEditable reports a write to an answer outside its own day.
	ErrNotEditable = errors.New("answer is read-only for this date")
)

// Failure is a transport failure of one remote operation.
type Failure struct {
	Op  string
	Err error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Op, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// IsFailure reports whether err carries a transport failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

func surface(n Notifier, title string, err error) {
	n.Notify(Notice{Kind: NoticeError, Title: title, Detail: err.Error()})
}
