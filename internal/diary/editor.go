package diary

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/five82/bloom/internal/bloom"
)

// Committer persists an editor's pending change on demand.
type Committer interface {
	CommitEdit(ctx context.Context) error
}

// Editor is the handle a modal holds on whatever it is presenting. The modal
// sees only the dirty flag and the commit operation.
type Editor interface {
	Committer
	Dirty() bool
}

// discarder is implemented by editors that can drop their working copy.
type discarder interface {
	Discard()
}

// QuestionEditor edits the answer to one date's question.
type QuestionEditor struct {
	api    bloom.Service
	notify Notifier
	log    *logrus.Entry

	mu       sync.Mutex
	gen      uint64 // bumped by every Load
	date     string
	question string
	editable bool
	answer   FieldSession[string]
}

var _ Editor = (*QuestionEditor)(nil)

// NewQuestionEditor builds an editor with nothing loaded.
func NewQuestionEditor(api bloom.Service, notifier Notifier, logger *logrus.Logger) *QuestionEditor {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &QuestionEditor{
		api:    api,
		notify: notifier,
		log:    componentLogger(logger, "question_editor"),
	}
}

// Load replaces the editor contents with the server's entry for date.
func (e *QuestionEditor) Load(date string, qa bloom.QuestionAnswer, editable bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.date = date
	e.question = qa.Question
	e.editable = editable
	e.answer.Load(qa.Answer)
}

// Date returns the date the loaded entry belongs to.
func (e *QuestionEditor) Date() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.date
}

// Question returns the loaded question, empty when none exists.
func (e *QuestionEditor) Question() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.question
}

// Answer returns the working answer.
func (e *QuestionEditor) Answer() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.answer.Current()
}

// Editable reports whether the answer may be changed. Only today's answer is
// editable; the presentation layer must not route input otherwise.
func (e *QuestionEditor) Editable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editable
}

// SetAnswer replaces the working answer.
func (e *QuestionEditor) SetAnswer(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.answer.Set(v)
}

// Dirty implements Editor.
func (e *QuestionEditor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.answer.Dirty()
}

// Discard drops the working answer.
func (e *QuestionEditor) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.answer.Discard()
}

// CommitEdit writes the working answer. It does nothing when clean. On
// failure the answer stays dirty and the failure is surfaced.
func (e *QuestionEditor) CommitEdit(ctx context.Context) error {
	e.mu.Lock()
	if !e.answer.Dirty() {
		e.mu.Unlock()
		return nil
	}
	gen, date, answer, editable := e.gen, e.date, e.answer.Current(), e.editable
	e.mu.Unlock()

	if !editable {
		e.notify.Notify(Notice{Kind: NoticeError, Title: msgAnswerNotEditable, Detail: date})
		return ErrNotEditable
	}

	if err := e.api.SaveAnswer(ctx, date, answer); err != nil {
		e.log.WithError(err).WithField("date", date).Warn("answer save failed")
		surface(e.notify, msgSaveAnswerFailed, err)
		return &Failure{Op: "save answer", Err: err}
	}

	e.mu.Lock()
	// A Load while the write was in flight owns the session now.
	if e.gen == gen {
		e.answer.CommitValue(answer)
	}
	e.mu.Unlock()

	e.notify.Notify(Notice{Kind: NoticeInfo, Title: msgAnswerSaved, Detail: date})
	return nil
}

// TaskEditor edits the title and content of one cached record.
type TaskEditor struct {
	store *RecordStore

	mu     sync.Mutex
	gen    uint64 // bumped by every Load
	id     int64
	fields FieldSession[TaskFields]
}

var _ Editor = (*TaskEditor)(nil)

// NewTaskEditor builds an editor over store's records.
func NewTaskEditor(store *RecordStore) *TaskEditor {
	return &TaskEditor{store: store}
}

// Load takes a working copy of the cached record id. The copy comes from the
// store, so it reflects the last confirmed server read.
func (e *TaskEditor) Load(id int64) error {
	task, ok := e.store.Task(id)
	if !ok {
		return ErrUnknownTask
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.id = id
	e.fields.Load(task.Fields())
	return nil
}

// ID returns the record being edited, zero when none.
func (e *TaskEditor) ID() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

// Fields returns the working copy.
func (e *TaskEditor) Fields() TaskFields {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fields.Current()
}

// SetTitle replaces the working title.
func (e *TaskEditor) SetTitle(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := e.fields.Current()
	f.Title = v
	e.fields.Set(f)
}

// SetContent replaces the working content.
func (e *TaskEditor) SetContent(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := e.fields.Current()
	f.Content = v
	e.fields.Set(f)
}

// Dirty implements Editor.
func (e *TaskEditor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fields.Dirty()
}

// Discard drops the working copy.
func (e *TaskEditor) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fields.Discard()
}

// CommitEdit writes the working copy through the store, reloads the list and
// then marks the copy committed. It does nothing when clean. If the write
// fails the copy stays dirty and the cache is not touched.
func (e *TaskEditor) CommitEdit(ctx context.Context) error {
	e.mu.Lock()
	if !e.fields.Dirty() {
		e.mu.Unlock()
		return nil
	}
	gen, id, fields := e.gen, e.id, e.fields.Current()
	e.mu.Unlock()

	if err := e.store.CommitRecord(ctx, id, fields); err != nil {
		return err
	}
	_, reloadErr := e.store.Reload(ctx)

	e.mu.Lock()
	if e.gen == gen {
		e.fields.CommitValue(fields)
	}
	e.mu.Unlock()

	return ignoreStale(reloadErr)
}
