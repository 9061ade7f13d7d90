package diary

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/five82/bloom/internal/bloom"
)

// User is the signed-in user the screen acts for.
type User struct {
	Nickname string
}

// Options configure NewScreen.
type Options struct {
	API      bloom.Service
	Notifier Notifier
	Logger   *logrus.Logger
	User     User
	// Now returns the current time; nil uses time.Now.
	Now func() time.Time
	// Date is the initially selected day; zero selects today.
	Date time.Time
}

// ErrNoPendingDelete reports ConfirmDelete without RequestDelete.
var ErrNoPendingDelete = errors.New("no deletion pending")

// Screen orchestrates the diary: the selected date, the question feed, the
// done list and the two editing modals.
type Screen struct {
	api    bloom.Service
	notify Notifier
	log    *logrus.Entry
	now    func() time.Time
	user   User

	store    *RecordStore
	question *QuestionEditor
	task     *TaskEditor

	// QuestionModal presents the question editor.
	QuestionModal *ModalSession
	// TaskModal presents the task editor.
	TaskModal *ModalSession

	mu            sync.RWMutex
	selected      time.Time
	pendingDelete int64
	swiping       bool
}

// Modal titles.
const (
	QuestionModalTitle = "Today's question answer"
	TaskModalTitle     = "Done"
)

// NewScreen builds a screen. Nothing is fetched until Refresh or SetDate.
func NewScreen(opts Options) *Screen {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = discardNotifier{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	selected := opts.Date
	if selected.IsZero() {
		selected = now()
	}

	store := NewRecordStore(opts.API, notifier, opts.Logger)
	return &Screen{
		api:           opts.API,
		notify:        notifier,
		log:           componentLogger(opts.Logger, "diary_screen"),
		now:           now,
		user:          opts.User,
		store:         store,
		question:      NewQuestionEditor(opts.API, notifier, opts.Logger),
		task:          NewTaskEditor(store),
		QuestionModal: NewModalSession(QuestionModalTitle, ""),
		TaskModal:     NewModalSession(TaskModalTitle, ""),
		selected:      selected,
	}
}

// User returns the user the screen was opened for.
func (s *Screen) User() User { return s.user }

// Store exposes the done-list cache.
func (s *Screen) Store() *RecordStore { return s.store }

// Question exposes the question editor.
func (s *Screen) Question() *QuestionEditor { return s.question }

// Task exposes the task editor.
func (s *Screen) Task() *TaskEditor { return s.task }

// Date returns the selected day.
func (s *Screen) Date() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// LocalDate returns the selected day as a scoped date string.
func (s *Screen) LocalDate() string {
	return bloom.LocalDate(s.Date())
}

// IsToday reports whether the selected day is the current calendar day.
func (s *Screen) IsToday() bool {
	return bloom.SameDay(s.Date(), s.now())
}

// Today returns the current calendar day as a scoped date string.
func (s *Screen) Today() string {
	return bloom.LocalDate(s.now())
}

// SetDate selects t and refreshes both feeds.
func (s *Screen) SetDate(ctx context.Context, t time.Time) error {
	s.Select(t)
	return s.Refresh(ctx)
}

// Select changes the selected day without fetching.
func (s *Screen) Select(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = t
}

// ShiftDate moves the selection by days without fetching.
func (s *Screen) ShiftDate(days int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = s.selected.AddDate(0, 0, days)
}

// GoToday selects the current day without fetching.
func (s *Screen) GoToday() {
	s.Select(s.now())
}

// Refresh reloads the question and the done list for the selected day. The
// two run concurrently and independently; only the done-list error is
// returned because question failures degrade to an empty entry.
func (s *Screen) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		s.LoadQuestion(ctx)
		return nil
	})
	g.Go(func() error {
		return s.LoadTasks(ctx)
	})
	return g.Wait()
}

// LoadTasks reloads the done list for the selected day.
func (s *Screen) LoadTasks(ctx context.Context) error {
	_, err := s.store.LoadForDate(ctx, s.LocalDate())
	return ignoreStale(err)
}

// LoadQuestion loads the question for the selected day. Today's question is
// registered first when none is known yet; other days are only fetched, so a
// past day without an entry stays empty. Fetch failures reset the entry to
// empty without notifying.
func (s *Screen) LoadQuestion(ctx context.Context) {
	date := s.LocalDate()
	today := s.IsToday()

	if today && !s.hasQuestionFor(date) {
		if err := s.api.RegisterQuestion(ctx); err != nil {
			s.log.WithError(err).Warn("question registration failed")
			surface(s.notify, msgRegisterFailed, err)
		}
	}

	qa, err := s.api.FetchAnswer(ctx, date)
	if err != nil {
		s.log.WithError(err).WithField("date", date).Debug("question fetch failed, showing empty entry")
		qa = bloom.QuestionAnswer{}
	}

	if s.LocalDate() != date {
		s.log.WithField("date", date).Debug("discarding stale question")
		return
	}
	s.question.Load(date, qa, today)
}

func (s *Screen) hasQuestionFor(date string) bool {
	return s.question.Date() == date && strings.TrimSpace(s.question.Question()) != ""
}

// OpenQuestion re-fetches the selected day's question and presents it. It
// refuses when the day has no question.
func (s *Screen) OpenQuestion(ctx context.Context) error {
	if !s.hasQuestionFor(s.LocalDate()) {
		return ErrNoQuestion
	}
	if s.QuestionModal.Visible() {
		return ErrModalOpen
	}
	s.LoadQuestion(ctx)
	if !s.hasQuestionFor(s.LocalDate()) {
		return ErrNoQuestion
	}
	return s.QuestionModal.Open(s.question)
}

// OpenTask presents the editor for a cached record.
func (s *Screen) OpenTask(id int64) error {
	if s.TaskModal.Visible() {
		return ErrModalOpen
	}
	if err := s.task.Load(id); err != nil {
		return err
	}
	return s.TaskModal.Open(s.task)
}

// AddTask creates an empty record for the selected day.
func (s *Screen) AddTask(ctx context.Context) error {
	return s.store.Add(ctx, s.LocalDate())
}

// RequestDelete asks for confirmation before deleting id. List scrolling is
// suspended until the request is confirmed or cancelled.
func (s *Screen) RequestDelete(id int64) error {
	if _, ok := s.store.Task(id); !ok {
		return ErrUnknownTask
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = id
	s.swiping = true
	return nil
}

// PendingDelete returns the id awaiting confirmation, zero when none.
func (s *Screen) PendingDelete() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingDelete
}

// CancelDelete drops a pending deletion.
func (s *Screen) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = 0
	s.swiping = false
}

// ConfirmDelete deletes the pending record and reloads the list.
func (s *Screen) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	id := s.pendingDelete
	s.pendingDelete = 0
	s.swiping = false
	s.mu.Unlock()

	if id == 0 {
		return ErrNoPendingDelete
	}
	return s.store.Remove(ctx, id)
}

// SetSwiping is toggled by the presentation layer while a row gesture is in
// progress.
func (s *Screen) SetSwiping(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swiping = v
}

// ScrollEnabled reports whether the list may scroll.
func (s *Screen) ScrollEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.swiping
}

// Snapshot is a consistent copy of what the screen shows.
type Snapshot struct {
	Date          time.Time
	LocalDate     string
	Today         bool
	User          User
	Question      string
	Answer        string
	AnswerDirty   bool
	Editable      bool
	Tasks         []Task
	TasksLoaded   bool
	PendingDelete int64
	ScrollEnabled bool
}

// Snapshot returns the current screen state for rendering.
func (s *Screen) Snapshot() Snapshot {
	date := s.LocalDate()
	snap := Snapshot{
		Date:          s.Date(),
		LocalDate:     date,
		Today:         s.IsToday(),
		User:          s.user,
		Tasks:         s.store.Tasks(),
		TasksLoaded:   s.store.Loaded() && s.store.Date() == date,
		PendingDelete: s.PendingDelete(),
		ScrollEnabled: s.ScrollEnabled(),
	}
	if s.question.Date() == date {
		snap.Question = s.question.Question()
		snap.Answer = s.question.Answer()
		snap.AnswerDirty = s.question.Dirty()
		snap.Editable = s.question.Editable()
	}
	return snap
}
