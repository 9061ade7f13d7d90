package diary

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/five82/bloom/internal/bloom"
)

// Task is a done-list entry as cached by the store.
type Task struct {
	ID      int64
	Title   string
	Content string
}

// TaskFields are the editable parts of a Task.
type TaskFields struct {
	Title   string
	Content string
}

// Fields returns the editable parts of t.
func (t Task) Fields() TaskFields {
	return TaskFields{Title: t.Title, Content: t.Content}
}

// RecordStore caches the done list for one date. The cache only ever holds
// the result of the latest successful server read; mutations are followed by
// a full reload instead of being applied locally.
type RecordStore struct {
	api    bloom.Service
	notify Notifier
	log    *logrus.Entry

	mu     sync.RWMutex
	date   string
	tasks  []Task
	loaded bool
	seq    uint64
}

// NewRecordStore builds an empty store.
func NewRecordStore(api bloom.Service, notifier Notifier, logger *logrus.Logger) *RecordStore {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &RecordStore{
		api:    api,
		notify: notifier,
		log:    componentLogger(logger, "record_store"),
	}
}

// Date returns the date of the most recent load request.
func (s *RecordStore) Date() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.date
}

// Loaded reports whether the cache holds a server read for Date.
func (s *RecordStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Tasks returns a copy of the cached list.
func (s *RecordStore) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

// Task looks up a cached record by id.
func (s *RecordStore) Task(id int64) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// LoadForDate fetches the records for date and replaces the cache with them.
// On failure the cache is left untouched and the failure is surfaced. A
// response overtaken by a newer load is dropped and reported as ErrStale.
func (s *RecordStore) LoadForDate(ctx context.Context, date string) ([]Task, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	if s.date != date {
		s.loaded = false
	}
	s.date = date
	s.mu.Unlock()

	items, err := s.api.FetchDoneList(ctx, date)
	if err != nil {
		s.log.WithError(err).WithField("date", date).Warn("done list fetch failed")
		surface(s.notify, msgLoadTasksFailed, err)
		return nil, &Failure{Op: "load done list", Err: err}
	}

	tasks := make([]Task, 0, len(items))
	for _, it := range items {
		tasks = append(tasks, Task{ID: it.ItemID, Title: it.Title, Content: it.Content})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.log.WithField("date", date).Debug("discarding stale done list")
		return nil, ErrStale
	}
	s.tasks = tasks
	s.loaded = true
	return cloneTasks(tasks), nil
}

// Reload refreshes the cache for the current date.
func (s *RecordStore) Reload(ctx context.Context) ([]Task, error) {
	return s.LoadForDate(ctx, s.Date())
}

// Add creates an empty record for date and reloads.
func (s *RecordStore) Add(ctx context.Context, date string) error {
	if err := s.api.CreateDoneItem(ctx, bloom.NewDoneItem{DoneDate: date}); err != nil {
		s.log.WithError(err).WithField("date", date).Warn("done item create failed")
		surface(s.notify, msgAddTaskFailed, err)
		return &Failure{Op: "add done item", Err: err}
	}
	_, err := s.LoadForDate(ctx, date)
	return ignoreStale(err)
}

// Remove deletes a record and reloads the current date. The caller is
// responsible for having confirmed the deletion with the user.
func (s *RecordStore) Remove(ctx context.Context, id int64) error {
	if err := s.api.DeleteDoneItem(ctx, id); err != nil {
		s.log.WithError(err).WithField("id", id).Warn("done item delete failed")
		surface(s.notify, msgDeleteTaskFailed, err)
		return &Failure{Op: "delete done item", Err: err}
	}
	_, err := s.Reload(ctx)
	return ignoreStale(err)
}

// CommitRecord writes title and content for an existing record. It does not
// reload; callers refresh once their edits are written.
func (s *RecordStore) CommitRecord(ctx context.Context, id int64, fields TaskFields) error {
	patch := bloom.DoneItemPatch{Title: fields.Title, Content: fields.Content}
	if err := s.api.UpdateDoneItem(ctx, id, patch); err != nil {
		s.log.WithError(err).WithField("id", id).Warn("done item update failed")
		surface(s.notify, msgSaveTaskFailed, err)
		return &Failure{Op: "update done item", Err: err}
	}
	return nil
}

func cloneTasks(tasks []Task) []Task {
	if len(tasks) == 0 {
		return nil
	}
	dup := make([]Task, len(tasks))
	copy(dup, tasks)
	return dup
}

func ignoreStale(err error) error {
	if errors.Is(err, ErrStale) {
		return nil
	}
	return err
}

func componentLogger(logger *logrus.Logger, component string) *logrus.Entry {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return logger.WithField("component", component)
}

// String renders a task for log lines and CLI output.
func (t Task) String() string {
	return fmt.Sprintf("#%d %q", t.ID, t.Title)
}
