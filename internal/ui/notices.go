package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bloom/internal/diary"
)

// NoticeQueue carries notices from the diary core to the running program.
// Notify never blocks: when the buffer is full the notice is dropped.
type NoticeQueue struct {
	ch chan diary.Notice
}

var _ diary.Notifier = (*NoticeQueue)(nil)

// NewNoticeQueue returns a queue buffering up to size notices.
func NewNoticeQueue(size int) *NoticeQueue {
	if size <= 0 {
		size = 1
	}
	return &NoticeQueue{ch: make(chan diary.Notice, size)}
}

// Notify implements diary.Notifier.
func (q *NoticeQueue) Notify(n diary.Notice) {
	select {
	case q.ch <- n:
	default:
	}
}

// Pending returns the number of undelivered notices.
func (q *NoticeQueue) Pending() int {
	return len(q.ch)
}

type noticeMsg diary.Notice

func waitNoticeCmd(q *NoticeQueue) tea.Cmd {
	if q == nil {
		return nil
	}
	return func() tea.Msg {
		return noticeMsg(<-q.ch)
	}
}

// toast is one notice on screen. Notices are shown one at a time, each for
// ToastDuration.
type toast struct {
	notice diary.Notice
	until  time.Time
}

type toastQueue struct {
	items []toast
}

func (q *toastQueue) push(n diary.Notice, now time.Time) {
	t := toast{notice: n}
	if len(q.items) == 0 {
		t.until = now.Add(ToastDuration)
	}
	q.items = append(q.items, t)
}

// expire drops the head once its time is up and starts the clock on the next.
func (q *toastQueue) expire(now time.Time) {
	for len(q.items) > 0 && !now.Before(q.items[0].until) {
		q.items = q.items[1:]
		if len(q.items) > 0 {
			q.items[0].until = now.Add(ToastDuration)
		}
	}
}

func (q *toastQueue) current() (diary.Notice, bool) {
	if len(q.items) == 0 {
		return diary.Notice{}, false
	}
	return q.items[0].notice, true
}

func (q *toastQueue) len() int { return len(q.items) }
