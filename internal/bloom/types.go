package bloom

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for scoped dates.
const DateLayout = "2006-01-02"

// QuestionAnswer mirrors the payload returned by /api/daily-question/answer.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Empty reports whether no question is known for the date.
func (q QuestionAnswer) Empty() bool {
	return strings.TrimSpace(q.Question) == ""
}

// AnswerRequest is the body written to /api/daily-question/answer.
type AnswerRequest struct {
	Date   string `json:"date"`
	Answer string `json:"answer"`
}

// DoneListResponse mirrors /api/done-list/{date}.
type DoneListResponse struct {
	DoneList []DoneItem `json:"donelist"`
}

// DoneItem describes one done-list entry in transport form.
type DoneItem struct {
	ItemID  int64  `json:"itemId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewDoneItem is the multipart "data" payload used to create an entry.
type NewDoneItem struct {
	DoneDate string `json:"doneDate"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// DoneItemPatch is the multipart "data" payload used to update an entry.
type DoneItemPatch struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// LocalDate formats t as a scoped date in the local timezone. Using UTC here
// would shift late-evening entries onto the next day.
func LocalDate(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// ParseDate parses a scoped date as local midnight.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.ParseInLocation(DateLayout, trimmed, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return LocalDate(a) == LocalDate(b)
}
