// Package bloomtest provides an in-memory Bloom API server for tests.
package bloomtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/five82/bloom/internal/bloom"
)

// Operation names accepted by Fail.
const (
	OpFetchAnswer      = "fetch-answer"
	OpRegisterQuestion = "register-question"
	OpSaveAnswer       = "save-answer"
	OpFetchDoneList    = "fetch-done-list"
	OpCreateDoneItem   = "create-done-item"
	OpUpdateDoneItem   = "update-done-item"
	OpDeleteDoneItem   = "delete-done-item"
)

type doneItem struct {
	date    string
	title   string
	content string
}

// Server is an httptest server backed by in-memory diary data.
type Server struct {
	*httptest.Server

	mu sync.Mutex
	// Today is the date the server registers questions for.
	Today string
	// DailyQuestion is the question handed out by register.
	DailyQuestion string
	// Token, when set, is required as the bearer token on every request.
	Token string

	answers  map[string]bloom.QuestionAnswer
	items    map[int64]doneItem
	nextID   int64
	failures map[string]int
	calls    []string
}

// NewServer starts a Server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		DailyQuestion: "What made you smile today?",
		answers:       make(map[string]bloom.QuestionAnswer),
		items:         make(map[int64]doneItem),
		nextID:        1,
		failures:      make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/daily-question/answer", s.guard(OpFetchAnswer, s.handleFetchAnswer))
	mux.HandleFunc("POST /api/daily-question/answer", s.guard(OpSaveAnswer, s.handleSaveAnswer))
	mux.HandleFunc("GET /api/daily-question", s.guard(OpRegisterQuestion, s.handleRegister))
	mux.HandleFunc("GET /api/done-list/{key}", s.guard(OpFetchDoneList, s.handleList))
	mux.HandleFunc("POST /api/done-list", s.guard(OpCreateDoneItem, s.handleCreate))
	mux.HandleFunc("PUT /api/done-list/{key}", s.guard(OpUpdateDoneItem, s.handleUpdate))
	mux.HandleFunc("DELETE /api/done-list/{key}", s.guard(OpDeleteDoneItem, s.handleDelete))

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// Fail makes every subsequent call to op respond with status until Recover.
func (s *Server) Fail(op string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = status
}

// Recover clears an injected failure.
func (s *Server) Recover(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, op)
}

// Calls returns the operations served so far, in order.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CallCount returns how many times op was requested.
func (s *Server) CallCount(op string) int {
	n := 0
	for _, c := range s.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// SetQuestion stores a question and answer for date.
func (s *Server) SetQuestion(date, question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[date] = bloom.QuestionAnswer{Question: question, Answer: answer}
}

// Question returns the stored entry for date.
func (s *Server) Question(date string) (bloom.QuestionAnswer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	qa, ok := s.answers[date]
	return qa, ok
}

// AddItem stores a done-list entry and returns its id.
func (s *Server) AddItem(date, title, content string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(date, title, content)
}

// Items returns the entries for date ordered by id.
func (s *Server) Items(date string) []bloom.DoneItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked(date)
}

func (s *Server) addLocked(date, title, content string) int64 {
	id := s.nextID
	s.nextID++
	s.items[id] = doneItem{date: date, title: title, content: content}
	return id
}

func (s *Server) itemsLocked(date string) []bloom.DoneItem {
	out := []bloom.DoneItem{}
	for id, it := range s.items {
		if it.date == date {
			out = append(out, bloom.DoneItem{ItemID: id, Title: it.title, Content: it.content})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func (s *Server) guard(op string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, op)
		status, failing := s.failures[op]
		token := s.Token
		s.mu.Unlock()

		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if failing {
			http.Error(w, "injected failure", status)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleFetchAnswer(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	s.mu.Lock()
	qa, ok := s.answers[date]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "no question for date", http.StatusNotFound)
		return
	}
	writeJSON(w, qa)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.answers[s.Today]; !ok && s.Today != "" {
		s.answers[s.Today] = bloom.QuestionAnswer{Question: s.DailyQuestion}
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleSaveAnswer(w http.ResponseWriter, r *http.Request) {
	var req bloom.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	qa, ok := s.answers[req.Date]
	if !ok {
		http.Error(w, "no question for date", http.StatusNotFound)
		return
	}
	qa.Answer = req.Answer
	s.answers[req.Date] = qa
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("key")
	s.mu.Lock()
	items := s.itemsLocked(date)
	s.mu.Unlock()
	writeJSON(w, bloom.DoneListResponse{DoneList: items})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var item bloom.NewDoneItem
	if !decodeFormData(w, r, &item) {
		return
	}
	if strings.TrimSpace(item.DoneDate) == "" {
		http.Error(w, "doneDate required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.addLocked(item.DoneDate, item.Title, item.Content)
	s.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var patch bloom.DoneItemPatch
	if !decodeFormData(w, r, &patch) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, found := s.items[id]
	if !found {
		http.NotFound(w, r)
		return
	}
	it.title = patch.Title
	it.content = patch.Content
	s.items[id] = it
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.items[id]; !found {
		http.NotFound(w, r)
		return
	}
	delete(s.items, id)
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("key"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeFormData(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	if err := json.Unmarshal([]byte(r.FormValue("data")), dest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
