package diary

import (
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/five82/bloom/internal/bloom/bloomtest"
)

func at(date string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		panic(err)
	}
	return t.Add(12 * time.Hour)
}

func newTestScreen(t *testing.T, srv *bloomtest.Server, today, selected string) (*Screen, *recordingNotifier) {
	t.Helper()
	srv.Today = today
	notes := &recordingNotifier{}
	s := NewScreen(Options{
		API:      newTestClient(t, srv),
		Notifier: notes,
		User:     User{Nickname: "mina"},
		Now:      func() time.Time { return at(today) },
		Date:     at(selected),
	})
	return s, notes
}

func TestScreen_BootstrapToday(t *testing.T) {
	srv := bloomtest.NewServer(t)
	s, notes := newTestScreen(t, srv, day, day)

	if err := s.Refresh(testContext(t)); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Question != srv.DailyQuestion || snap.Answer != "" {
		t.Fatalf("question/answer = %q/%q, want registered question", snap.Question, snap.Answer)
	}
	if !snap.Today || !snap.Editable {
		t.Fatalf("Today/Editable = %v/%v, want true/true", snap.Today, snap.Editable)
	}

	var order []string
	for _, c := range srv.Calls() {
		if c == bloomtest.OpRegisterQuestion || c == bloomtest.OpFetchAnswer {
			order = append(order, c)
		}
	}
	want := []string{bloomtest.OpRegisterQuestion, bloomtest.OpFetchAnswer}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("question calls = %v, want %v", order, want)
	}
	if len(notes.all()) != 0 {
		t.Fatalf("notices = %#v, want none", notes.all())
	}

	// Known question: no second registration.
	if err := s.Refresh(testContext(t)); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if n := srv.CallCount(bloomtest.OpRegisterQuestion); n != 1 {
		t.Fatalf("register calls = %d, want 1", n)
	}
}

func TestScreen_PastDateFetchesOnly(t *testing.T) {
	srv := bloomtest.NewServer(t)
	s, notes := newTestScreen(t, srv, "2024-03-02", day)

	if err := s.Refresh(testContext(t)); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Question != "" || snap.Answer != "" || snap.Editable || snap.Today {
		t.Fatalf("snapshot = %#v, want empty read-only past entry", snap)
	}
	if n := srv.CallCount(bloomtest.OpRegisterQuestion); n != 0 {
		t.Fatalf("register calls = %d, want 0", n)
	}
	if n := srv.CallCount(bloomtest.OpFetchAnswer); n != 1 {
		t.Fatalf("fetch calls = %d, want 1", n)
	}
	if len(notes.all()) != 0 {
		t.Fatalf("question fetch miss should be silent, got %#v", notes.all())
	}
}

func TestScreen_FeedsFailIndependently(t *testing.T) {
	srv := bloomtest.NewServer(t)
	srv.SetQuestion(day, "Q", "A")
	srv.AddItem(day, "Run", "")
	s, notes := newTestScreen(t, srv, day, day)
	ctx := testContext(t)

	srv.Fail(bloomtest.OpFetchDoneList, http.StatusInternalServerError)
	if err := s.Refresh(ctx); !IsFailure(err) {
		t.Fatalf("Refresh error = %v, want *Failure", err)
	}
	if snap := s.Snapshot(); snap.Question != "Q" || snap.Answer != "A" {
		t.Fatalf("question = %#v, want loaded despite list failure", snap)
	}
	if errs := notes.errors(); len(errs) != 1 || errs[0].Title != msgLoadTasksFailed {
		t.Fatalf("notices = %#v, want load failure", errs)
	}

	srv.Recover(bloomtest.OpFetchDoneList)
	srv.Fail(bloomtest.OpFetchAnswer, http.StatusInternalServerError)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh error = %v, want nil", err)
	}
	snap := s.Snapshot()
	if snap.Question != "" || snap.Answer != "" {
		t.Fatalf("question = %q/%q, want reset to empty", snap.Question, snap.Answer)
	}
	if len(snap.Tasks) != 1 || !snap.TasksLoaded {
		t.Fatalf("tasks = %#v, want loaded despite question failure", snap.Tasks)
	}
	if errs := notes.errors(); len(errs) != 1 {
		t.Fatalf("question fetch failure should not notify, got %#v", errs)
	}
}

func TestScreen_RegisterFailureStillFetches(t *testing.T) {
	srv := bloomtest.NewServer(t)
	s, notes := newTestScreen(t, srv, day, day)
	srv.Fail(bloomtest.OpRegisterQuestion, http.StatusBadGateway)

	if err := s.Refresh(testContext(t)); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if n := srv.CallCount(bloomtest.OpFetchAnswer); n != 1 {
		t.Fatalf("fetch calls = %d, want 1", n)
	}
	if errs := notes.errors(); len(errs) != 1 || errs[0].Title != msgRegisterFailed {
		t.Fatalf("notices = %#v, want register failure", errs)
	}
}

func TestScreen_DateNavigation(t *testing.T) {
	srv := bloomtest.NewServer(t)
	s, _ := newTestScreen(t, srv, day, day)

	s.ShiftDate(-1)
	if s.LocalDate() != "2024-02-29" || s.IsToday() {
		t.Fatalf("after ShiftDate(-1): %q today=%v", s.LocalDate(), s.IsToday())
	}
	s.ShiftDate(2)
	if s.LocalDate() != "2024-03-02" {
		t.Fatalf("after ShiftDate(2): %q", s.LocalDate())
	}
	s.GoToday()
	if s.LocalDate() != day || !s.IsToday() {
		t.Fatalf("after GoToday: %q today=%v", s.LocalDate(), s.IsToday())
	}
	if err := s.SetDate(testContext(t), at("2024-02-28")); err != nil {
		t.Fatalf("SetDate returned error: %v", err)
	}
	if got := s.Store().Date(); got != "2024-02-28" {
		t.Fatalf("store date = %q, want 2024-02-28", got)
	}
}

func TestScreen_OpenQuestionDiscardReloads(t *testing.T) {
	srv := bloomtest.NewServer(t)
	srv.SetQuestion(day, "Q", "server answer")
	s, _ := newTestScreen(t, srv, day, day)
	ctx := testContext(t)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	if err := s.OpenQuestion(ctx); err != nil {
		t.Fatalf("OpenQuestion returned error: %v", err)
	}
	s.Question().SetAnswer("draft")
	if got := s.QuestionModal.RequestClose(); got != ModalConfirming {
		t.Fatalf("RequestClose() = %v, want confirming", got)
	}
	if err := s.QuestionModal.Resolve(ctx, DecisionDiscard); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	// Changed elsewhere while closed; reopening shows the server value.
	srv.SetQuestion(day, "Q", "newer answer")
	if err := s.OpenQuestion(ctx); err != nil {
		t.Fatalf("OpenQuestion returned error: %v", err)
	}
	if got := s.Question().Answer(); got != "newer answer" {
		t.Fatalf("Answer() = %q, want newer answer", got)
	}
	if s.Question().Dirty() {
		t.Fatal("reopened editor is dirty")
	}
}

func TestScreen_OpenQuestionWithoutQuestion(t *testing.T) {
	srv := bloomtest.NewServer(t)
	s, _ := newTestScreen(t, srv, "2024-03-02", day)
	ctx := testContext(t)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if err := s.OpenQuestion(ctx); !errors.Is(err, ErrNoQuestion) {
		t.Fatalf("OpenQuestion error = %v, want ErrNoQuestion", err)
	}
	if s.QuestionModal.Visible() {
		t.Fatal("modal opened without a question")
	}
}

func TestScreen_TaskModalSave(t *testing.T) {
	srv := bloomtest.NewServer(t)
	s, _ := newTestScreen(t, srv, day, day)
	ctx := testContext(t)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if err := s.AddTask(ctx); err != nil {
		t.Fatalf("AddTask returned error: %v", err)
	}
	tasks := s.Snapshot().Tasks
	if len(tasks) != 1 {
		t.Fatalf("tasks = %#v, want one new record", tasks)
	}

	if err := s.OpenTask(tasks[0].ID); err != nil {
		t.Fatalf("OpenTask returned error: %v", err)
	}
	s.Task().SetTitle("Walked the dog")
	if got := s.TaskModal.RequestClose(); got != ModalConfirming {
		t.Fatalf("RequestClose() = %v, want confirming", got)
	}
	if err := s.TaskModal.Resolve(ctx, DecisionSave); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if s.TaskModal.Visible() {
		t.Fatal("modal visible after save")
	}
	if got := s.Snapshot().Tasks[0].Title; got != "Walked the dog" {
		t.Fatalf("cached title = %q, want saved title", got)
	}
	assertCacheMatchesServer(t, s.Store(), srv, day)
}

func TestScreen_DeleteConfirmation(t *testing.T) {
	srv := bloomtest.NewServer(t)
	srv.AddItem(day, "A", "")
	srv.AddItem(day, "B", "")
	s, _ := newTestScreen(t, srv, day, day)
	ctx := testContext(t)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	if err := s.RequestDelete(99); !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("RequestDelete(99) error = %v, want ErrUnknownTask", err)
	}
	if err := s.RequestDelete(1); err != nil {
		t.Fatalf("RequestDelete returned error: %v", err)
	}
	if s.ScrollEnabled() || s.PendingDelete() != 1 {
		t.Fatalf("scroll/pending = %v/%d, want false/1", s.ScrollEnabled(), s.PendingDelete())
	}
	s.CancelDelete()
	if !s.ScrollEnabled() || s.PendingDelete() != 0 {
		t.Fatal("CancelDelete did not clear the request")
	}
	if n := srv.CallCount(bloomtest.OpDeleteDoneItem); n != 0 {
		t.Fatalf("delete calls = %d after cancel, want 0", n)
	}

	if err := s.RequestDelete(1); err != nil {
		t.Fatalf("RequestDelete returned error: %v", err)
	}
	if err := s.ConfirmDelete(ctx); err != nil {
		t.Fatalf("ConfirmDelete returned error: %v", err)
	}
	if got := taskIDs(s.Snapshot().Tasks); !reflect.DeepEqual(got, []int64{2}) {
		t.Fatalf("ids = %v, want [2]", got)
	}
	if !s.ScrollEnabled() {
		t.Fatal("scrolling still suspended after delete")
	}
	if err := s.ConfirmDelete(ctx); !errors.Is(err, ErrNoPendingDelete) {
		t.Fatalf("ConfirmDelete error = %v, want ErrNoPendingDelete", err)
	}
}

func TestScreen_StaleQuestionDiscarded(t *testing.T) {
	srv := bloomtest.NewServer(t)
	srv.SetQuestion(day, "old", "")
	srv.SetQuestion("2024-03-02", "new", "")
	srv.Today = "2024-03-05"
	gate := newGatedService(newTestClient(t, srv))
	s := NewScreen(Options{
		API:  gate,
		Now:  func() time.Time { return at("2024-03-05") },
		Date: at(day),
	})
	ctx := testContext(t)

	gate.hold(day)
	done := make(chan struct{})
	go func() {
		s.LoadQuestion(ctx)
		close(done)
	}()
	<-gate.entered

	s.Select(at("2024-03-02"))
	s.LoadQuestion(ctx)
	gate.release(day)
	<-done

	if got := s.Question().Date(); got != "2024-03-02" {
		t.Fatalf("question date = %q, want 2024-03-02", got)
	}
	if got := s.Snapshot().Question; got != "new" {
		t.Fatalf("question = %q, want new", got)
	}
}

func TestScreen_SetSwiping(t *testing.T) {
	srv := bloomtest.NewServer(t)
	s, _ := newTestScreen(t, srv, day, day)
	s.SetSwiping(true)
	if s.ScrollEnabled() {
		t.Fatal("ScrollEnabled() = true while swiping")
	}
	s.SetSwiping(false)
	if !s.ScrollEnabled() {
		t.Fatal("ScrollEnabled() = false after swipe")
	}
	if s.User().Nickname != "mina" {
		t.Fatalf("User() = %#v", s.User())
	}
}
