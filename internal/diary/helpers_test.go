package diary

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/five82/bloom/internal/bloom"
	"github.com/five82/bloom/internal/bloom/bloomtest"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recordingNotifier) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

func (r *recordingNotifier) errors() []Notice {
	var out []Notice
	for _, n := range r.all() {
		if n.Kind == NoticeError {
			out = append(out, n)
		}
	}
	return out
}

func newTestClient(t *testing.T, srv *bloomtest.Server) *bloom.Client {
	t.Helper()
	c, err := bloom.NewClient(srv.URL, bloom.ClientOptions{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// gatedService wraps a Service and holds calls until released. Fetches are
// gated by date, writes by their bloomtest op name.
type gatedService struct {
	bloom.Service

	mu    sync.Mutex
	gates map[string]chan struct{}
	// entered receives the date of every gated call once it is blocked.
	entered chan string
}

func newGatedService(inner bloom.Service) *gatedService {
	return &gatedService{
		Service: inner,
		gates:   make(map[string]chan struct{}),
		entered: make(chan string, 8),
	}
}

func (g *gatedService) hold(date string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gates[date] = make(chan struct{})
}

func (g *gatedService) release(date string) {
	g.mu.Lock()
	ch := g.gates[date]
	delete(g.gates, date)
	g.mu.Unlock()
	if ch != nil {
		close(ch)
	}
}

func (g *gatedService) wait(ctx context.Context, date string) {
	g.mu.Lock()
	ch := g.gates[date]
	g.mu.Unlock()
	if ch == nil {
		return
	}
	g.entered <- date
	select {
	case <-ch:
	case <-ctx.Done():
	}
}

func (g *gatedService) FetchDoneList(ctx context.Context, date string) ([]bloom.DoneItem, error) {
	g.wait(ctx, date)
	return g.Service.FetchDoneList(ctx, date)
}

func (g *gatedService) FetchAnswer(ctx context.Context, date string) (bloom.QuestionAnswer, error) {
	g.wait(ctx, date)
	return g.Service.FetchAnswer(ctx, date)
}

func (g *gatedService) SaveAnswer(ctx context.Context, date, answer string) error {
	g.wait(ctx, bloomtest.OpSaveAnswer)
	return g.Service.SaveAnswer(ctx, date, answer)
}

func (g *gatedService) UpdateDoneItem(ctx context.Context, id int64, patch bloom.DoneItemPatch) error {
	g.wait(ctx, bloomtest.OpUpdateDoneItem)
	return g.Service.UpdateDoneItem(ctx, id, patch)
}

func taskIDs(tasks []Task) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}
