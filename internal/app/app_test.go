package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/five82/bloom/internal/bloom/bloomtest"
	"github.com/five82/bloom/internal/session"
)

func writeConfig(t *testing.T, apiBase string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	sessionDir := filepath.Join(dir, "session")
	path := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("api_base = %q\nsession_dir = %q\nlog_file = %q\n",
		apiBase, sessionDir, filepath.Join(dir, "bloom.log"))
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path, sessionDir
}

func TestEnv_SessionRequiresLogin(t *testing.T) {
	t.Setenv("BLOOM_LOG_LEVEL", "")
	path, _ := writeConfig(t, "http://127.0.0.1:1")
	env, err := Load(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	defer env.Close()

	if _, err := env.Session(); !errors.Is(err, session.ErrNotLoggedIn) {
		t.Fatalf("Session error = %v, want ErrNotLoggedIn", err)
	}
	if _, err := env.NewScreen(nil, ""); !errors.Is(err, session.ErrNotLoggedIn) {
		t.Fatalf("NewScreen error = %v, want ErrNotLoggedIn", err)
	}
}

func TestEnv_NewScreenUsesSession(t *testing.T) {
	t.Setenv("BLOOM_LOG_LEVEL", "")
	srv := bloomtest.NewServer(t)
	srv.Token = "token-1"
	srv.SetQuestion("2024-03-01", "Q", "A")
	srv.AddItem("2024-03-01", "Run", "")

	path, _ := writeConfig(t, srv.URL)
	env, err := Load(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	defer env.Close()
	if err := env.Sessions.Save(session.Session{AccessToken: "token-1", Nickname: "mina"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	screen, err := env.NewScreen(nil, "2024-03-01")
	if err != nil {
		t.Fatalf("NewScreen returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := screen.Refresh(ctx); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	snap := screen.Snapshot()
	if snap.User.Nickname != "mina" || snap.Question != "Q" || len(snap.Tasks) != 1 {
		t.Fatalf("snapshot = %#v", snap)
	}
}

func TestEnv_NewScreenRejectsBadDate(t *testing.T) {
	t.Setenv("BLOOM_LOG_LEVEL", "")
	path, _ := writeConfig(t, "http://127.0.0.1:1")
	env, err := Load(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	defer env.Close()
	if err := env.Sessions.Save(session.Session{AccessToken: "t"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := env.NewScreen(nil, "03/01/2024"); err == nil {
		t.Fatal("NewScreen returned nil error for malformed date")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_base = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(Options{ConfigPath: path}); err == nil {
		t.Fatal("Load returned nil error for invalid config")
	}
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
