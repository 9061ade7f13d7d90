package ui

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"a longer title", 8, "a lon..."},
		{"abcdef", 3, "abc"},
		{"no limit", 0, "no limit"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("\n  \n second \nthird"); got != "second" {
		t.Fatalf("firstLine = %q, want second", got)
	}
	if got := firstLine(""); got != "" {
		t.Fatalf("firstLine(empty) = %q", got)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, 0, 3); got != 3 {
		t.Fatalf("clamp high = %d", got)
	}
	if got := clamp(-1, 0, 3); got != 0 {
		t.Fatalf("clamp low = %d", got)
	}
	if got := clamp(2, 0, -1); got != 0 {
		t.Fatalf("clamp empty range = %d", got)
	}
}

func TestBgStyleJoinSkipsEmpty(t *testing.T) {
	bg := NewBgStyle("#000000")
	got := bg.Join([]string{"a", "", "b"}, "|")
	if strings.Count(got, "|") != 1 {
		t.Fatalf("Join = %q, want a single separator", got)
	}
}

func TestFitLimit(t *testing.T) {
	if got := fitLimit(5, "abc"); got != 5 {
		t.Fatalf("fitLimit short = %d, want 5", got)
	}
	if got := fitLimit(3, "héllo"); got != 5 {
		t.Fatalf("fitLimit long = %d, want 5", got)
	}
}
