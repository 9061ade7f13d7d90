package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/bloom/internal/bloom"
)

// resolveDate turns a --date value into a scoped date. Empty and "today"
// return "" so the caller follows the clock.
func resolveDate(value string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return "", nil
	case "yesterday":
		return bloom.LocalDate(now.AddDate(0, 0, -1)), nil
	}
	t, err := bloom.ParseDate(value)
	if err != nil {
		return "", fmt.Errorf("invalid --date %q: %w", value, err)
	}
	return bloom.LocalDate(t), nil
}
