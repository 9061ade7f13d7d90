package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/bloom/internal/diary"
)

const defaultRolloverInterval = 30 * time.Second

// StartRollover launches a background goroutine that follows midnight: when
// the screen is showing today and the calendar day changes, it moves to the
// new day and refreshes. It returns immediately.
func StartRollover(ctx context.Context, screen *diary.Screen, interval time.Duration, logger *logrus.Logger) {
	if interval <= 0 {
		interval = defaultRolloverInterval
	}
	log := logrus.NewEntry(logrus.StandardLogger())
	if logger != nil {
		log = logger.WithField("component", "rollover")
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		today := screen.Today()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			today = rollover(ctx, screen, today, log)
		}
	}()
}

// rollover performs one check and returns the day it observed. The screen is
// left alone while an editor is open so no working copy is replaced.
func rollover(ctx context.Context, screen *diary.Screen, previous string, log *logrus.Entry) string {
	today := screen.Today()
	if today == previous {
		return today
	}
	if screen.LocalDate() != previous {
		return today
	}
	if screen.QuestionModal.Visible() || screen.TaskModal.Visible() {
		// Retry on the next tick.
		return previous
	}

	log.WithField("date", today).Info("day changed, moving to today")
	screen.GoToday()
	if err := screen.Refresh(ctx); err != nil {
		log.WithError(err).Warn("refresh after day change failed")
	}
	return today
}
