package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/bloom/internal/bloom"
	"github.com/five82/bloom/internal/config"
	"github.com/five82/bloom/internal/diary"
	"github.com/five82/bloom/internal/logging"
	"github.com/five82/bloom/internal/prefs"
	"github.com/five82/bloom/internal/session"
	"github.com/five82/bloom/internal/ui"
)

// Options configure the bloom application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/bloom/prefs.toml
	// Date is the initially selected day (YYYY-MM-DD); empty selects today.
	Date string
	// Now overrides the clock. Used by tests.
	Now func() time.Time
}

// Env holds everything loaded from disk that the TUI and the CLI commands
// share.
type Env struct {
	Config   config.Config
	Logger   *logrus.Logger
	Sessions *session.Store

	now      func() time.Time
	closeLog func() error
}

// Load reads config, opens the log file and the session store.
func Load(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load bloom config: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	sessions, err := session.Open(cfg.SessionDir)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open session store: %w", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Env{
		Config:   cfg,
		Logger:   logger,
		Sessions: sessions,
		now:      now,
		closeLog: closeLog,
	}, nil
}

// Close releases the log file.
func (e *Env) Close() error {
	if e == nil || e.closeLog == nil {
		return nil
	}
	return e.closeLog()
}

// Session loads the stored session and requires it to be signed in.
func (e *Env) Session() (session.Session, error) {
	sess, err := e.Sessions.Load()
	if err != nil {
		return session.Session{}, fmt.Errorf("load session: %w", err)
	}
	if !sess.LoggedIn() {
		return session.Session{}, session.ErrNotLoggedIn
	}
	return sess, nil
}

// Client builds an API client authenticated as sess.
func (e *Env) Client(sess session.Session) (*bloom.Client, error) {
	client, err := bloom.NewClient(e.Config.APIBase, bloom.ClientOptions{
		Tokens: sess.TokenSource(),
		Logger: e.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init bloom client: %w", err)
	}
	return client, nil
}

// NewScreen builds a diary screen for the signed-in user. date may be empty
// for today.
func (e *Env) NewScreen(notifier diary.Notifier, date string) (*diary.Screen, error) {
	sess, err := e.Session()
	if err != nil {
		return nil, err
	}
	client, err := e.Client(sess)
	if err != nil {
		return nil, err
	}

	var selected time.Time
	if strings.TrimSpace(date) != "" {
		selected, err = bloom.ParseDate(date)
		if err != nil {
			return nil, err
		}
	}

	return diary.NewScreen(diary.Options{
		API:      client,
		Notifier: notifier,
		Logger:   e.Logger,
		User:     sess.User(),
		Now:      e.now,
		Date:     selected,
	}), nil
}

// Run boots the bloom TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Load(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	notices := ui.NewNoticeQueue(16)
	screen, err := env.NewScreen(notices, opts.Date)
	if err != nil {
		return err
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	log := env.Logger.WithField("component", "app")
	log.WithField("date", screen.LocalDate()).Info("starting diary")

	// Populate the screen before the first frame. Failures are already
	// queued as notices and shown once the UI starts.
	if err := screen.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Warn("initial refresh failed")
	}

	StartRollover(ctx, screen, defaultRolloverInterval, env.Logger)

	return ui.Run(ui.Options{
		Context:         ctx,
		Screen:          screen,
		Notices:         notices,
		Logger:          env.Logger,
		ThemeName:       userPrefs.Theme,
		HideEmptyAnswer: userPrefs.HideEmptyAnswer,
		PrefsPath:       opts.PrefsPath,
	})
}
