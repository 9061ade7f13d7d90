// Package session stores the signed-in user's tokens and nickname on disk.
//
// Each value is one diskv key (accessToken, refreshToken, nickname) under the
// configured session directory, written with owner-only permissions.
package session

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"golang.org/x/oauth2"

	"github.com/five82/bloom/internal/diary"
)

// Storage keys.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyNickname     = "nickname"
)

// ErrNotLoggedIn reports a session without an access token.
var ErrNotLoggedIn = errors.New("not logged in; run `bloom login`")

// Session is the persisted sign-in state.
type Session struct {
	AccessToken  string
	RefreshToken string
	Nickname     string
}

// LoggedIn reports whether an access token is present.
func (s Session) LoggedIn() bool {
	return strings.TrimSpace(s.AccessToken) != ""
}

// User returns the diary user for this session.
func (s Session) User() diary.User {
	return diary.User{Nickname: s.Nickname}
}

// Token converts the session into an oauth2 bearer token.
func (s Session) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    "Bearer",
	}
}

// TokenSource returns a source that always yields the stored token. The API
// has no refresh endpoint, so an expired token means logging in again.
func (s Session) TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(s.Token())
}

// Store reads and writes a Session in a directory.
type Store struct {
	d   *diskv.Diskv
	dir string
}

// Open returns a Store rooted at dir. The directory is created on first write.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("session dir is empty")
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 4 * 1024,
			FilePerm:     0o600,
			PathPerm:     0o700,
		}),
		dir: dir,
	}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string { return s.dir }

// Load reads the session. Missing keys load as empty strings.
func (s *Store) Load() (Session, error) {
	var sess Session
	for key, dest := range map[string]*string{
		KeyAccessToken:  &sess.AccessToken,
		KeyRefreshToken: &sess.RefreshToken,
		KeyNickname:     &sess.Nickname,
	} {
		v, err := s.read(key)
		if err != nil {
			return Session{}, err
		}
		*dest = v
	}
	return sess, nil
}

// Save writes every field of sess. Empty fields are erased.
func (s *Store) Save(sess Session) error {
	for key, v := range map[string]string{
		KeyAccessToken:  sess.AccessToken,
		KeyRefreshToken: sess.RefreshToken,
		KeyNickname:     sess.Nickname,
	} {
		if v == "" {
			if err := s.erase(key); err != nil {
				return err
			}
			continue
		}
		if err := s.d.WriteString(key, v); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
	}
	return nil
}

// Clear removes the stored tokens. The nickname is kept and offered as the
// default by the next login.
func (s *Store) Clear() error {
	if err := s.erase(KeyAccessToken); err != nil {
		return err
	}
	return s.erase(KeyRefreshToken)
}

func (s *Store) read(key string) (string, error) {
	if !s.d.Has(key) {
		return "", nil
	}
	// Direct reads skip the cache; another process may have rewritten the key.
	rc, err := s.d.ReadStream(key, true)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	defer rc.Close()
	v, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return strings.TrimSpace(string(v)), nil
}

func (s *Store) erase(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("erase %s: %w", key, err)
	}
	return nil
}
