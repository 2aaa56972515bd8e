package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrNoSession means there is no stored, still-valid login.
var ErrNoSession = errors.New("no valid session (login required)")

// Session is what the CLI persists between runs.
type Session struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	SavedAt     time.Time `json:"saved_at"`
}

// Store keeps a Session as a JSON file under a config directory.
type Store struct{ dir string }

// NewStore stores under dir; empty dir means DefaultDir().
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// DefaultDir is $XDG_CONFIG_HOME/tonefit or ~/.config/tonefit.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tonefit")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tonefit")
}

// Path is the session file location.
func (s *Store) Path() string { return filepath.Join(s.dir, "session.json") }

// Save writes the session with owner-only permissions.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	if sess.SavedAt.IsZero() {
		sess.SavedAt = time.Now().UTC()
	}
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path(), b, 0o600)
}

// Load reads the stored session; a missing or empty file yields ErrNoSession.
func (s *Store) Load() (Session, error) {
	b, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return Session{}, err
	}
	if sess.AccessToken == "" {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Clear removes the stored session. Clearing twice is fine.
func (s *Store) Clear() error {
	err := os.Remove(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Restore loads the stored session into c and re-validates it with the server.
// Any failure to confirm the token clears the store and yields ErrNoSession.
func Restore(ctx context.Context, c *Client, st *Store) (Session, error) {
	sess, err := st.Load()
	if err != nil {
		return Session{}, err
	}
	c.SetToken(sess.AccessToken)
	u, err := c.Me(ctx)
	if err != nil {
		c.SetToken("")
		if cerr := st.Clear(); cerr != nil {
			return Session{}, cerr
		}
		return Session{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	sess.UserID, sess.Email = u.ID, u.Email
	return sess, nil
}

// LoginAndSave logs in, fetches the account and persists the session.
func LoginAndSave(ctx context.Context, c *Client, st *Store, email, password string) (Session, error) {
	tok, err := c.Login(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	u, err := c.Me(ctx)
	if err != nil {
		return Session{}, err
	}
	sess := Session{AccessToken: tok.AccessToken, UserID: u.ID, Email: u.Email}
	if err := st.Save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}
