package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"interview-backend/internal/shared/auth"
)

// Profile is the signed-in user as stored alongside the token.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type state struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Store persists the auth token and user profile across recorder runs. It is
// a single JSON file under the user's config directory.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a session store at path. An empty path defaults to
// ~/.config/interview-recorder/session.json.
func NewStore(path string) (*Store, error) {
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(base, "interview-recorder", "session.json")
	}
	return &Store{path: path, now: time.Now}, nil
}

// GetToken returns the stored token, or empty when no token is stored or the
// stored token has expired. Callers redirect to login on empty.
func (s *Store) GetToken() string {
	st, err := s.load()
	if err != nil || st.Token == "" {
		return ""
	}
	if auth.IsExpired(st.Token, s.now()) {
		return ""
	}
	return st.Token
}

// User returns the stored profile. A zero Profile means nobody is signed in.
func (s *Store) User() Profile {
	st, err := s.load()
	if err != nil {
		return Profile{}
	}
	return st.User
}

// Save stores the token and profile, replacing any prior session.
func (s *Store) Save(token string, user Profile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	payload, err := json.Marshal(state{Token: token, User: user})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the stored session.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) load() (state, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return state{}, err
	}
	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return state{}, fmt.Errorf("parse session: %w", err)
	}
	return st, nil
}
