package checkout

import (
	"encoding/json"
	"errors"
	"os"
)

// Session is what the client keeps after a successful OTP verification.
// Logging out is discarding it; the token itself stays stateless.
type Session struct {
	UserID uint   `json:"userId"`
	Mobile string `json:"mobile"`
	Token  string `json:"token"`
}

// LoggedIn reports whether the session represents an authenticated user.
func (s *Session) LoggedIn() bool {
	return s != nil && s.UserID != 0 && s.Token != ""
}

// SessionStore persists a session between runs.
type SessionStore interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// FileSessionStore keeps the session as a JSON blob on disk.
type FileSessionStore struct {
	Path string
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{Path: path}
}

func (f *FileSessionStore) Load() (*Session, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *FileSessionStore) Save(s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, raw, 0o600)
}

func (f *FileSessionStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
