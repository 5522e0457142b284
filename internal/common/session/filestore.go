package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultSessionFile is the default name of the session file.
const DefaultSessionFile = "session.yaml"

// sessionFile is the on-disk representation of a session.
type sessionFile struct {
	Version string `yaml:"version"`
	Token   string `yaml:"token"`
}

// FileStore is a Store backed by a YAML file in the user's config directory,
// so a session survives across CLI invocations. An unreadable or missing
// file degrades to "no session" rather than failing: the worst outcome of a
// lost session file is a forced re-login.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultSessionPath returns the default path for the session file.
// It uses the OS-specific config directory (e.g., ~/.config/mirador on Linux).
func DefaultSessionPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "mirador", DefaultSessionFile), nil
}

// NewFileStore creates a file-backed store at the given path.
// If path is empty, the default session path is used.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultSessionPath()
		if err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path}, nil
}

// Token returns the persisted token, or "" when the file is missing,
// unreadable, or malformed.
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().Token
}

// SetToken persists the token, overwriting any prior value.
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(sessionFile{Version: "v1", Token: token})
}

// Clear removes the persisted token. Clearing an absent session is a no-op.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return s.write(sessionFile{Version: "v1"})
}

// IsAuthenticated reports whether a token is present.
func (s *FileStore) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *FileStore) read() sessionFile {
	var sf sessionFile
	data, err := os.ReadFile(s.path)
	if err != nil {
		return sf
	}
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return sessionFile{}
	}
	return sf
}

func (s *FileStore) write(sf sessionFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return fmt.Errorf("unable to create session directory: %w", err)
	}
	data, err := yaml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("unable to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, os.FileMode(0600)); err != nil {
		return fmt.Errorf("unable to write session file: %w", err)
	}
	return nil
}

var _ Store = &FileStore{}
