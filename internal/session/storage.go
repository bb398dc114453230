package session

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	tokenFile = "auth_token"
	userFile  = "user_data.json"
)

// Storage persists the credential pair. The token and the user record are
// always written together and cleared together.
type Storage interface {
	Save(token string, user []byte) error
	Load() (token string, user []byte, err error)
	Clear() error
}

// FileStorage keeps the two keys as flat files under a state directory.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (s *FileStorage) Save(token string, user []byte) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), user, 0o600)
}

// Load returns empty values when either key is absent, so a half-written
// pair reads as signed out.
func (s *FileStorage) Load() (string, []byte, error) {
	token, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, err
	}

	user, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, err
	}

	return strings.TrimSpace(string(token)), user, nil
}

func (s *FileStorage) Clear() error {
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Token satisfies the transport's credential source.
func (s *FileStorage) Token() string {
	token, _, err := s.Load()
	if err != nil {
		return ""
	}
	return token
}
