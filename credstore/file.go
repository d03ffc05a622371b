package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spaolacci/murmur3"
)

// FileStore keeps one JSON file per account under dir. Files carry live
// cookies and bearer tokens, so everything is written 0600 under a 0700
// dir.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. Empty dir defaults to
// ~/.config/valgo/sessions.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".config", "valgo", "sessions")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) Load(username string) (*Session, error) {
	b, err := os.ReadFile(fs.path(username))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s := &Session{}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("corrupt session file: %w", err)
	}
	return s, nil
}

func (fs *FileStore) Save(username string, s *Session) error {
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now()
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.path(username), b, 0600)
}

func (fs *FileStore) Delete(username string) error {
	err := os.Remove(fs.path(username))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// path derives a stable, non-reversible filename for a username.
func (fs *FileStore) path(username string) string {
	h := murmur3.Sum64([]byte(username))
	return filepath.Join(fs.dir, fmt.Sprintf("%016x.json", h))
}
