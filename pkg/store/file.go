package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/familytower/pkg/family"
)

// FileStore keeps the snapshot as <dir>/<key>.json.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	key     string
}

// NewFileStore creates a file store. An empty baseDir defaults to
// ~/.config/familytower, an empty key to [DefaultKey].
func NewFileStore(baseDir, key string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "familytower")
	}
	if key == "" {
		key = DefaultKey
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir, key: key}, nil
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string {
	return filepath.Join(s.baseDir, s.key+".json")
}

func (s *FileStore) Load(ctx context.Context) ([]family.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	members, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return members, nil
}

// Save writes through a temp file and rename so a crash never leaves a
// truncated snapshot.
func (s *FileStore) Save(ctx context.Context, members []family.Member) error {
	data, err := Encode(members)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.baseDir, "."+s.key+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}

func (s *FileStore) Backend() string { return "file" }
func (s *FileStore) Close() error    { return nil }

var _ Store = (*FileStore)(nil)
