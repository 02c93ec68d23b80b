package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/shared"
)

// fileRecord is the on-disk value for one user, keyed by username in the document.
type fileRecord struct {
	Password string `json:"password"`
}

// FileUserStore implements [UserStore] on a single JSON document.
//
// Every write rewrites the whole file. The mutex serializes writers in this process only;
// another process editing the same file can still lose updates.
type FileUserStore struct {
	path string
	mu   sync.Mutex
}

// OpenFileUserStore opens the document at path, creating it as "{}" when missing.
func OpenFileUserStore(path string) (*FileUserStore, error) {
	s := &FileUserStore{path: path}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.save(map[string]fileRecord{}); err != nil {
			return nil, fmt.Errorf("failed to create users file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat users file: %w", err)
	}

	if _, err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Path returns the backing file path.
func (s *FileUserStore) Path() string { return s.path }

func (s *FileUserStore) load() (map[string]fileRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	users := map[string]fileRecord{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users file %s: %w", s.path, err)
	}
	return users, nil
}

// save rewrites the whole document through a temp file and rename.
func (s *FileUserStore) save(users map[string]fileRecord) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write users: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("failed to chmod users file: %w", err)
	}

	return os.Rename(tmp.Name(), s.path)
}

func (s *FileUserStore) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := validate(username, password); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}

	if _, exists := users[username]; exists {
		return nil, fmt.Errorf("%w: %s", shared.ErrConflict, username)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	users[username] = fileRecord{Password: hash}
	if err := s.save(users); err != nil {
		return nil, err
	}

	return &models.User{Username: username, PasswordHash: hash, CreatedAt: time.Now()}, nil
}

func (s *FileUserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.Get(ctx, username)
	if errors.Is(err, shared.ErrUserNotFound) {
		return nil, shared.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return verify(u, password)
}

func (s *FileUserStore) Get(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	users, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	rec, ok := users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, username)
	}
	return &models.User{Username: username, PasswordHash: rec.Password}, nil
}
