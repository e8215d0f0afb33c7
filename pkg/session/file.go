package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/errors"
)

// FileStore is a file-based session store for CLI applications.
// Sessions are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// DefaultDir returns ~/.config/<app>/sessions, honoring XDG_CONFIG_HOME.
func DefaultDir(app string) (string, error) {
	if cfgHome := os.Getenv("XDG_CONFIG_HOME"); cfgHome != "" {
		return filepath.Join(cfgHome, app, "sessions"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", app, "sessions"), nil
}

// NewFileStore creates a new file-based session store in baseDir.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) sessionPath(sessionID string) (string, error) {
	if err := errors.ValidateFilename(sessionID); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return filepath.Join(s.baseDir, sessionID+".json"), nil
}

func (s *FileStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.sessionPath(sessionID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}

	if sess.IsExpired() {
		os.Remove(path)
		return nil, nil
	}
	return &sess, nil
}

func (s *FileStore) Set(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.sessionPath(sess.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.sessionPath(sessionID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *FileStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read session dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		if sess.IsExpired() {
			os.Remove(path)
		}
	}
	return nil
}

// Path returns the base directory for session files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)

// =============================================================================
// CLI convenience wrapper
// =============================================================================

const currentSessionID = "current"

// CurrentStore persists the CLI's current avatar in a FileStore under a
// fixed, non-expiring session.
type CurrentStore struct {
	store *FileStore
}

// NewCurrentStore wraps store.
func NewCurrentStore(store *FileStore) *CurrentStore {
	return &CurrentStore{store: store}
}

// Load returns the current avatar, or [avatar.Default] when none was saved.
func (c *CurrentStore) Load(ctx context.Context) (avatar.Config, error) {
	sess, err := c.store.Get(ctx, currentSessionID)
	if err != nil {
		return avatar.Config{}, err
	}
	if sess == nil {
		return avatar.Default(), nil
	}
	if err := sess.Avatar.Validate(); err != nil {
		return avatar.Config{}, fmt.Errorf("stored avatar: %w", err)
	}
	return sess.Avatar, nil
}

// Save replaces the current avatar.
func (c *CurrentStore) Save(ctx context.Context, cfg avatar.Config) error {
	sess, err := c.store.Get(ctx, currentSessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		sess = New(cfg, 0)
		sess.ID = currentSessionID
	}
	sess.Update(cfg, 0)
	return c.store.Set(ctx, sess)
}

// Path returns the session file path.
func (c *CurrentStore) Path() string {
	path, _ := c.store.sessionPath(currentSessionID)
	return path
}
