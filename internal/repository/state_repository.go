package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/compozy/releasetag/internal/domain"
	"github.com/gofrs/flock"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
)

const (
	// StateSchemaVersion defines the current schema version for journal files
	StateSchemaVersion = "1.0.0"
	// DefaultStateDir is where journals live relative to the working tree
	DefaultStateDir = ".release-state"
	// StateFilePermissions defines the permissions for journal files
	StateFilePermissions = 0600
	// StateDirPermissions defines the permissions for the journal directory
	StateDirPermissions = 0700
	// LockTimeout defines the maximum time to wait for a lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// ErrStateNotFound is returned when no journal exists for a session
var ErrStateNotFound = errors.New("session state not found")

var errLockBusy = errors.New("lock is held by another process")

// StateRepository defines the interface for storing tagging session journals
type StateRepository interface {
	Save(ctx context.Context, state *domain.SessionState) error
	Load(ctx context.Context, sessionID string) (*domain.SessionState, error)
	LoadLatest(ctx context.Context) (*domain.SessionState, error)
	Delete(ctx context.Context, sessionID string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
}

// StateMetadata contains metadata about the journal file
type StateMetadata struct {
	SchemaVersion string    `json:"schema_version"`
	Checksum      string    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StateWrapper wraps the journal with metadata
type StateWrapper struct {
	Metadata StateMetadata        `json:"metadata"`
	State    *domain.SessionState `json:"state"`
}

// fileLock is the subset of flock.Flock the repository needs
type fileLock interface {
	TryLock() (bool, error)
	TryRLock() (bool, error)
	Unlock() error
}

// JSONStateRepository implements StateRepository using JSON file storage
type JSONStateRepository struct {
	fs       afero.Fs
	stateDir string
	newLock  func(path string) fileLock
	mu       sync.RWMutex
}

// NewJSONStateRepository creates a new JSON-based state repository. File locks
// are taken on the OS filesystem unless fs is in memory.
func NewJSONStateRepository(fs afero.Fs, stateDir string) StateRepository {
	if stateDir == "" {
		stateDir = DefaultStateDir
	}
	r := &JSONStateRepository{
		fs:       fs,
		stateDir: stateDir,
		newLock:  func(path string) fileLock { return flock.New(path) },
	}
	if _, ok := fs.(*afero.MemMapFs); ok {
		r.newLock = newMemLocker()
	}
	return r
}

// Save persists the journal to a JSON file with proper locking
func (r *JSONStateRepository) Save(ctx context.Context, state *domain.SessionState) error {
	if err := r.ensureStateDir(); err != nil {
		return fmt.Errorf("failed to ensure state directory: %w", err)
	}
	filename := r.getStateFilename(state.SessionID)
	unlock, err := r.lock(ctx, state.SessionID, false)
	if err != nil {
		return err
	}
	defer unlock()
	wrapper := StateWrapper{
		Metadata: StateMetadata{
			SchemaVersion: StateSchemaVersion,
			CreatedAt:     state.StartedAt,
			UpdatedAt:     time.Now(),
		},
		State: state,
	}
	stateData, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state for checksum: %w", err)
	}
	wrapper.Metadata.Checksum = r.calculateChecksum(stateData)
	data, err := json.MarshalIndent(wrapper, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state wrapper: %w", err)
	}
	if err := r.writeAtomic(filename, data); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := r.updateLatestLink(filename); err != nil {
		return fmt.Errorf("failed to update latest link: %w", err)
	}
	return nil
}

// Load retrieves a journal by session ID, validating schema and checksum
func (r *JSONStateRepository) Load(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	filename := r.getStateFilename(sessionID)
	if exists, err := afero.Exists(r.fs, filename); err != nil {
		return nil, fmt.Errorf("failed to check state file: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrStateNotFound)
	}
	unlock, err := r.lock(ctx, sessionID, true)
	if err != nil {
		return nil, err
	}
	defer unlock()
	data, err := afero.ReadFile(r.fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	var wrapper StateWrapper
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state wrapper: %w", err)
	}
	if wrapper.Metadata.SchemaVersion != StateSchemaVersion {
		return nil, fmt.Errorf("incompatible schema version: expected %s, got %s",
			StateSchemaVersion, wrapper.Metadata.SchemaVersion)
	}
	stateData, err := json.Marshal(wrapper.State)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state for checksum validation: %w", err)
	}
	if wrapper.Metadata.Checksum != r.calculateChecksum(stateData) {
		return nil, fmt.Errorf("state checksum mismatch: data may be corrupted")
	}
	return wrapper.State, nil
}

// LoadLatest retrieves the most recently saved journal
func (r *JSONStateRepository) LoadLatest(ctx context.Context) (*domain.SessionState, error) {
	r.mu.RLock()
	data, err := afero.ReadFile(r.fs, r.getLatestLink())
	r.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no latest session: %w", ErrStateNotFound)
		}
		return nil, fmt.Errorf("failed to read latest link: %w", err)
	}
	sessionID := r.extractSessionID(string(data))
	if sessionID == "" {
		return nil, fmt.Errorf("invalid latest link target: %s", string(data))
	}
	return r.Load(ctx, sessionID)
}

// Delete removes a journal
func (r *JSONStateRepository) Delete(ctx context.Context, sessionID string) error {
	unlock, err := r.lock(ctx, sessionID, false)
	if err != nil {
		return err
	}
	defer unlock()
	if err := r.fs.Remove(r.getStateFilename(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}
	// Lock file cleanup is best effort
	_ = r.fs.Remove(r.getLockFilename(sessionID))
	return nil
}

// Exists checks if a journal exists
func (r *JSONStateRepository) Exists(_ context.Context, sessionID string) (bool, error) {
	exists, err := afero.Exists(r.fs, r.getStateFilename(sessionID))
	if err != nil {
		return false, fmt.Errorf("failed to check state file: %w", err)
	}
	return exists, nil
}

// lock acquires the per-session lock, retrying until LockTimeout
func (r *JSONStateRepository) lock(ctx context.Context, sessionID string, shared bool) (func(), error) {
	if err := r.ensureStateDir(); err != nil {
		return nil, fmt.Errorf("failed to ensure state directory: %w", err)
	}
	lock := r.newLock(r.getLockFilename(sessionID))
	backoff := retry.WithMaxDuration(LockTimeout, retry.NewConstant(LockRetryInterval))
	err := retry.Do(ctx, backoff, func(_ context.Context) error {
		tryLock := lock.TryLock
		if shared {
			tryLock = lock.TryRLock
		}
		locked, err := tryLock()
		if err != nil {
			return err
		}
		if !locked {
			return retry.RetryableError(errLockBusy)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock for session %s: %w", sessionID, err)
	}
	return func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock file: %v\n", unlockErr)
		}
	}, nil
}

// writeAtomic writes data to a temp file and renames it into place
func (r *JSONStateRepository) writeAtomic(filename string, data []byte) error {
	tempFile := filename + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, StateFilePermissions); err != nil {
		return err
	}
	if err := r.fs.Rename(tempFile, filename); err != nil {
		_ = r.fs.Remove(tempFile)
		return err
	}
	return nil
}

// calculateChecksum calculates SHA-256 checksum of data
func (r *JSONStateRepository) calculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (r *JSONStateRepository) ensureStateDir() error {
	return r.fs.MkdirAll(r.stateDir, StateDirPermissions)
}

func (r *JSONStateRepository) getStateFilename(sessionID string) string {
	return filepath.Join(r.stateDir, fmt.Sprintf("session-%s.json", sessionID))
}

func (r *JSONStateRepository) getLockFilename(sessionID string) string {
	return filepath.Join(r.stateDir, fmt.Sprintf(".session-%s.lock", sessionID))
}

func (r *JSONStateRepository) getLatestLink() string {
	return filepath.Join(r.stateDir, "latest.txt")
}

func (r *JSONStateRepository) updateLatestLink(target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeAtomic(r.getLatestLink(), []byte(target))
}

// extractSessionID extracts the session ID from a journal filename
func (r *JSONStateRepository) extractSessionID(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if strings.HasPrefix(base, "session-") && strings.HasSuffix(base, ".json") {
		return strings.TrimSuffix(strings.TrimPrefix(base, "session-"), ".json")
	}
	return ""
}

// newMemLocker returns a lock factory that hands out one memLock per path, so
// callers locking the same session contend like they would on flock.
func newMemLocker() func(path string) fileLock {
	var mu sync.Mutex
	locks := make(map[string]*memLock)
	return func(path string) fileLock {
		mu.Lock()
		defer mu.Unlock()
		l, ok := locks[path]
		if !ok {
			l = &memLock{}
			locks[path] = l
		}
		return l
	}
}

// memLock stands in for flock on in-memory filesystems
type memLock struct {
	mu     sync.Mutex
	locked bool
}

func (l *memLock) TryLock() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked {
		return false, nil
	}
	l.locked = true
	return true, nil
}

func (l *memLock) TryRLock() (bool, error) {
	return l.TryLock()
}

func (l *memLock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked = false
	return nil
}
