// Package lock keeps two pagegen runs from writing into the same pages root
// at once.
package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by Acquire when another run holds the lock.
var ErrLocked = errors.New("another pagegen run is using this root")

// FileLock wraps gofrs/flock for a pages root.
type FileLock struct {
	fl   *flock.Flock
	path string
}

// New returns the lock for root, stored in the OS temp dir as pagegen_<hash>.lock.
func New(root string) *FileLock {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	sum := sha256.Sum256([]byte(abs))
	name := filepath.Join(os.TempDir(), fmt.Sprintf("pagegen_%s.lock", hex.EncodeToString(sum[:8])))
	return &FileLock{fl: flock.New(name), path: name}
}

// Path returns the lock file location.
func (l *FileLock) Path() string { return l.path }

// TryLock attempts non-blocking lock.
func (l *FileLock) TryLock() (bool, error) {
	return l.fl.TryLock()
}

// Acquire takes the lock or fails with ErrLocked.
func (l *FileLock) Acquire() error {
	ok, err := l.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock '%s': %w", l.path, err)
	}
	if !ok {
		return fmt.Errorf("%w (lock file %s)", ErrLocked, l.path)
	}
	return nil
}

// Unlock releases the lock. The lock file stays on disk: removing it would let
// a later run lock a fresh inode while another still holds the old one.
func (l *FileLock) Unlock() error {
	return l.fl.Unlock()
}
