// Package lock implements the single-instance advisory file lock that
// prevents two overlapping runs of the workflow engine. It is acquire-or-
// fail, never a PID file, and relies on the OS to release the lock if the
// process dies (see Design Notes).
package lock

import (
	"fmt"

	"github.com/gofrs/flock"

	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

// LockFile is a thin wrapper over gofrs/flock.
type LockFile struct {
	path  string
	flock *flock.Flock
}

// New returns a LockFile for the given path. The file is not touched
// until TryLock is called.
func New(path string) *LockFile {
	return &LockFile{path: path, flock: flock.New(path)}
}

// TryLock attempts to acquire the lock without blocking. It returns
// errors.ConcurrentExecutionError if another process already holds it.
func (l *LockFile) TryLock() error {
	locked, err := l.flock.TryLock()
	if err != nil {
		return bonderrors.NewConcurrentExecutionError(l.path, err)
	}
	if !locked {
		return bonderrors.NewConcurrentExecutionError(l.path, fmt.Errorf("lock held by another process"))
	}
	return nil
}

// Unlock releases the lock. Safe to call even if TryLock never
// succeeded.
func (l *LockFile) Unlock() error {
	if !l.flock.Locked() {
		return nil
	}
	return l.flock.Unlock()
}

// Path returns the lock file's path, used in diagnostics.
func (l *LockFile) Path() string { return l.path }
