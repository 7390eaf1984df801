//go:generate mockgen -destination=./mocks/remover.go . Remover

// Package deleter removes cache directories, or pretends to in dry-run mode.
package deleter

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/nugetclean/pkg/errors"
	"github.com/glorpus-work/nugetclean/pkg/fsutil"
)

// Remover is the subset of filesystem calls a Deleter needs.
type Remover interface {
	Rename(oldpath, newpath string) error
	RemoveAll(path string) error
	Lstat(path string) (os.FileInfo, error)
}

// OSRemover is the Remover backed by the real filesystem.
type OSRemover struct{}

// Rename implements Remover.
func (OSRemover) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

// RemoveAll implements Remover.
func (OSRemover) RemoveAll(path string) error { return os.RemoveAll(path) }

// Lstat implements Remover.
func (OSRemover) Lstat(path string) (os.FileInfo, error) { return os.Lstat(path) }

// Outcome is what happened to a directory handed to Delete.
type Outcome string

const (
	// Deleted means the directory was removed from disk.
	Deleted Outcome = "deleted"
	// Simulated means the directory would have been removed (dry-run).
	Simulated Outcome = "simulated"
	// AlreadyGone means the directory no longer existed; nothing was done.
	AlreadyGone Outcome = "already-gone"
	// Unauthorized means the process lacked permission to remove the directory.
	Unauthorized Outcome = "unauthorized"
	// Failed covers every other failure, including a lock-check rename that failed.
	Failed Outcome = "failed"
)

// Result reports one Delete call.
type Result struct {
	Path    string
	Outcome Outcome
	// Freed is the byte count credited for the directory; zero unless Counted.
	Freed int64
	Err   error
}

// Counted reports whether the directory counts as removed for byte totals.
func (r Result) Counted() bool {
	return r.Outcome == Deleted || r.Outcome == Simulated
}

// Deleter removes directories when Commit is set and only reports otherwise.
type Deleter struct {
	Commit bool
	fs     Remover
}

// New creates a Deleter working on the real filesystem.
func New(commit bool) *Deleter {
	return NewWithRemover(commit, OSRemover{})
}

// NewWithRemover creates a Deleter using the given Remover.
func NewWithRemover(commit bool, fs Remover) *Deleter {
	return &Deleter{Commit: commit, fs: fs}
}

// Delete removes dir, crediting size bytes on success.
//
// Without Commit the filesystem is never touched and the result is Simulated.
// With lockCheck the directory is first renamed to a sibling name so that a
// directory still held open by another process fails before anything inside
// it is removed.
func (d *Deleter) Delete(dir string, size int64, lockCheck bool) Result {
	if !d.Commit {
		return Result{Path: dir, Outcome: Simulated, Freed: size}
	}

	target := dir
	if lockCheck {
		parent := filepath.Dir(dir)
		if parent == dir {
			return d.failure(dir, errors.Wrapf(errors.ErrNoParentDirectory, "lock check of %s", dir))
		}

		target = fsutil.LockProbePath(dir)
		if err := d.fs.Rename(dir, target); err != nil {
			return d.failure(dir, err)
		}
	} else if _, err := d.fs.Lstat(dir); err != nil {
		// RemoveAll succeeds on missing paths, so probe first.
		return d.failure(dir, err)
	}

	if err := d.fs.RemoveAll(target); err != nil {
		return d.failure(dir, err)
	}

	return Result{Path: dir, Outcome: Deleted, Freed: size}
}

func (d *Deleter) failure(dir string, err error) Result {
	outcome := Failed
	switch errors.Classify(err) {
	case errors.KindNotFound:
		outcome = AlreadyGone
	case errors.KindPermission:
		outcome = Unauthorized
	}
	return Result{Path: dir, Outcome: outcome, Err: err}
}
