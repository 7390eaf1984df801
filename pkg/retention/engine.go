// Package retention decides which version directories of a package survive a
// cleaning run and removes the rest.
//
// Cleaning one package runs as a pipeline: Discover reads the version
// directories from disk, BuildPlan decides every directory's fate without
// touching the filesystem, and Engine.Execute hands each planned removal to the
// Deleter exactly once. Progress is reported through Hooks rather than printed.
package retention

import (
	"fmt"
	"path/filepath"

	"github.com/glorpus-work/nugetclean/internal/logger"
	"github.com/glorpus-work/nugetclean/pkg/age"
	"github.com/glorpus-work/nugetclean/pkg/deleter"
	"github.com/glorpus-work/nugetclean/pkg/errors"
	"github.com/glorpus-work/nugetclean/pkg/fsutil"
	"github.com/glorpus-work/nugetclean/pkg/semver"
)

// Deleter removes (or simulates removing) one directory.
type Deleter interface {
	Delete(dir string, size int64, lockCheck bool) deleter.Result
}

// Discovery is what Discover found below a package directory.
type Discovery struct {
	Versions []VersionDir
	Skipped  []Skipped
}

// Discover parses the immediate subdirectories of pkgDir as versions and scans
// their content. Names that are not versions, and directories whose content
// cannot be listed, are returned as skipped and take no further part.
func Discover(pkgDir string) (*Discovery, error) {
	children, err := fsutil.Subdirectories(pkgDir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errors.ErrPackageList, pkgDir, err)
	}

	found := &Discovery{}
	for _, child := range children {
		path := filepath.Join(pkgDir, child.Name())

		v, err := semver.Parse(child.Name())
		if err != nil {
			found.Skipped = append(found.Skipped, Skipped{Path: path, Err: err})
			continue
		}

		contents, err := fsutil.Scan(path)
		if err != nil {
			found.Skipped = append(found.Skipped, Skipped{Path: path, Err: err})
			continue
		}

		found.Versions = append(found.Versions, VersionDir{
			Path:      path,
			Version:   v,
			Size:      contents.Size,
			FileCount: len(contents.Files),
			LastUsed:  age.LastUsed(contents.Files),
		})
	}

	return found, nil
}

// Engine cleans package directories one at a time.
type Engine struct {
	Policy  Policy
	Deleter Deleter
	Hooks   Hooks
}

// NewEngine creates an Engine.
func NewEngine(policy Policy, d Deleter, hooks Hooks) *Engine {
	return &Engine{Policy: policy, Deleter: d, Hooks: hooks}
}

// CleanPackage runs discovery, planning and execution for pkgDir. Failures are
// recorded in the result and reported as events; they never stop the caller.
func (e *Engine) CleanPackage(pkgDir string) *PackageResult {
	log := logger.WithComponent("retention").WithField("package", pkgDir)
	result := &PackageResult{Path: pkgDir}

	found, err := Discover(pkgDir)
	if err != nil {
		result.Err = err
		e.Hooks.Emit(Event{Kind: EventFailed, Path: pkgDir, Outcome: deleter.Failed, Err: err})
		return result
	}

	for _, s := range found.Skipped {
		e.Hooks.Emit(Event{Kind: EventSkipped, Path: s.Path, Err: s.Err})
	}
	result.Skipped = found.Skipped

	result.Plan = BuildPlan(pkgDir, found.Versions, e.Policy)
	log.WithField("decisions", len(result.Plan.Decisions)).
		WithField("planned_bytes", result.Plan.Bytes()).
		Debug("plan built")

	e.Execute(result)
	e.removeIfEmpty(result)

	return result
}

// Execute carries out the removals of result.Plan and fills in the byte total.
func (e *Engine) Execute(result *PackageResult) {
	for _, d := range result.Plan.Deletions() {
		if d.Reason == ReasonAgedOut {
			e.Hooks.Emit(Event{Kind: EventAged, Path: d.Dir.Path, Reason: d.Reason, Age: d.Age})
		}

		size := int64(0)
		if d.Reason.Counted() {
			size = d.Dir.Size
		}

		res := e.remove(d.Dir.Path, d.Reason, size, d.Reason.lockCheck())
		if res.Counted() {
			result.Removed = append(result.Removed, res)
			result.Freed += res.Freed
		} else if res.Outcome != deleter.AlreadyGone {
			result.Failures = append(result.Failures, res)
		}
	}
}

func (e *Engine) removeIfEmpty(result *PackageResult) {
	children, err := fsutil.Subdirectories(result.Path)
	if err != nil || len(children) > 0 {
		return
	}

	res := e.remove(result.Path, ReasonEmptyPackage, 0, false)
	switch {
	case res.Counted():
		result.PackageRemoved = true
	case res.Outcome != deleter.AlreadyGone:
		result.Failures = append(result.Failures, res)
	}
}

func (e *Engine) remove(path string, reason Reason, size int64, lockCheck bool) deleter.Result {
	e.Hooks.Emit(Event{Kind: EventRemoving, Path: path, Reason: reason, Size: size})

	res := e.Deleter.Delete(path, size, lockCheck)
	switch res.Outcome {
	case deleter.Unauthorized, deleter.Failed:
		e.Hooks.Emit(Event{Kind: EventFailed, Path: path, Reason: reason, Outcome: res.Outcome, Err: res.Err})
	case deleter.AlreadyGone:
		logger.WithComponent("retention").WithField("path", path).Debug("already removed")
	}
	return res
}
