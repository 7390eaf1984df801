// Package cache walks the NuGet global packages folder and hands every package
// directory to a Cleaner.
package cache

import (
	"fmt"
	"path/filepath"

	"github.com/glorpus-work/nugetclean/internal/logger"
	"github.com/glorpus-work/nugetclean/pkg/deleter"
	"github.com/glorpus-work/nugetclean/pkg/errors"
	"github.com/glorpus-work/nugetclean/pkg/fsutil"
	"github.com/glorpus-work/nugetclean/pkg/retention"
)

// Walker cleans every package below Root, one package at a time.
type Walker struct {
	Root   string
	Engine Cleaner
	Hooks  retention.Hooks
}

// NewWalker creates a Walker.
func NewWalker(root string, engine Cleaner, hooks retention.Hooks) *Walker {
	return &Walker{Root: root, Engine: engine, Hooks: hooks}
}

// DefaultRoot returns the cache root NuGet itself would use.
func DefaultRoot() (string, error) {
	dir, err := fsutil.GetPackagesDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve the global packages folder")
	}
	return dir, nil
}

// Walk cleans all packages. A root that is missing or is not a directory is
// reported as an event and is not an error; failures inside a package never
// stop the walk.
func (w *Walker) Walk() (*Result, error) {
	if w.Root == "" {
		return nil, errors.ErrCacheDirectory
	}

	result := newResult(w.Root)
	log := logger.WithComponent("cache").WithField("root", w.Root)

	if !fsutil.IsDir(w.Root) {
		result.Missing = true
		w.Hooks.Emit(retention.Event{
			Kind: retention.EventMissingRoot,
			Path: w.Root,
			Err:  errors.Wrapf(errors.ErrCacheRootMissing, "%s", w.Root),
		})
		return result, nil
	}

	packages, err := w.packageDirs()
	if err != nil {
		return nil, err
	}
	log.WithField("packages", len(packages)).Debug("walking cache")

	for _, pkgDir := range packages {
		res := w.Engine.CleanPackage(pkgDir)
		result.add(res)
	}

	log.WithField("freed_bytes", result.Freed).Debug("walk finished")
	return result, nil
}

// packageDirs lists the package directories in name order. The children of
// .tools are packages in their own right.
func (w *Walker) packageDirs() ([]string, error) {
	children, err := fsutil.Subdirectories(w.Root)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errors.ErrPackageList, w.Root, err)
	}

	dirs := make([]string, 0, len(children))
	for _, child := range children {
		path := filepath.Join(w.Root, child.Name())
		if child.Name() != fsutil.ToolsDirName {
			dirs = append(dirs, path)
			continue
		}

		tools, err := fsutil.Subdirectories(path)
		if err != nil {
			w.Hooks.Emit(retention.Event{
				Kind:    retention.EventFailed,
				Path:    path,
				Outcome: deleter.Failed,
				Err:     fmt.Errorf("%w %s: %w", errors.ErrPackageList, path, err),
			})
			continue
		}
		for _, tool := range tools {
			dirs = append(dirs, filepath.Join(path, tool.Name()))
		}
	}
	return dirs, nil
}

func newResult(root string) *Result {
	return &Result{
		Root: root,
		Counts: Counts{
			Decisions: map[retention.Reason]int{},
			Failures:  map[deleter.Outcome]int{},
		},
	}
}

func (r *Result) add(pkg *retention.PackageResult) {
	r.Packages = append(r.Packages, pkg)
	r.Freed += pkg.Freed

	if pkg.Err != nil {
		r.Counts.Failures[deleter.Failed]++
	}
	if pkg.Plan != nil {
		for _, d := range pkg.Plan.Decisions {
			r.Counts.Decisions[d.Reason]++
		}
	}
	if pkg.PackageRemoved {
		r.Counts.Decisions[retention.ReasonEmptyPackage]++
	}
	for _, f := range pkg.Failures {
		r.Counts.Failures[f.Outcome]++
	}
}
