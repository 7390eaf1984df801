package cache

import (
	"path/filepath"

	"github.com/glorpus-work/nugetclean/pkg/errors"
	"github.com/glorpus-work/nugetclean/pkg/fsutil"
)

// Inspect returns information about the cache below root without changing it.
// A root that is missing or is not a directory yields an empty Info.
func Inspect(root string) (*Info, error) {
	if root == "" {
		return nil, errors.ErrCacheDirectory
	}

	info := &Info{Directory: root}
	if !fsutil.IsDir(root) {
		return info, nil
	}

	w := &Walker{Root: root}
	packages, err := w.packageDirs()
	if err != nil {
		return nil, err
	}

	toolsDir := filepath.Join(root, fsutil.ToolsDirName)
	for _, pkgDir := range packages {
		versions, err := fsutil.Subdirectories(pkgDir)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get cache info for %s", pkgDir)
		}

		info.Packages++
		if filepath.Dir(pkgDir) == toolsDir {
			info.ToolPackages++
		}
		info.Versions += len(versions)

		contents, err := fsutil.Scan(pkgDir)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get cache info for %s", pkgDir)
		}
		info.TotalSize += contents.Size
	}

	return info, nil
}
