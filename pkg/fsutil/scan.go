package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileStat is the metadata of one regular file inside a version directory.
type FileStat struct {
	Path    string
	Size    int64
	ModTime time.Time
	// AccessTime is only meaningful when HasAccessTime is true.
	AccessTime    time.Time
	HasAccessTime bool
}

// LastTouched returns the later of the access and modification times,
// or the modification time alone when the access time is unknown.
func (f FileStat) LastTouched() time.Time {
	if f.HasAccessTime && f.AccessTime.After(f.ModTime) {
		return f.AccessTime
	}
	return f.ModTime
}

// Contents is the recursive file listing of a directory.
type Contents struct {
	Files []FileStat
	Size  int64
}

// Empty reports whether the directory holds no files at any depth.
func (c *Contents) Empty() bool {
	return len(c.Files) == 0
}

// Scan lists every non-directory entry below dir.
// Entries that vanish between listing and stat are skipped.
func Scan(dir string) (*Contents, error) {
	contents := &Contents{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		stat := FileStat{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		stat.AccessTime, stat.HasAccessTime = accessTime(info)

		contents.Files = append(contents.Files, stat)
		contents.Size += stat.Size
		return nil
	})
	if err != nil {
		return nil, err
	}

	return contents, nil
}

// Subdirectories returns the immediate child directories of dir in name order.
func Subdirectories(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	dirs := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry)
		}
	}
	return dirs, nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
