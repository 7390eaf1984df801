//go:build !(linux || openbsd || darwin || freebsd || netbsd || windows)

package fsutil

import (
	"io/fs"
	"time"
)

func accessTime(fs.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
