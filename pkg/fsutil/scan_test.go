package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), DirModeDefault))
	require.NoError(t, os.WriteFile(path, make([]byte, size), FileModeDefault))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	old := time.Now().Add(-48 * time.Hour).Truncate(time.Second)

	writeFile(t, filepath.Join(root, "lib", "net8.0", "a.dll"), 100, old)
	writeFile(t, filepath.Join(root, "pkg.nupkg"), 24, old)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty", "nested"), DirModeDefault))

	contents, err := Scan(root)
	require.NoError(t, err)

	assert.Len(t, contents.Files, 2)
	assert.Equal(t, int64(124), contents.Size)
	assert.False(t, contents.Empty())
	for _, f := range contents.Files {
		assert.True(t, f.ModTime.Equal(old), "mtime of %s", f.Path)
	}
}

func TestScan_OnlyDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b", "c"), DirModeDefault))

	contents, err := Scan(root)
	require.NoError(t, err)
	assert.True(t, contents.Empty())
	assert.Zero(t, contents.Size)
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestScan_ReadsAccessTime(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("access time assertions only run on linux and darwin")
	}

	root := t.TempDir()
	path := filepath.Join(root, "a.dll")
	writeFile(t, path, 1, time.Now())

	atime := time.Now().Add(-time.Hour).Truncate(time.Second)
	mtime := time.Now().Add(-72 * time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, atime, mtime))

	contents, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, contents.Files, 1)

	f := contents.Files[0]
	assert.True(t, f.HasAccessTime)
	assert.True(t, f.AccessTime.Equal(atime))
	assert.True(t, f.LastTouched().Equal(atime))
}

func TestFileStat_LastTouched(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		stat FileStat
		want time.Time
	}{
		{
			name: "access newer than write",
			stat: FileStat{ModTime: now.Add(-time.Hour), AccessTime: now, HasAccessTime: true},
			want: now,
		},
		{
			name: "write newer than access",
			stat: FileStat{ModTime: now, AccessTime: now.Add(-time.Hour), HasAccessTime: true},
			want: now,
		},
		{
			name: "access time unavailable",
			stat: FileStat{ModTime: now.Add(-time.Hour), AccessTime: now},
			want: now.Add(-time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.stat.LastTouched()))
		})
	}
}

func TestSubdirectories(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"2.0.0", "1.0.0", "notes"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, name), DirModeDefault))
	}
	writeFile(t, filepath.Join(root, "stray.txt"), 1, time.Now())

	dirs, err := Subdirectories(root)
	require.NoError(t, err)

	names := make([]string, 0, len(dirs))
	for _, d := range dirs {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"1.0.0", "2.0.0", "notes"}, names)
}

func TestIsDir(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file")
	writeFile(t, file, 1, time.Now())

	assert.True(t, IsDir(root))
	assert.False(t, IsDir(file))
	assert.False(t, IsDir(filepath.Join(root, "missing")))
}
