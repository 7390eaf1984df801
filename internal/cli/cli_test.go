package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glorpus-work/nugetclean/internal/logger"
	"github.com/glorpus-work/nugetclean/pkg/age"
	"github.com/glorpus-work/nugetclean/pkg/config"
	"github.com/glorpus-work/nugetclean/pkg/errors"
	"github.com/glorpus-work/nugetclean/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.SetTestOutput(io.Discard)
	code := m.Run()
	logger.UnsetTestOutput()
	os.Exit(code)
}

// execute runs the root command with an isolated config file and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	hasConfig := false
	for _, a := range args {
		if strings.HasPrefix(a, "--config") {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append(args, "--config", filepath.Join(t.TempDir(), "config.yaml"))
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeVersion(t *testing.T, dir string, size int, days int) {
	t.Helper()
	touched := time.Now().Add(-time.Duration(days) * age.Day).Truncate(time.Second)
	file := filepath.Join(dir, "lib", "netstandard2.0", "package.dll")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), fsutil.DirModeDefault))
	require.NoError(t, os.WriteFile(file, make([]byte, size), fsutil.FileModeDefault))
	require.NoError(t, os.Chtimes(file, touched, touched))
}

// fooCache builds a cache holding foo 1.0.0 (1 KB, last used 100 days ago)
// and foo 1.1.0 (2 KB, last used 5 days ago).
func fooCache(t *testing.T) (root, oldDir, newDir string) {
	t.Helper()
	root = filepath.Join(t.TempDir(), "packages")
	oldDir = filepath.Join(root, "foo", "1.0.0")
	newDir = filepath.Join(root, "foo", "1.1.0")
	writeVersion(t, oldDir, 1024, 100)
	writeVersion(t, newDir, 2048, 5)
	return root, oldDir, newDir
}

func TestClean_DryRun(t *testing.T) {
	root, oldDir, newDir := fooCache(t)

	out, err := execute(t, "--cache-dir", root)

	require.NoError(t, err)
	assert.Equal(t, oldDir+" last accessed 100 days ago\n"+
		"1 KB worth of packages are older than 90 days.\n"+
		"To delete, re-run with -c or --commit flag.\n", out)
	assert.DirExists(t, oldDir)
	assert.DirExists(t, newDir)
}

func TestClean_Commit(t *testing.T) {
	root, oldDir, newDir := fooCache(t)

	out, err := execute(t, "--cache-dir", root, "-c")

	require.NoError(t, err)
	assert.Equal(t, oldDir+" last accessed 100 days ago\nDone! Deleted 1 KB.\n", out)
	assert.NoDirExists(t, oldDir)
	assert.NoDirExists(t, fsutil.LockProbePath(oldDir))
	assert.DirExists(t, newDir)
}

func TestClean_Verbose(t *testing.T) {
	root, oldDir, _ := fooCache(t)

	out, err := execute(t, "--cache-dir", root, "--verbose", "--commit")

	require.NoError(t, err)
	assert.Equal(t, oldDir+" last accessed 100 days ago\n - "+oldDir+"\nDone! Deleted 1 KB.\n", out)
}

func TestClean_Prune(t *testing.T) {
	root, oldDir, newDir := fooCache(t)

	out, err := execute(t, "--cache-dir", root, "-p", "-v")

	require.NoError(t, err)
	assert.Equal(t, " - "+oldDir+"\n"+
		"1 KB worth of packages are older than 90 days or are not the latest version.\n"+
		"To delete, re-run with -c or --commit flag.\n", out)
	assert.DirExists(t, oldDir)
	assert.DirExists(t, newDir)
}

func TestClean_MinDays(t *testing.T) {
	root, oldDir, newDir := fooCache(t)

	out, err := execute(t, "--cache-dir", root, "-m", "1")

	require.NoError(t, err)
	assert.Contains(t, out, oldDir+" last accessed 100 days ago\n")
	assert.Contains(t, out, newDir+" last accessed 5 days ago\n")
	assert.Contains(t, out, "3 KB worth of packages are older than 1 days.\n")
}

func TestClean_NegativeMinDays(t *testing.T) {
	root, oldDir, newDir := fooCache(t)

	out, err := execute(t, "--cache-dir", root, "-m", "-1")

	require.NoError(t, err)
	assert.Contains(t, out, oldDir+" last accessed 100 days ago\n")
	assert.Contains(t, out, newDir+" last accessed 5 days ago\n")
	assert.Contains(t, out, "3 KB worth of packages are older than -1 days.\n")
	assert.DirExists(t, oldDir)
	assert.DirExists(t, newDir)
}

func TestClean_NothingToDo(t *testing.T) {
	root, _, _ := fooCache(t)

	out, err := execute(t, "--cache-dir", root, "--min-days", "1000")

	require.NoError(t, err)
	assert.Equal(t, "0 B worth of packages are older than 1,000 days.\n", out)
}

func TestClean_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	out, err := execute(t, "--cache-dir", root, "-c")

	require.NoError(t, err)
	assert.Equal(t, "Warning: Missing nuget package folder: "+root+"\nDone! Deleted 0 B.\n", out)
}

func TestClean_RootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "packages")
	require.NoError(t, os.WriteFile(root, []byte("x"), fsutil.FileModeDefault))

	out, err := execute(t, "--cache-dir", root, "-c")

	require.NoError(t, err)
	assert.Equal(t, "Warning: Missing nuget package folder: "+root+"\nDone! Deleted 0 B.\n", out)
	assert.FileExists(t, root)
}

func TestClean_SkipsNonVersionDirectory(t *testing.T) {
	root, _, _ := fooCache(t)
	odd := filepath.Join(root, "foo", "latest")
	require.NoError(t, os.MkdirAll(odd, fsutil.DirModeDefault))

	out, err := execute(t, "--cache-dir", root)

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: Skipping non-version format directory "+odd+".\n")
}

func TestClean_CacheDirFromEnvironment(t *testing.T) {
	root, oldDir, _ := fooCache(t)
	t.Setenv("NUGETCLEAN_CACHE_DIR", root)

	out, err := execute(t, "-c")

	require.NoError(t, err)
	assert.Contains(t, out, "Done! Deleted 1 KB.")
	assert.NoDirExists(t, oldDir)
}

func TestClean_ConfigFile(t *testing.T) {
	root, oldDir, _ := fooCache(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("cache_dir: "+root+"\nmin_days: 200\n"), fsutil.FileModeDefault))

	out, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "0 B worth of packages are older than 200 days.\n", out)

	// Flags beat the file.
	out, err = execute(t, "--config", cfgPath, "-m", "90")
	require.NoError(t, err)
	assert.Contains(t, out, oldDir+" last accessed 100 days ago\n")
}

func TestClean_MetricsFile(t *testing.T) {
	root, _, _ := fooCache(t)
	metricsPath := filepath.Join(t.TempDir(), "nugetclean.prom")

	_, err := execute(t, "--cache-dir", root, "--metrics-file", metricsPath)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "nugetclean_freed_bytes 1024")
	assert.Contains(t, string(data), "nugetclean_dry_run 1")
	assert.Contains(t, string(data), `nugetclean_directories_total{reason="aged-out"} 1`)
}

func TestUsageErrors(t *testing.T) {
	root, oldDir, _ := fooCache(t)

	tests := []struct {
		name string
		args []string
	}{
		{"non-integer min days", []string{"-m", "ninety"}},
		{"unknown flag", []string{"--frobnicate"}},
		{"positional argument", []string{"extra"}},
		{"bad log level", []string{"--log-level", "chatty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--cache-dir", root, "-c"}, tt.args...)
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.DirExists(t, oldDir)
		})
	}
}

func TestUsageErrors_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level: chatty\n"), fsutil.FileModeDefault))

	_, err := execute(t, "--config", cfgPath)

	assert.ErrorIs(t, err, errors.ErrConfigValidation)
}

func TestHelp(t *testing.T) {
	for _, flag := range []string{"-h", "--help", "-?"} {
		t.Run(flag, func(t *testing.T) {
			out, err := execute(t, flag)
			require.NoError(t, err)
			assert.Contains(t, out, "--commit")
			assert.Contains(t, out, "--min-days")
			assert.Contains(t, out, "--prune")
			assert.NotContains(t, out, "worth of packages")
		})
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nugetclean version "+Version)
}

func TestConfigCommands(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nugetclean", "config.yaml")

	out, err := execute(t, "--config", cfgPath, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, cfgPath)
	assert.FileExists(t, cfgPath)

	_, err = execute(t, "--config", cfgPath, "config", "init")
	assert.ErrorIs(t, err, errors.ErrConfigFileExists)

	_, err = execute(t, "--config", cfgPath, "config", "set", "min_days", "30")
	require.NoError(t, err)

	out, err = execute(t, "--config", cfgPath, "config", "get", "min_days")
	require.NoError(t, err)
	assert.Equal(t, "30\n", out)

	_, err = execute(t, "--config", cfgPath, "config", "set", "log_level", "chatty")
	assert.ErrorIs(t, err, errors.ErrConfigValidation)

	out, err = execute(t, "--config", cfgPath, "--log-level", "debug", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "min_days: 30\n")
	assert.Contains(t, out, "log_level: debug\n")

	out, err = execute(t, "--config", cfgPath, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SETTING")
	for _, key := range config.Keys() {
		assert.Contains(t, out, key)
	}

	saved, err := config.LoadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 30, saved.MinDays)
	assert.Equal(t, config.DefaultLogLevel, saved.LogLevel)
}

func TestInfoCmd(t *testing.T) {
	root, _, _ := fooCache(t)

	out, err := execute(t, "--cache-dir", root, "info")

	require.NoError(t, err)
	assert.Contains(t, out, "Cache Directory: "+root+"\n")
	assert.Contains(t, out, "Total Size: 3 KB\n")
	assert.Contains(t, out, "Packages: 1 (0 tools)\n")
	assert.Contains(t, out, "Versions: 2\n")
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "90", formatDays(90))
	assert.Equal(t, "1,000", formatDays(1000))
	assert.Equal(t, "0", formatDays(0))
}
