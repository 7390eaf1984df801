package fsutil

import (
	"os"
	"path/filepath"
)

// GetPackagesDir returns the NuGet global packages folder.
// NUGET_PACKAGES wins when set; otherwise it is <home>/.nuget/packages.
func GetPackagesDir() (string, error) {
	if dir := os.Getenv(PackagesEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nuget", "packages"), nil
}

// GetConfigPath returns the default config file location
// On Linux: ~/.config/nugetclean/config.yaml
// On macOS: ~/Library/Application Support/nugetclean/config.yaml
// On Windows: %AppData%\nugetclean\config.yaml
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, "config.yaml"), nil
}

// LockProbePath returns the sibling path a directory is renamed to before removal.
func LockProbePath(dir string) string {
	return filepath.Join(filepath.Dir(dir), LockProbePrefix+filepath.Base(dir))
}

// EnsureFileDir creates the parent directory of a file path if it doesn't exist.
func EnsureFileDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), DirModeDefault)
}
