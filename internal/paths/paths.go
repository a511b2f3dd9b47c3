package paths

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.keyview.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".keyview")
}

// ConfigPath returns the config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// LogDir returns the log directory.
func LogDir() string {
	return filepath.Join(BaseDir(), "logs")
}

// LogPath returns the log file path.
func LogPath() string {
	return filepath.Join(LogDir(), "keyview.log")
}

// EnsureDir creates the directory tree with proper permissions.
func EnsureDir() error {
	for _, d := range []string{BaseDir(), LogDir()} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
