package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultHTTPPort  = 8765
	DefaultStore     = "sqlite"
	defaultDataChild = "promptdeck"
)

// Load reads a .env file from the working directory if one exists.
// Real environment variables take precedence over file entries.
func Load() {
	_ = godotenv.Load()
}

// DataDir returns the data directory from the PROMPTDECK_DATA env var,
// falling back to the platform user data dir.
func DataDir() string {
	if env := os.Getenv("PROMPTDECK_DATA"); env != "" {
		return env
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, defaultDataChild)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataChild
	}
	return filepath.Join(home, ".local", "share", defaultDataChild)
}

// StoreKind returns the project store backend from PROMPTDECK_STORE,
// either "sqlite" or "json". Unknown values fall back to the default.
func StoreKind() string {
	switch env := os.Getenv("PROMPTDECK_STORE"); env {
	case "sqlite", "json":
		return env
	default:
		return DefaultStore
	}
}

// HTTPPort returns the remote bridge port from PROMPTDECK_HTTP_PORT,
// falling back to DefaultHTTPPort.
func HTTPPort() int {
	env := os.Getenv("PROMPTDECK_HTTP_PORT")
	if env == "" {
		return DefaultHTTPPort
	}
	port, err := strconv.Atoi(env)
	if err != nil || port < 1 || port > 65535 {
		return DefaultHTTPPort
	}
	return port
}

// DatabasePath returns the sqlite database file under a data dir.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, "promptdeck.db")
}

// ProjectsDir returns the json store directory under a data dir.
func ProjectsDir(dataDir string) string {
	return filepath.Join(dataDir, "projects")
}

// SlotPath returns the shared status slot file under a data dir.
func SlotPath(dataDir string) string {
	return filepath.Join(dataDir, "status.json")
}

// LogPath returns the session log file under a data dir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "promptdeck.log")
}
