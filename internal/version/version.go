package version

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Set at build time via ldflags; release builds stamp all three.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// GetVersion resolves the bridge version: the ldflags value when stamped,
// otherwise the repo's .version file, otherwise "dev". The file lookup keeps
// `go run` builds reporting a real version during development.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "dev"
	}

	// This file sits two directories below the repo root.
	repoRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))
	versionFile := filepath.Join(repoRoot, ".version")

	if data, err := os.ReadFile(versionFile); err == nil {
		return strings.TrimSpace(string(data))
	}

	return "dev"
}

// GetFullVersion appends the commit hash when known, for log banners.
func GetFullVersion() string {
	version := GetVersion()
	if Commit != "unknown" {
		version += "+" + Commit
	}
	return version
}
