// Package testutil provides utilities for testing the installer in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// installerEnv lists every environment variable the installer reads.
var installerEnv = []string{
	"INSTALL_PATH",
	"THEMEKIT_MANIFEST_URL",
	"THEMEKIT_RELEASES_URL",
	"THEMEKIT_RELEASE",
	"THEMEKIT_KEYRING",
	"THEMEKIT_TIMEOUT",
	"THEMEKIT_RETRIES",
	"THEMEKIT_VERBOSE",
}

// Env describes the isolated directories created by SetupTestEnv.
type Env struct {
	// Home is the temporary HOME directory.
	Home string
	// InstallDir is a directory under Home that tests may install into.
	// It is not created, so tests also exercise directory creation.
	InstallDir string
}

// SetupTestEnv isolates a test from the developer's environment.
// This ensures tests never touch:
// - The real /usr/local/bin
// - Installer settings exported in the calling shell
// - The user's home directory (for ~ expansion)
//
// The cleanup function is automatically handled by t.TempDir() and
// t.Setenv(), so callers don't need to manually clean up.
func SetupTestEnv(t *testing.T) Env {
	t.Helper()

	tmpDir := t.TempDir()
	home := filepath.Join(tmpDir, "home")
	if err := os.MkdirAll(home, 0o750); err != nil {
		t.Fatalf("failed to create test home %s: %v", home, err)
	}

	t.Setenv("HOME", home)

	// Empty values are treated as unset by the config loader.
	for _, name := range installerEnv {
		t.Setenv(name, "")
	}

	return Env{
		Home:       home,
		InstallDir: filepath.Join(home, "bin"),
	}
}
