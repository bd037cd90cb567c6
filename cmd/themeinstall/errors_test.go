package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/themekit/themeinstall/internal/binary"
	"github.com/themekit/themeinstall/internal/download"
	"github.com/themekit/themeinstall/internal/installer"
	"github.com/themekit/themeinstall/internal/platform"
	"github.com/themekit/themeinstall/internal/release"
)

func TestDiagnose(t *testing.T) {
	wrap := func(state installer.State, err error) error {
		return &installer.StepError{State: state, Op: "step", Err: err}
	}

	tests := []struct {
		name         string
		err          error
		wantHeadline string
	}{
		{
			name:         "unsupported_platform",
			err:          wrap(installer.StateStart, &platform.UnsupportedPlatformError{Key: platform.NewKey("linux", "aarch64")}),
			wantHeadline: "Cannot find binary to match your architecture [linux aarch64]",
		},
		{
			name:         "platform_not_in_manifest",
			err:          wrap(installer.StateManifestFetched, &release.PlatformNotFoundError{Platform: "linux-386", Version: "1.0.0"}),
			wantHeadline: "Theme Kit 1.0.0 was not published for linux-386",
		},
		{
			name:         "version_not_found",
			err:          wrap(installer.StatePlatformDetected, &release.VersionNotFoundError{Version: "9.9.9"}),
			wantHeadline: "Theme Kit version 9.9.9 does not exist",
		},
		{
			name:         "invalid_version",
			err:          wrap(installer.StatePlatformDetected, &release.InvalidVersionError{Version: "one.two", Err: errors.New("bad")}),
			wantHeadline: `"one.two" is not a valid Theme Kit version`,
		},
		{
			name:         "checksum_mismatch",
			err:          wrap(installer.StateAssetDownloaded, &binary.ChecksumMismatchError{Expected: "a", Actual: "b"}),
			wantHeadline: "Theme Kit was not installed: checksum verification failed",
		},
		{
			name:         "signature",
			err:          wrap(installer.StateAssetDownloaded, &binary.SignatureError{Err: errors.New("bad")}),
			wantHeadline: "Downloaded binary failed signature verification.",
		},
		{
			name:         "manifest_parse",
			err:          wrap(installer.StatePlatformDetected, &release.ManifestParseError{URL: "u", Err: errors.New("eof")}),
			wantHeadline: "Release data could not be read",
		},
		{
			name:         "filesystem",
			err:          wrap(installer.StateChecksumVerified, &binary.FilesystemError{Op: "write", Path: "/usr/local/bin/theme", Err: errors.New("permission denied")}),
			wantHeadline: "Could not install to /usr/local/bin/theme",
		},
		{
			name:         "fetch",
			err:          wrap(installer.StatePlatformDetected, &download.FetchError{URL: "u", StatusCode: 500}),
			wantHeadline: "Could not download release data",
		},
		{
			name:         "cancelled",
			err:          wrap(installer.StateManifestFetched, fmt.Errorf("download: %w", context.Canceled)),
			wantHeadline: "Installation cancelled",
		},
		{
			name:         "other",
			err:          errors.New("boom"),
			wantHeadline: "Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diagnose(tt.err)
			if got.headline != tt.wantHeadline {
				t.Errorf("headline = %q, want %q", got.headline, tt.wantHeadline)
			}
		})
	}
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	renderError(&buf, &platform.UnsupportedPlatformError{Key: platform.NewKey("freebsd", "arm64")})

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Cannot find binary to match your architecture [freebsd arm64]") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.Contains(lines[1], installer.IssuesURL) {
		t.Errorf("line 2 = %q", lines[1])
	}
}
