package release

import (
	"fmt"
	"strings"
)

// ManifestParseError reports a manifest or release list that could not be decoded.
type ManifestParseError struct {
	URL string
	Err error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("parse release data from %s: %v", e.URL, e.Err)
}

func (e *ManifestParseError) Unwrap() error {
	return e.Err
}

// PlatformNotFoundError reports a manifest without an asset for the platform.
type PlatformNotFoundError struct {
	Platform  string
	Version   string
	Available []string
}

func (e *PlatformNotFoundError) Error() string {
	available := "none"
	if len(e.Available) > 0 {
		available = strings.Join(e.Available, ", ")
	}
	return fmt.Sprintf("release %s has no binary for %s (available: %s)", e.Version, e.Platform, available)
}

// InvalidVersionError reports a requested version that is neither "latest"
// nor a semantic version.
type InvalidVersionError struct {
	Version string
	Err     error
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: %v", e.Version, e.Err)
}

func (e *InvalidVersionError) Unwrap() error {
	return e.Err
}

// VersionNotFoundError reports a requested version missing from the release list.
type VersionNotFoundError struct {
	Version string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %s not found", e.Version)
}
