// Package release fetches and interprets Theme Kit release manifests.
//
// A manifest names a version and lists one asset per platform:
//
//	{"version": "1.0.0", "platforms": [
//	    {"name": "linux-amd64", "url": "https://...", "digest": "<hex md5>"}
//	]}
//
// The latest manifest is served on its own; the release list is a JSON
// array of manifests.
package release

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blang/semver/v4"
)

// SignatureSuffix is appended to an asset URL to locate its detached
// signature when the manifest does not name one.
const SignatureSuffix = ".asc"

// Asset is a downloadable binary for one platform.
type Asset struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Digest string `json:"digest"`
	// Signature optionally names the detached OpenPGP signature URL.
	Signature string `json:"signature,omitempty"`
}

// SignatureURL returns where the asset's detached signature is published.
func (a Asset) SignatureURL() string {
	if a.Signature != "" {
		return a.Signature
	}
	return a.URL + SignatureSuffix
}

// Manifest describes one release.
type Manifest struct {
	Version   string  `json:"version"`
	Platforms []Asset `json:"platforms"`
}

// Validate rejects manifests that cannot describe a release.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Version) == "" {
		return fmt.Errorf("manifest has no version")
	}
	return nil
}

// Find returns the first asset named name. Later duplicates are ignored.
func (m *Manifest) Find(name string) (Asset, error) {
	for _, asset := range m.Platforms {
		if asset.Name == name {
			return asset, nil
		}
	}

	return Asset{}, &PlatformNotFoundError{
		Platform:  name,
		Version:   m.Version,
		Available: m.platformNames(),
	}
}

// SemVer parses the manifest version, accepting a leading "v".
func (m *Manifest) SemVer() (semver.Version, error) {
	return semver.ParseTolerant(m.Version)
}

func (m *Manifest) platformNames() []string {
	names := make([]string, 0, len(m.Platforms))
	for _, asset := range m.Platforms {
		names = append(names, asset.Name)
	}
	return names
}

// List is the decoded release list.
type List []Manifest

// Sorted returns a copy ordered newest first. Releases whose version does
// not parse are kept, after every parsable one.
func (l List) Sorted() List {
	sorted := make(List, len(l))
	copy(sorted, l)

	sort.SliceStable(sorted, func(i, j int) bool {
		vi, errI := sorted[i].SemVer()
		vj, errJ := sorted[j].SemVer()
		switch {
		case errI != nil:
			return false
		case errJ != nil:
			return true
		default:
			return vi.GT(vj)
		}
	})

	return sorted
}

// parseVersion reads a requested release. latest is true for "latest" in
// any case; otherwise ver must be a semantic version.
func parseVersion(ver string) (v semver.Version, latest bool, err error) {
	if strings.EqualFold(ver, "latest") {
		return semver.Version{}, true, nil
	}
	v, err = semver.ParseTolerant(ver)
	if err != nil {
		return semver.Version{}, false, &InvalidVersionError{Version: ver, Err: err}
	}
	return v, false, nil
}

// Get returns the release matching ver. "latest" selects the newest stable
// release. Releases without platforms are never selected.
func (l List) Get(ver string) (Manifest, error) {
	want, latest, err := parseVersion(ver)
	if err != nil {
		return Manifest{}, err
	}

	for _, m := range l.Sorted() {
		if len(m.Platforms) == 0 {
			continue
		}

		v, err := m.SemVer()
		if err != nil {
			continue
		}

		if latest {
			if len(v.Pre) == 0 && len(v.Build) == 0 {
				return m, nil
			}
			continue
		}

		if v.Equals(want) {
			return m, nil
		}
	}

	return Manifest{}, &VersionNotFoundError{Version: ver}
}
