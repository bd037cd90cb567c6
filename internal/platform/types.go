// Package platform detects the host operating system and machine
// architecture and maps them to the canonical identifiers used to name
// release assets (e.g. "darwin-amd64").
//
// Detection mirrors `uname` and `uname -m`: the key is the lowercased OS
// name and machine hardware name joined by a single space. The key is then
// looked up in a static Mapping. Unknown keys are reported as an
// UnsupportedPlatformError rather than guessed.
package platform

import (
	"context"
	"fmt"
	"sort"
)

// Key identifies the host as reported by uname.
type Key struct {
	OS      string // lowercased `uname`, e.g. "linux", "darwin"
	Machine string // lowercased `uname -m`, e.g. "x86_64", "i386"
}

// NewKey builds a Key, normalizing both parts.
func NewKey(os, machine string) Key {
	return Key{
		OS:      normalizeName(os),
		Machine: normalizeName(machine),
	}
}

// String returns the lookup form of the key, e.g. "linux x86_64".
func (k Key) String() string {
	return k.OS + " " + k.Machine
}

// Mapping maps Key strings to canonical platform identifiers.
type Mapping map[string]string

// defaultMapping is the table of hosts with published release assets.
var defaultMapping = Mapping{
	"darwin x86_64":  "darwin-amd64",
	"linux x86_64":   "linux-amd64",
	"linux i386":     "linux-386",
	"freebsd x86_64": "freebsd-amd64",
	"freebsd i386":   "freebsd-386",
}

// DefaultMapping returns a copy of the built-in mapping table.
// Callers may modify the copy without affecting other users.
func DefaultMapping() Mapping {
	m := make(Mapping, len(defaultMapping))
	for k, v := range defaultMapping {
		m[k] = v
	}
	return m
}

// Keys returns the supported key strings in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (Key, error)
}

// UnsupportedPlatformError reports a host whose key has no mapping entry.
type UnsupportedPlatformError struct {
	Key Key
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform [%s]", e.Key)
}
