// Package installer runs the install sequence: detect the platform, fetch
// the release manifest, download the matching binary, verify it and write
// it to the install directory.
//
// The sequence is strictly linear. Each step either advances the State or
// fails the whole run with a *StepError; nothing is retried here and no
// step is revisited.
package installer

import (
	"fmt"
	"time"

	"github.com/themekit/themeinstall/internal/binary"
	"github.com/themekit/themeinstall/internal/platform"
)

const (
	// BinaryName is the file name of the installed binary.
	BinaryName = "theme"
	// IssuesURL is where users report unsupported platforms.
	IssuesURL = "https://github.com/Shopify/themekit/issues"
)

// State is a step of the install sequence.
type State int

const (
	StateStart State = iota
	StatePlatformDetected
	StateManifestFetched
	StateAssetDownloaded
	StateChecksumVerified
	StateInstalled
	// StateFailed is terminal and reported in the Result of a failed Run.
	StateFailed
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StatePlatformDetected:
		return "PlatformDetected"
	case StateManifestFetched:
		return "ManifestFetched"
	case StateAssetDownloaded:
		return "AssetDownloaded"
	case StateChecksumVerified:
		return "ChecksumVerified"
	case StateInstalled:
		return "Installed"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result describes an install run. After a failure State is StateFailed and
// only the fields filled before the failing step are set.
type Result struct {
	State    State
	Key      platform.Key
	Platform string // canonical identifier, e.g. "linux-amd64"
	Version  string
	Path     string
	Size     int
	Verified binary.VerificationMethod
	// Replaced is set when an executable was already installed at Path
	Replaced bool
	Duration time.Duration
}

// StepError reports the step that failed. State is the last state reached
// before the failure; the run itself ends in StateFailed.
type StepError struct {
	State State
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
