package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using the running host.
type RealDetector struct {
	goos       string
	kernelArch func() (string, error)
}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{
		goos:       runtime.GOOS,
		kernelArch: host.KernelArch,
	}
}

// Detect returns the host key.
// The OS comes from runtime.GOOS, which matches lowercased `uname` on the
// supported systems. The machine name comes from gopsutil's KernelArch,
// which reads the same utsname field as `uname -m`.
func (d *RealDetector) Detect(ctx context.Context) (Key, error) {
	if err := ctx.Err(); err != nil {
		return Key{}, fmt.Errorf("platform detection cancelled: %w", err)
	}

	machine, err := d.kernelArch()
	if err != nil {
		return Key{}, fmt.Errorf("detect machine architecture: %w", err)
	}

	key := NewKey(d.goos, machine)
	if key.OS == "" || key.Machine == "" {
		return Key{}, fmt.Errorf("platform detection returned an incomplete key %q", key)
	}

	return key, nil
}

// Resolve maps key to its canonical identifier.
func Resolve(key Key, mapping Mapping) (string, error) {
	id, ok := mapping[key.String()]
	if !ok {
		return "", &UnsupportedPlatformError{Key: key}
	}
	return id, nil
}

// Identify detects the host and resolves its canonical identifier.
func Identify(ctx context.Context, detector Detector, mapping Mapping) (Key, string, error) {
	key, err := detector.Detect(ctx)
	if err != nil {
		return Key{}, "", err
	}

	id, err := Resolve(key, mapping)
	if err != nil {
		return key, "", err
	}

	return key, id, nil
}
