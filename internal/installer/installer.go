package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/themekit/themeinstall/internal/binary"
	"github.com/themekit/themeinstall/internal/config"
	"github.com/themekit/themeinstall/internal/download"
	"github.com/themekit/themeinstall/internal/platform"
	"github.com/themekit/themeinstall/internal/release"
)

// Options configures an Installer.
type Options struct {
	// InstallDir is the directory the binary is written to (required)
	InstallDir string
	// ManifestURL points at the latest release manifest (required)
	ManifestURL string
	// ReleasesURL points at the release list; used when Release is pinned
	ReleasesURL string
	// Release is "latest" or a version string. Empty means latest.
	Release string

	Detector platform.Detector
	Mapping  platform.Mapping
	Getter   release.Getter
	// Verifier enables detached signature checks when set
	Verifier *binary.Verifier

	// Out receives the user-facing progress lines
	Out    io.Writer
	Logger config.Logger
	// Clock defaults to RealClock
	Clock Clock
}

// Installer orchestrates platform detection, release lookup, download,
// verification, and installation.
type Installer struct {
	opts   Options
	client *release.Client
	logger config.Logger
	out    io.Writer
}

// New creates an installer. Detector and Getter are required; Mapping
// defaults to platform.DefaultMapping.
func New(opts Options) (*Installer, error) {
	if opts.InstallDir == "" {
		return nil, fmt.Errorf("InstallDir is required")
	}
	if opts.ManifestURL == "" {
		return nil, fmt.Errorf("ManifestURL is required")
	}
	if opts.Detector == nil {
		return nil, fmt.Errorf("Detector is required")
	}
	if opts.Getter == nil {
		return nil, fmt.Errorf("Getter is required")
	}
	if opts.Release == "" {
		opts.Release = config.LatestRelease
	}
	if !isLatest(opts.Release) && opts.ReleasesURL == "" {
		return nil, fmt.Errorf("ReleasesURL is required for release %s", opts.Release)
	}
	if opts.Mapping == nil {
		opts.Mapping = platform.DefaultMapping()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = config.NopLogger()
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}

	return &Installer{
		opts:   opts,
		client: release.NewClient(opts.Getter).WithLogger(opts.Logger),
		logger: opts.Logger,
		out:    opts.Out,
	}, nil
}

// OptionsFromConfig translates loaded configuration into Options using the
// real platform detector and HTTP downloader. Out is left unset; callers
// may replace Detector before passing the Options to New.
func OptionsFromConfig(cfg *config.Config, logger config.Logger) (Options, error) {
	if logger == nil {
		logger = config.NopLogger()
	}

	var verifier *binary.Verifier
	if cfg.Keyring != "" {
		v, err := binary.NewVerifier(cfg.Keyring)
		if err != nil {
			return Options{}, fmt.Errorf("load keyring: %w", err)
		}
		verifier = v
	}

	downloader := download.NewDownloader(download.Config{
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
	}).WithLogger(logger)

	return Options{
		InstallDir:  cfg.InstallPath,
		ManifestURL: cfg.ManifestURL,
		ReleasesURL: cfg.ReleasesURL,
		Release:     cfg.Release,
		Detector:    platform.NewDetector(),
		Getter:      downloader,
		Verifier:    verifier,
		Logger:      logger,
	}, nil
}

// Target returns the path the binary is installed at.
func (i *Installer) Target() string {
	return filepath.Join(i.opts.InstallDir, BinaryName)
}

// IsInstalled checks if the binary exists at Target and is executable.
func (i *Installer) IsInstalled() (bool, error) {
	info, err := os.Stat(i.Target())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat binary: %w", err)
	}

	if !info.Mode().IsRegular() {
		return false, nil
	}

	return info.Mode().Perm()&0111 != 0, nil
}

// Run executes the install sequence. On failure the returned error is a
// *StepError, the Result is in StateFailed with whatever was learned before
// the failing step, and nothing has been written to the install directory.
func (i *Installer) Run(ctx context.Context) (*Result, error) {
	startTime := i.opts.Clock.Now()
	logger := i.logger.With("run", uuid.NewString())

	result := &Result{State: StateStart}
	fail := func(op string, err error) (*Result, error) {
		logger.Debug("install failed", "state", result.State.String(), "op", op, "error", err)
		stepErr := &StepError{State: result.State, Op: op, Err: err}
		result.State = StateFailed
		result.Duration = i.opts.Clock.Now().Sub(startTime)
		return result, stepErr
	}

	key, id, err := platform.Identify(ctx, i.opts.Detector, i.opts.Mapping)
	result.Key = key
	if err != nil {
		return fail("detect platform", err)
	}
	result.Platform = id
	result.State = StatePlatformDetected
	logger.Debug("platform detected", "key", key.String(), "platform", id)

	i.printf("Fetching release data\n")
	manifest, err := i.fetchManifest(ctx)
	if err != nil {
		return fail("fetch release data", err)
	}
	result.Version = manifest.Version
	result.State = StateManifestFetched

	i.printf("Downloading version %s of Shopify Themekit\n", manifest.Version)
	asset, err := manifest.Find(id)
	if err != nil {
		return fail("find release asset", err)
	}

	data, err := i.opts.Getter.Get(ctx, asset.URL)
	if err != nil {
		return fail("download binary", err)
	}
	result.Size = len(data)
	result.State = StateAssetDownloaded
	logger.Debug("asset downloaded", "url", asset.URL, "bytes", len(data))

	if err := binary.VerifyMD5(data, asset.Digest); err != nil {
		i.printf("Downloaded binary did not match checksum.\n")
		return fail("verify checksum", err)
	}
	result.Verified = binary.VerificationMD5
	i.printf("Validated binary checksum\n")

	if i.opts.Verifier != nil {
		if err := i.verifySignature(ctx, asset, data); err != nil {
			return fail("verify signature", err)
		}
		result.Verified = binary.VerificationGPG
		i.printf("Validated binary signature\n")
	}
	result.State = StateChecksumVerified

	replaced, err := i.IsInstalled()
	if err != nil {
		return fail("inspect install target", err)
	}
	result.Replaced = replaced
	if replaced {
		logger.Info("replacing existing binary", "path", i.Target())
	}

	path, err := binary.WriteExecutable(ctx, i.opts.InstallDir, BinaryName, data)
	if err != nil {
		return fail("install binary", err)
	}
	result.Path = path
	result.State = StateInstalled
	result.Duration = i.opts.Clock.Now().Sub(startTime)

	logger.Info("installed", "path", path, "version", result.Version, "platform", id, "duration", result.Duration)
	i.printf("Theme Kit has been installed at %s\n", path)
	i.printf("To verify themekit is working simply type \"%s\"\n", BinaryName)

	return result, nil
}

func (i *Installer) fetchManifest(ctx context.Context) (*release.Manifest, error) {
	if isLatest(i.opts.Release) {
		return i.client.Latest(ctx, i.opts.ManifestURL)
	}
	return i.client.Version(ctx, i.opts.ReleasesURL, i.opts.Release)
}

func (i *Installer) verifySignature(ctx context.Context, asset release.Asset, data []byte) error {
	sigURL := asset.SignatureURL()
	signature, err := i.opts.Getter.Get(ctx, sigURL)
	if err != nil {
		return fmt.Errorf("fetch signature %s: %w", sigURL, err)
	}
	return i.opts.Verifier.VerifySignature(data, signature)
}

func (i *Installer) printf(format string, args ...interface{}) {
	fmt.Fprintf(i.out, format, args...)
}

func isLatest(ver string) bool {
	return strings.EqualFold(ver, config.LatestRelease)
}
