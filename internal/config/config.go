package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultInstallPath is the directory the theme binary is installed into.
	DefaultInstallPath = "/usr/local/bin"
	// DefaultManifestURL points at the manifest of the latest release.
	DefaultManifestURL = "https://shopify-themekit.s3.amazonaws.com/releases/latest.json"
	// DefaultReleasesURL points at the list of every published release.
	DefaultReleasesURL = "https://shopify-themekit.s3.amazonaws.com/releases/all.json"
	// LatestRelease selects the manifest at the manifest URL.
	LatestRelease = "latest"
	// DefaultTimeout bounds every HTTP request.
	DefaultTimeout = 5 * time.Minute
)

// Setting keys. Flags use the same names with dashes.
const (
	KeyInstallPath = "install_path"
	KeyManifestURL = "manifest_url"
	KeyReleasesURL = "releases_url"
	KeyRelease     = "release"
	KeyKeyring     = "keyring"
	KeyTimeout     = "timeout"
	KeyRetries     = "retries"
	KeyVerbose     = "verbose"
)

// Environment variables bound to settings.
const (
	EnvInstallPath = "INSTALL_PATH"
	EnvManifestURL = "THEMEKIT_MANIFEST_URL"
	EnvReleasesURL = "THEMEKIT_RELEASES_URL"
	EnvRelease     = "THEMEKIT_RELEASE"
	EnvKeyring     = "THEMEKIT_KEYRING"
	EnvTimeout     = "THEMEKIT_TIMEOUT"
	EnvRetries     = "THEMEKIT_RETRIES"
	EnvVerbose     = "THEMEKIT_VERBOSE"
)

var envBindings = map[string]string{
	KeyInstallPath: EnvInstallPath,
	KeyManifestURL: EnvManifestURL,
	KeyReleasesURL: EnvReleasesURL,
	KeyRelease:     EnvRelease,
	KeyKeyring:     EnvKeyring,
	KeyTimeout:     EnvTimeout,
	KeyRetries:     EnvRetries,
	KeyVerbose:     EnvVerbose,
}

// Config holds the resolved installer settings.
type Config struct {
	// InstallPath is the directory receiving the binary, with ~ expanded.
	InstallPath string `mapstructure:"install_path"`
	// ManifestURL serves the latest release manifest.
	ManifestURL string `mapstructure:"manifest_url"`
	// ReleasesURL serves every release; only read when Release is pinned.
	ReleasesURL string `mapstructure:"releases_url"`
	// Release is "latest" or a semantic version.
	Release string `mapstructure:"release"`
	// Keyring is an armored OpenPGP public keyring. Empty disables signature checks.
	Keyring string        `mapstructure:"keyring"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
	Verbose bool          `mapstructure:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		InstallPath: DefaultInstallPath,
		ManifestURL: DefaultManifestURL,
		ReleasesURL: DefaultReleasesURL,
		Release:     LatestRelease,
		Timeout:     DefaultTimeout,
	}
}

// IsLatest reports whether the latest manifest should be used.
func (c *Config) IsLatest() bool {
	return c.Release == "" || strings.EqualFold(c.Release, LatestRelease)
}

// LoadOptions controls where Load reads settings from.
type LoadOptions struct {
	// Flags are bound by name; only flags that were set override lower layers.
	Flags *pflag.FlagSet
	// ConfigFile is an optional YAML, TOML or JSON file.
	ConfigFile string
	// InstallPath, when non-empty, overrides every other source.
	InstallPath string
}

// Load merges defaults, config file, environment, flags and the positional
// install path, then expands and validates the result.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault(KeyInstallPath, defaults.InstallPath)
	v.SetDefault(KeyManifestURL, defaults.ManifestURL)
	v.SetDefault(KeyReleasesURL, defaults.ReleasesURL)
	v.SetDefault(KeyRelease, defaults.Release)
	v.SetDefault(KeyKeyring, defaults.Keyring)
	v.SetDefault(KeyTimeout, defaults.Timeout)
	v.SetDefault(KeyRetries, defaults.Retries)
	v.SetDefault(KeyVerbose, defaults.Verbose)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.Flags != nil {
		for key := range envBindings {
			flag := opts.Flags.Lookup(FlagName(key))
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", flag.Name, err)
			}
		}
	}

	if opts.InstallPath != "" {
		v.Set(KeyInstallPath, opts.InstallPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.expand(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FlagName returns the command-line flag name for a setting key.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// expand resolves ~ in filesystem paths.
func (c *Config) expand() error {
	installPath, err := homedir.Expand(strings.TrimSpace(c.InstallPath))
	if err != nil {
		return fmt.Errorf("expand install path %q: %w", c.InstallPath, err)
	}
	c.InstallPath = installPath

	if c.Keyring != "" {
		keyring, err := homedir.Expand(strings.TrimSpace(c.Keyring))
		if err != nil {
			return fmt.Errorf("expand keyring path %q: %w", c.Keyring, err)
		}
		c.Keyring = keyring
	}

	return nil
}

// Validate checks the settings for values the installer cannot work with.
func (c *Config) Validate() error {
	if c.InstallPath == "" {
		return fmt.Errorf("install path cannot be empty")
	}

	if err := validateURL(KeyManifestURL, c.ManifestURL); err != nil {
		return err
	}

	if !c.IsLatest() {
		if err := validateURL(KeyReleasesURL, c.ReleasesURL); err != nil {
			return err
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative: %s", c.Timeout)
	}

	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative: %d", c.Retries)
	}

	return nil
}

func validateURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s cannot be empty", key)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s %q: must use http:// or https://", key, raw)
	}

	if u.Host == "" {
		return fmt.Errorf("invalid %s %q: missing host", key, raw)
	}

	return nil
}
