package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/themekit/themeinstall/internal/config"
	"github.com/themekit/themeinstall/internal/platform"
)

// app carries the process streams and test seams shared by every command.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// detector overrides host detection when set
	detector platform.Detector

	cfgFile string
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		renderError(a.stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "themeinstall [INSTALL_PATH]",
		Short: "Install the Shopify Theme Kit binary",
		Long: `Download the Theme Kit release built for this machine, verify its
checksum and install it as an executable named "theme".

INSTALL_PATH defaults to /usr/local/bin and can also be set with the
INSTALL_PATH environment variable or --install-path.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runInstall,
	}

	flags := root.PersistentFlags()
	flags.String(config.FlagName(config.KeyInstallPath), config.DefaultInstallPath, "directory to install the theme binary into (env "+config.EnvInstallPath+")")
	flags.String(config.FlagName(config.KeyManifestURL), config.DefaultManifestURL, "URL of the latest release manifest (env "+config.EnvManifestURL+")")
	flags.String(config.FlagName(config.KeyReleasesURL), config.DefaultReleasesURL, "URL of the release list (env "+config.EnvReleasesURL+")")
	flags.String(config.FlagName(config.KeyRelease), config.LatestRelease, "version to install (env "+config.EnvRelease+")")
	flags.String(config.FlagName(config.KeyKeyring), "", "OpenPGP public keyring used to verify release signatures (env "+config.EnvKeyring+")")
	flags.Duration(config.FlagName(config.KeyTimeout), config.DefaultTimeout, "timeout for each HTTP request")
	flags.Int(config.FlagName(config.KeyRetries), 0, "extra attempts for failed downloads")
	flags.BoolP(config.FlagName(config.KeyVerbose), "v", false, "enable debug logging")
	flags.StringVar(&a.cfgFile, "config", "", "config file with the same keys (YAML, TOML or JSON)")

	root.AddCommand(
		newInstallCmd(a),
		newPlatformCmd(a),
		newReleasesCmd(a),
		newVersionCmd(a),
	)

	return root
}

// loadConfig resolves settings for cmd. installPath is the optional
// positional argument and overrides every other source.
func (a *app) loadConfig(cmd *cobra.Command, installPath string) (*config.Config, config.Logger, error) {
	cfg, err := config.Load(config.LoadOptions{
		Flags:       cmd.Flags(),
		ConfigFile:  a.cfgFile,
		InstallPath: installPath,
	})
	if err != nil {
		return nil, nil, err
	}

	logger := config.NewLogger(a.stderr, cfg.Verbose).With("cmd", cmd.Name())
	logger.Debug("configuration loaded",
		"install_path", cfg.InstallPath,
		"manifest_url", cfg.ManifestURL,
		"release", cfg.Release,
		"timeout", cfg.Timeout,
	)

	return cfg, logger, nil
}

func (a *app) platformDetector() platform.Detector {
	if a.detector != nil {
		return a.detector
	}
	return platform.NewDetector()
}
