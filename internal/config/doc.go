// Package config resolves the installer's settings and provides the logging
// abstraction shared by the other packages.
//
// # Sources
//
// Settings are layered with viper, highest priority first:
//   - the positional install path argument
//   - command-line flags that were explicitly set
//   - environment variables (INSTALL_PATH, THEMEKIT_*)
//   - an optional config file passed with --config (YAML, TOML or JSON)
//   - built-in defaults
//
// The install path and keyring path go through ~ expansion after merging.
//
// # Usage
//
//	cfg, err := config.Load(config.LoadOptions{
//	    Flags:       cmd.Flags(),
//	    InstallPath: args[0],
//	})
//	if err != nil {
//	    return err
//	}
//
// # Logging
//
// Packages accept a Logger and default to a no-op implementation. The CLI
// plugs in a charmbracelet/log backed logger:
//
//	logger := config.NewLogger(os.Stderr, cfg.Verbose)
//	downloader := download.NewDownloader(download.Config{}).WithLogger(logger)
package config
