package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/themekit/themeinstall/internal/config"
	"github.com/themekit/themeinstall/internal/download"
	"github.com/themekit/themeinstall/internal/release"
)

func newReleasesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "releases",
		Short: "List published Theme Kit versions, newest first",
		Args:  cobra.NoArgs,
		RunE:  a.runReleases,
	}
}

func (a *app) runReleases(cmd *cobra.Command, args []string) error {
	cfg, logger, err := a.loadConfig(cmd, "")
	if err != nil {
		return err
	}
	if cfg.ReleasesURL == "" {
		return fmt.Errorf("no release list configured: set --%s", config.FlagName(config.KeyReleasesURL))
	}

	downloader := download.NewDownloader(download.Config{
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
	}).WithLogger(logger)

	list, err := release.NewClient(downloader).WithLogger(logger).All(cmd.Context(), cfg.ReleasesURL)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.stdout, "No releases published.")
		return nil
	}

	var latestVersion string
	if latest, err := list.Get(config.LatestRelease); err == nil {
		latestVersion = latest.Version
	}

	for _, m := range list.Sorted() {
		names := make([]string, 0, len(m.Platforms))
		for _, asset := range m.Platforms {
			names = append(names, asset.Name)
		}

		version := fmt.Sprintf("%-12s", m.Version)
		if m.Version == latestVersion {
			version = successStyle.Render(version)
		}
		fmt.Fprintf(a.stdout, "%s %s\n", version, hintStyle.Render(strings.Join(names, ", ")))
	}

	return nil
}
