package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/themekit/themeinstall/internal/platform"
)

func newPlatformCmd(a *app) *cobra.Command {
	var listAll bool

	cmd := &cobra.Command{
		Use:   "platform",
		Short: "Show the detected platform and its release identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlatform(cmd, listAll)
		},
	}
	cmd.Flags().BoolVar(&listAll, "list", false, "list every supported platform")

	return cmd
}

func (a *app) runPlatform(cmd *cobra.Command, listAll bool) error {
	mapping := platform.DefaultMapping()

	if listAll {
		for _, key := range mapping.Keys() {
			fmt.Fprintf(a.stdout, "%-16s %s\n", key, mapping[key])
		}
		return nil
	}

	_, logger, err := a.loadConfig(cmd, "")
	if err != nil {
		return err
	}

	key, id, err := platform.Identify(cmd.Context(), a.platformDetector(), mapping)
	if err != nil {
		return err
	}
	logger.Debug("platform detected", "key", key.String(), "platform", id)

	fmt.Fprintf(a.stdout, "%s %s\n", labelStyle.Render("Detected:"), key)
	fmt.Fprintf(a.stdout, "%s %s\n", labelStyle.Render("Release: "), successStyle.Render(id))
	return nil
}
