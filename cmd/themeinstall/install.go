package main

import (
	"github.com/spf13/cobra"

	"github.com/themekit/themeinstall/internal/installer"
)

func newInstallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "install [INSTALL_PATH]",
		Short: "Download, verify and install the theme binary (default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runInstall,
	}
}

// runInstall handles both `themeinstall` and `themeinstall install`
func (a *app) runInstall(cmd *cobra.Command, args []string) error {
	var installPath string
	if len(args) == 1 {
		installPath = args[0]
	}

	cfg, logger, err := a.loadConfig(cmd, installPath)
	if err != nil {
		return err
	}

	opts, err := installer.OptionsFromConfig(cfg, logger)
	if err != nil {
		return err
	}
	opts.Detector = a.platformDetector()
	opts.Out = a.stdout

	inst, err := installer.New(opts)
	if err != nil {
		return err
	}

	_, err = inst.Run(cmd.Context())
	return err
}
