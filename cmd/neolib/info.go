package main

import (
	"cmp"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jopadan/neolib/internal/appinfo"
)

func newInfoCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show application metadata and folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := c.appInfo()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "name:        %s\n", info.Name)
			fmt.Fprintf(w, "company:     %s\n", info.Company)
			fmt.Fprintf(w, "version:     %s\n", info.Version)
			fmt.Fprintf(w, "application: %s\n", info.ApplicationFolder)
			fmt.Fprintf(w, "settings:    %s\n", info.SettingsFolder)
			fmt.Fprintf(w, "data:        %s\n", info.DataFolder)
			fmt.Fprintf(w, "plugins:     *%s\n", info.PluginExtension)
			fmt.Fprintf(w, "pocket:      %t\n", info.Pocket())
			fmt.Fprintf(w, "instance:    %s\n", info.InstanceID)
			return nil
		},
	}
}

func (c *cli) appInfo() (*appinfo.Info, error) {
	return appinfo.New(
		appinfo.WithArguments(os.Args),
		appinfo.WithPocket(c.pocket),
		appinfo.WithName(cmp.Or(c.cfg.App.Name, "neolib")),
		appinfo.WithCompany(c.cfg.App.Company),
		appinfo.WithVersion(buildVersion()),
		appinfo.WithSettingsFolder(c.cfg.App.SettingsDir),
		appinfo.WithDataFolder(c.cfg.App.DataDir),
	)
}

// buildVersion parses the linker-set version, keeping unparsable values as
// the release name.
func buildVersion() appinfo.Version {
	v, err := appinfo.ParseVersion(version)
	if err != nil {
		return appinfo.Version{Name: version}
	}
	return v
}
