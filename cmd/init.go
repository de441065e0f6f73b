package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/nodescape/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a nodescape config with an interactive wizard",
	Long:  `Asks for the site title, port and the main scene settings and writes them to the config file (nodescape.yml by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		detail("title", cfg.Site.Title)
		detail("port", cfg.Site.Port)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
