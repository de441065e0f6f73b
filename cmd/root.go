package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nodescape/internal/config"
	"github.com/ziadkadry99/nodescape/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nodescape",
	Short: "Animated node-field landing page and blog server",
	Long: `Nodescape serves a landing page where labelled nodes drift through a
3D volume. Clicking a node opens a link, a blog route or an inline panel.
It also builds markdown posts into static pages and indexes them for the
blog listing.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func newLogger() *zap.Logger {
	logger, err := logging.New(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: falling back to a no-op logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}
