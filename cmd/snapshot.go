package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/nodescape/internal/catalog"
	"github.com/ziadkadry99/nodescape/internal/render"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render one frame of the landing scene to a PNG",
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringP("output", "o", "nodescape.png", "output PNG path")
	snapshotCmd.Flags().Int("ticks", 120, "frames to simulate before rendering")
	snapshotCmd.Flags().Int64("seed", 0, "random seed (0 keeps the configured seed)")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	labels, err := catalog.LoadOrDefault(cfg.LabelsFile)
	if err != nil {
		return err
	}

	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		cfg.Scene.Seed = seed
	}
	ticks, _ := cmd.Flags().GetInt("ticks")
	out, _ := cmd.Flags().GetString("output")

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	w := bufio.NewWriter(f)

	logger := newLogger()
	defer logger.Sync()

	if err := render.Snapshot(cmd.Context(), cfg.Scene, labels, ticks, w, logger); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}
	good.Printf("Wrote %s after %d frames\n", out, ticks)
	return nil
}
