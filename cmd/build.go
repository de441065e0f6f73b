package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/nodescape/internal/progress"
	"github.com/ziadkadry99/nodescape/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render markdown posts into static blog pages",
	Long: `Converts every markdown post in the posts directory into an HTML page
under <static_dir>/blog. Posts with "draft: true" front matter are skipped.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory (defaults to {static_dir}/blog)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Site.PostsDir); os.IsNotExist(err) {
		return fmt.Errorf("posts directory not found at %s", cfg.Site.PostsDir)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = filepath.Join(cfg.Site.StaticDir, "blog")
	}

	builder := site.NewPostBuilder(cfg.Site.PostsDir, outputDir, cfg.Site.Title)
	builder.Progress = progress.New(os.Stderr, "Rendering posts")
	posts, err := builder.Build()
	if err != nil {
		return fmt.Errorf("building posts: %w", err)
	}

	good.Printf("Built %d posts into %s\n", len(posts), outputDir)
	for _, p := range posts {
		detail(p.Date, p.Title)
	}
	return nil
}
