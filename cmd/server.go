package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/nodescape/internal/articles"
	"github.com/ziadkadry99/nodescape/internal/catalog"
	"github.com/ziadkadry99/nodescape/internal/db"
	"github.com/ziadkadry99/nodescape/internal/landing"
	"github.com/ziadkadry99/nodescape/internal/server"
)

const shutdownGrace = 10 * time.Second

var (
	serverPort int
	noWatch    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the landing page and blog server",
	Long: `Serves the animated landing page, streams a live scene over a WebSocket
to every visitor, and serves the blog pages and article API. Article pages
are reindexed whenever they change on disk.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "port to listen on (overrides site.port)")
	serveCmd.Flags().BoolVar(&noWatch, "no-watch", false, "index articles once and do not watch for changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serverPort != 0 {
		cfg.Site.Port = serverPort
	}

	logger := newLogger()
	defer logger.Sync()

	labels, err := catalog.LoadOrDefault(cfg.LabelsFile)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.Site.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := articles.NewStore(database)
	indexer := articles.NewIndexer(cfg.Site.StaticDir, cfg.Site.ArticleGlob, store, logger)
	indexed, err := indexer.Index(ctx)
	if err != nil {
		return fmt.Errorf("indexing articles: %w", err)
	}

	srv := server.New(server.Config{
		Port:      cfg.Site.Port,
		StaticDir: cfg.Site.StaticDir,
		AllowAll:  cfg.Site.AllowAllOrigins,
		Version:   Version,
	}, database, logger)
	articles.RegisterRoutes(srv.Router(), store, cfg.Site.Title)
	land := landing.New(cfg.Scene, labels, cfg.Site.Title, logger)
	land.Version = Version
	land.RegisterRoutes(srv.Router())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)

	if !noWatch {
		watcher, err := articles.NewWatcher(indexer, cfg.Site.WatchDebounce(), logger)
		if err != nil {
			logger.Warn("article watcher disabled", zap.Error(err))
		} else {
			g.Go(func() error { return watcher.Run(gctx) })
		}
	}

	g.Go(func() error {
		<-gctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		land.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	fmt.Printf("%s %s\n", brand.Sprint("nodescape"), subtle.Sprint(Version))
	detail("listening", fmt.Sprintf("http://localhost:%d", cfg.Site.Port))
	detail("static", cfg.Site.StaticDir)
	detail("database", database.Path())
	detail("articles", indexed)
	detail("labels", len(labels))
	if noWatch {
		warn.Println("  article watching disabled")
	}

	return g.Wait()
}
