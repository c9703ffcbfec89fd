package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/bookshell/internal/server"
	"github.com/ziadkadry99/bookshell/internal/state"
	"github.com/ziadkadry99/bookshell/internal/watch"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	Long: `Loads the content directory and serves the site. With --watch, edits
to the content are picked up without a restart and open pages follow along.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("watch") {
			cfg.Content.Watch = serveWatch
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		loader := newLoader(cfg, database)
		res, err := loadContent(ctx, cfg, loader)
		if err != nil {
			return err
		}

		global := state.New()
		srv := server.New(cfg, database, global)

		if cfg.Content.Watch {
			w := watch.New(cfg.Content.Dir, loader, global)
			w.Prime(res.Fingerprint)
			go func() {
				if err := w.Run(ctx); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: content watcher stopped: %v\n", err)
				}
			}()
		}

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "bookshell v%s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		fmt.Fprintf(os.Stderr, "  Content: %s (%d posts)\n", cfg.Content.Dir, res.Posts)
		if cfg.Content.Watch {
			fmt.Fprintln(os.Stderr, "  Watching for changes")
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload content when files change (overrides content.watch)")
	rootCmd.AddCommand(serveCmd)
}
