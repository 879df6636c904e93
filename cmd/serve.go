package cmd

import (
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jimmywalsh/portfolio/internal/content"
	"github.com/jimmywalsh/portfolio/internal/metrics"
	"github.com/jimmywalsh/portfolio/internal/server"
	"github.com/jimmywalsh/portfolio/internal/site"
	"github.com/jimmywalsh/portfolio/internal/watch"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and reloads it on changes",
	Long: `The serve command loads the content into memory and serves it with a live
web server. Content and layout changes are picked up without a restart; a
broken change is logged and the last good version keeps being served.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		store, err := content.NewStore(content.NewLoader(cfg.PostsDir(), log))
		if err != nil {
			return err
		}
		layouts, custom := site.Layouts(cfg.LayoutsDir)
		renderer, err := site.NewRenderer(cfg, layouts)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w := &watch.Watcher{
			Dirs:     []string{cfg.ContentDir},
			Debounce: cfg.Server.Debounce,
			Log:      log,
			OnChange: func(paths []string) {
				if custom && touches(paths, cfg.LayoutsDir) {
					if err := renderer.Reload(); err != nil {
						metrics.SiteReloads.WithLabelValues("error").Inc()
						log.Error().Err(err).Msg("Layout reload failed, keeping previous layouts")
					} else {
						log.Info().Msg("Layouts reloaded")
					}
				}
				if err := store.Reload(); err != nil {
					metrics.SiteReloads.WithLabelValues("error").Inc()
					log.Error().Err(err).Msg("Content reload failed, keeping previous content")
					return
				}
				metrics.SiteReloads.WithLabelValues("ok").Inc()
				log.Info().Int("changes", len(paths)).Msg("Content reloaded")
			},
		}
		if custom {
			w.Dirs = append(w.Dirs, cfg.LayoutsDir)
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return w.Run(ctx)
		})
		g.Go(func() error {
			return server.Run(ctx, server.NewRouter(store, renderer, cfg, log), cfg.Server, log)
		})
		return g.Wait()
	},
}

// touches reports whether any of paths lies under dir.
func touches(paths []string, dir string) bool {
	root, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if abs == root || strings.HasPrefix(abs, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
