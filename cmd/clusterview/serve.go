package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aryannaik/clusterview/internal/config"
	"github.com/aryannaik/clusterview/internal/controller"
	"github.com/aryannaik/clusterview/internal/loader"
	"github.com/aryannaik/clusterview/internal/render"
	"github.com/aryannaik/clusterview/internal/server"
	"github.com/aryannaik/clusterview/internal/state"
	"github.com/aryannaik/clusterview/internal/watch"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cluster table as a web page",
		Example: heredoc.Doc(`
			# Serve ./clusters.json and ./cluster_thumbnails on port 8990
			$ clusterview serve

			# Reload whenever clusters.json is rewritten
			$ clusterview serve --source ./out --watch
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, *cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "Port to listen on")
	cmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "Reload when clusters.json changes (local sources only)")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	log.Info("Starting clusterview", "version", version, "source", cfg.Source)

	src := loader.NewSource(cfg.Source)
	store := state.NewStore()
	renderer := render.NewRenderer(thumbnailPrefix(cfg.ThumbnailDir, src))

	var initial render.RowSet
	controller.Bootstrap(ctx, src, store, controller.NewList(store, renderer, controller.StaticKeyword(""), &initial))
	log.Info("Initial render", "rows", initial.Len())

	var assetsDir string
	fileSrc, local := src.(*loader.FileSource)
	if local {
		assetsDir = fileSrc.Dir()
	}

	g, gctx := errgroup.WithContext(ctx)

	srv := server.New(gctx, cfg.Port, assetsDir, store, src, renderer)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Watch {
		if local {
			g.Go(func() error {
				return watch.New(fileSrc, store).Run(gctx)
			})
		} else {
			log.Warn("Ignoring --watch for remote source", "source", src)
		}
	}

	err := g.Wait()
	log.Info("Goodbye")
	return err
}
