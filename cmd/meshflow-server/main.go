// Package main runs the meshflow HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof" // register /debug/pprof
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/adapters/httpapi"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/usecases"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/infrastructure/config"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/infrastructure/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:           "meshflow-server",
		Short:         "Serve mesh storage and flow link generation over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := run(ctx, cfg); err != nil {
				log.Error().Err(err).Msg("server error")
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	srv := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     newRouter(cfg, repo),
		ReadTimeout: cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Str("storage", cfg.Storage.Driver).
			Int("workers", cfg.Generation.Workers).
			Msg("starting meshflow server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(cfg *config.Config, repo usecases.MeshRepository) *gin.Engine {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	h := httpapi.NewHandler(
		usecases.NewMeshService(repo, &log.Logger),
		usecases.NewFlowLinkService(repo,
			usecases.WithWorkers(cfg.Generation.Workers),
			usecases.WithLogger(log.Logger),
		),
	)
	r := httpapi.NewRouter(h, log.Logger)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "meshflow server is running. See /healthz, /metrics, /v1/meshes, /debug/pprof/\n")
	})
	r.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	return r
}
