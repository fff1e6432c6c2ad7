package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/souqrisk/souqrisk/internal/config"
	"github.com/souqrisk/souqrisk/internal/scorer"
	"github.com/souqrisk/souqrisk/internal/server"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring API over HTTP",
		Long: `Load the trained model bundle once and serve scoring requests over HTTP.

Endpoints:
  GET  /health
  POST /api/v1/score

Example:
  souqrisk serve --addr :8080`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().String("model", "", "Model bundle path (default: user data dir)")

	_ = viper.BindPFlag("serve.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("serve.model", cmd.Flags().Lookup("model"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	modelPath := config.ExpandPath(viper.GetString("serve.model"))
	if modelPath == "" {
		modelPath = config.DefaultModelPath()
	}

	s, err := scorer.Load(modelPath)
	if err != nil {
		return fmt.Errorf("failed to load model bundle: %w", err)
	}
	slog.Info("Model bundle loaded", "path", modelPath, "features", s.Schema().Dims())

	srv := server.NewHTTPServer(s)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(viper.GetString("serve.addr")); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
