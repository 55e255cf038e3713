package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/photo-color-mcp/internal/httpapi"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP upload server",
		Long: `Starts an HTTP server that accepts photo uploads.

POST a multipart form with a "photo" file field to /api/v1/photos/analyze for a
JSON report, or to /api/v1/photos/correct to download the corrected image.`,
		Example: `  # Start server on the configured address (default :8080)
  photo-color-mcp serve

  # Start server on a custom address
  photo-color-mcp serve --addr :3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if addr != "" {
				cfg.HTTP.Address = addr
			}

			handler := httpapi.NewHandler(a.processor(), a.logger, cfg.HTTP.MaxUploadBytes)
			server := httpapi.NewRouter(cfg, handler)

			serverErr := make(chan error, 1)
			go func() {
				a.logger.Info("photo upload server listening", zap.String("addr", cfg.HTTP.Address))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				a.logger.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					a.logger.Error("server shutdown failed", zap.Error(err))
					return err
				}
				a.logger.Info("server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (overrides config)")

	return cmd
}
