package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/lectern"
	"github.com/aretw0/lectern/internal/cli"
	"github.com/aretw0/lectern/internal/presentation/tui"
	httpAdapter "github.com/aretw0/lectern/pkg/adapters/http"
)

const shutdownGrace = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves POST /generate and the per-element endpoints, returning .pptx attachments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetString("port")
		}
		if cmd.Flags().Changed("dev") {
			cfg.Development, _ = cmd.Flags().GetBool("dev")
		}
		validate, _ := cmd.Flags().GetBool("validate")
		logger := newLogger(cfg)

		ctx := cmd.Context()
		rt, err := cli.NewRuntime(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMaxBodyBytes(cfg.MaxBodyBytes),
			httpAdapter.WithDevelopment(cfg.Development),
			httpAdapter.WithRequestValidation(validate),
		}
		if rt.Metrics != nil {
			opts = append(opts, httpAdapter.WithMetrics(rt.Metrics))
		}
		handler, err := httpAdapter.NewHandler(rt.Service, opts...)
		if err != nil {
			return fmt.Errorf("error initializing http handler: %w", err)
		}

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		tui.PrintBanner(os.Stderr, strings.TrimSpace(lectern.Version))

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting Lectern server", "addr", srv.Addr, "decks", cfg.DecksDir, "dev", cfg.Development)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			logger.Info("Shutting down", "grace", shutdownGrace)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "err", err)
				return srv.Close()
			}
			logger.Info("Lectern server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on (overrides PORT)")
	serveCmd.Flags().Bool("dev", false, "Development mode: include internal error details in responses")
	serveCmd.Flags().Bool("validate", true, "Validate requests against the embedded OpenAPI document")
}
