package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbridge/internal/cli/config"
	"github.com/leapstack-labs/sqlbridge/internal/server"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parse, render, lineage, and check API over HTTP",
		Long: `Start an HTTP server exposing the engine as a JSON API:

  POST /v1/parse     parse SQL, return the syntax tree
  POST /v1/render    normalize or transpile SQL
  POST /v1/lineage   table and column lineage
  POST /v1/check     allow-list validation
  GET  /healthz      liveness probe`,
		Example: `  sqlbridge serve --addr :8093

  curl -s localhost:8093/v1/lineage -d '{"sql": "SELECT a FROM t"}'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from config, "+config.DefaultServeAddr+")")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)

	addr := opts.Addr
	if addr == "" {
		addr = cmdCtx.Cfg.Serve.Addr
	}
	if addr == "" {
		addr = config.DefaultServeAddr
	}

	srv := server.New(server.Config{
		DefaultDialect: cmdCtx.Cfg.Dialect,
		Logger:         slog.Default(),
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx := cmd.Context()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	slog.Info("http api listening", "addr", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
