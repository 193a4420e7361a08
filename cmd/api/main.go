package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"product-browser/internal/adapter"
	"product-browser/internal/config"
	"product-browser/internal/core"
	"product-browser/internal/metrics"
	"product-browser/pkg/http_client"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the product browser over HTTP",
	Long: `Loads the product catalog in the background and serves filtered, sorted
and paginated views under /api/v1, plus /healthz and /metrics.

The config path may also be set with BROWSER_CONFIG.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", os.Getenv("BROWSER_CONFIG"), "path to YAML config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := cfg.Logging.NewLogger(os.Stdout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := adapter.NewSessionRepo()
	reg := metrics.NewRegistry(sessions.Count)
	client := adapter.NewCatalogClient(cfg.Catalog.URL, http_client.CreateHTTPClient(cfg.CatalogTimeout()))
	svc := core.NewService(metrics.InstrumentLoader(reg, client), sessions, logger)

	// the API answers with an empty catalog until this finishes
	go func() { _ = svc.Load(ctx) }()

	h := adapter.NewHTTPHandler(svc, logger)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           adapter.NewRouter(h, reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", srv.Addr, "catalog", cfg.Catalog.URL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
