package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"product-browser/internal/adapter"
	"product-browser/internal/config"
	"product-browser/internal/core"
	"product-browser/internal/tui"
	"product-browser/pkg/http_client"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	catalogURL string
	logFile    string
)

// rootCmd runs the interactive browser.
var rootCmd = &cobra.Command{
	Use:   "browser",
	Short: "Browse a product catalog in the terminal",
	Long: `Loads the product catalog once, then lets you filter by category,
sort by price or rating, and page through results five at a time.

Keys: ←/h →/l page, c/C category, s/S sort, q quit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config")
	rootCmd.PersistentFlags().StringVar(&catalogURL, "catalog-url", "", "catalog base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file (default: discard)")
	rootCmd.AddCommand(listCmd)
}

// setup loads config and builds the service. The returned closer releases the log file.
func setup() (*core.Service, io.Closer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if catalogURL != "" {
		cfg.Catalog.URL = catalogURL
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}

	var (
		w      io.Writer = io.Discard
		closer io.Closer = io.NopCloser(nil)
	)
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	}
	logger := cfg.Logging.NewLogger(w)

	client := adapter.NewCatalogClient(cfg.Catalog.URL, http_client.CreateHTTPClient(cfg.CatalogTimeout()))
	return core.NewService(client, nil, logger), closer, nil
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	svc, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := tui.New(ctx, svc.NewBrowser(), svc.Load)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
