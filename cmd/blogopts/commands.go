package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"blogopts/internal/api"
	"blogopts/internal/config"
	"blogopts/internal/options"
	"blogopts/internal/storage"
)

// --- serve ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		return runServe(configPath)
	},
}

func init() {
	serveCmd.Flags().String("config", "config.toml", "path to config file")
}

func runServe(configPath string) error {
	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open database with WAL mode and run schema migrations.
	db, err := storage.OpenDatabase(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	store := storage.NewStore(db)
	ext := options.NewExtractor(cfg.Options.DefaultCategoryKey, cfg.Options.DefaultPostFormatKey)

	router := api.NewRouter(store, ext, cfg)

	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// --- normalize / defaults ---

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Flatten a raw options document and print it as JSON",
	Long: `Flatten a raw options document and print it as JSON.

The document is read from the given file, or from stdin when no file is
given. Both backend shapes are accepted: the legacy RPC options listing
(descriptors with a "value" entry) and the flat settings shape.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readRawDocument(args)
		if err != nil {
			return err
		}

		opts := options.MapOptions(raw)
		return printJSON(cmd.OutOrStdout(), opts)
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults [file]",
	Short: "Print the default category ID and post format from a raw options document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		categoryKey, _ := cmd.Flags().GetString("category-key")
		formatKey, _ := cmd.Flags().GetString("format-key")

		raw, err := readRawDocument(args)
		if err != nil {
			return err
		}

		opts := options.MapOptions(raw)
		ext := options.NewExtractor(categoryKey, formatKey)

		out := map[string]any{
			"default_category_id": nil,
			"default_post_format": nil,
		}
		if id, ok := ext.DefaultCategoryID(opts); ok {
			out["default_category_id"] = id
		}
		if format, ok := ext.DefaultPostFormat(opts); ok {
			out["default_post_format"] = format
		}

		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	defaultsCmd.Flags().String("category-key", "", "option key holding the default category (default: default_category)")
	defaultsCmd.Flags().String("format-key", "", "option key holding the default post format (default: default_post_format)")
}

// readRawDocument reads a JSON options document from the file named in args,
// or from stdin when args is empty.
func readRawDocument(args []string) (map[string]any, error) {
	var data []byte
	var err error

	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return raw, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
