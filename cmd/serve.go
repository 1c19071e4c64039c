package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DachengChen/askdb/agent"
	"github.com/DachengChen/askdb/ai"
	"github.com/DachengChen/askdb/applog"
	"github.com/DachengChen/askdb/config"
	"github.com/DachengChen/askdb/db"
	"github.com/DachengChen/askdb/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveProvider string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference agent backend",
	Long: `serve exposes POST /chat backed by PostgreSQL and an AI provider.

The provider writes SQL from the database schema, the query runs in a
read-only transaction, and a second call formats the rows as text plus
optional chart series. Configure with DATABASE_URL, PORT and
~/.askdb/config.json (or OPENAI_API_KEY, GEMINI_API_KEY, ...).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applog.Mirror(os.Stderr)
		defer applog.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides PORT)")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "AI provider: "+strings.Join(ai.SupportedProviders, ", "))
}

func runServe(ctx context.Context) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	addr := serveAddr
	if addr == "" {
		if addr, err = cfg.Addr(); err != nil {
			return err
		}
	}

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return err
	}
	if serveProvider != "" {
		appCfg.AI.Provider = serveProvider
	}
	provider, err := ai.NewProvider(appCfg.AI)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, *cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	a := agent.New(provider, database, cfg.Schema, cfg.MaxRows)
	router := server.NewRouter(server.NewHandler(a, provider.Name()), cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	applog.Info("askdb agent listening on %s (provider=%s schema=%s)", addr, provider.Name(), cfg.Schema)
	return runServer(ctx, srv)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		applog.Info("askdb agent stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
