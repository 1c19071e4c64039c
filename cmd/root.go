// Package cmd contains all Cobra commands for askdb.
//
// Running `askdb` with no subcommand opens the chat TUI against the
// configured agent backend. `askdb ask` sends one question from the
// shell and `askdb serve` runs the reference agent backend.
package cmd

import (
	"errors"
	"io/fs"

	"github.com/DachengChen/askdb/applog"
	"github.com/DachengChen/askdb/client"
	"github.com/DachengChen/askdb/config"
	"github.com/DachengChen/askdb/tui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var backendFlag string

var rootCmd = &cobra.Command{
	Use:   "askdb",
	Short: "Chat with your database through an AI agent",
	Long: `askdb is a terminal chat client for a database agent:
  • Ask questions in plain language, get text plus bar and pie charts
  • Suggested queries one keystroke away
  • A reference agent backend (askdb serve) backed by PostgreSQL

Run 'askdb' to open the chat UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv()
	},
	// Running with no subcommand launches the TUI.
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer applog.Close()
		return tui.Start(c, c.BaseURL())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "agent base URL (overrides ASKDB_BACKEND_URL)")
	rootCmd.AddCommand(askCmd, serveCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadDotEnv primes the environment from ./.env. A missing file is fine.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		applog.Error("load .env: %v", err)
		return err
	}
	return nil
}

func newClient() (*client.Client, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	backend := cfg.Backend()
	if backendFlag != "" {
		backend = backendFlag
	}
	return client.New(backend, cfg.Timeout), nil
}
