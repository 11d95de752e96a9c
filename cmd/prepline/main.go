package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/prepline/prepline/internal/api"
	"github.com/prepline/prepline/internal/app"
	"github.com/prepline/prepline/internal/credential"
	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/store"
)

var (
	// CLI flags
	configFlag string
	tokenFlag  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prepline",
		Short: "Terminal dashboard for kitchen operations",
		Long: `prepline is a terminal dashboard for kitchen operations: a unified
cleaning and production calendar, cleaning item management, and a
goods-received log with expiry tracking.

Configuration lives at ~/.config/prepline/config.yaml. The backend API
token is kept in the system keyring; pass --token once to store it.`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&configFlag, "config", "", "Path to the config file. Defaults to ~/.config/prepline/config.yaml.")
	rootCmd.Flags().StringVar(&tokenFlag, "token", "", "Backend API token. Stored in the system keyring for future runs.")

	tokenCmd := &cobra.Command{
		Use:   "set-token <token>",
		Short: "Store the backend API token in the system keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return credential.Set(credential.TokenKey, args[0])
		},
	}
	rootCmd.AddCommand(tokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	configPath := configFlag
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("no backend configured: set api.base_url in %s", configPath)
	}

	token, err := resolveToken()
	if err != nil {
		return err
	}

	dbPath, err := databasePath()
	if err != nil {
		return err
	}
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening local cache: %w", err)
	}
	defer s.Close()

	client := api.NewClient(cfg.API.BaseURL, token)

	p := tea.NewProgram(app.New(cfg, client, s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}

// resolveToken prefers the --token flag (persisting it), then the
// PREPLINE_TOKEN environment variable, then the system keyring.
func resolveToken() (string, error) {
	if tokenFlag != "" {
		if err := credential.Set(credential.TokenKey, tokenFlag); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not store token in keyring: %v\n", err)
		}
		return tokenFlag, nil
	}

	if token := os.Getenv("PREPLINE_TOKEN"); token != "" {
		return token, nil
	}

	token, err := credential.Get(credential.TokenKey)
	if err != nil || token == "" {
		return "", fmt.Errorf("no API token found: pass --token, set PREPLINE_TOKEN, or run 'prepline set-token'")
	}
	return token, nil
}

// databasePath returns the local cache location, creating its directory.
func databasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	dir := filepath.Join(home, ".local", "share", "prepline")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return filepath.Join(dir, "prepline.db"), nil
}
