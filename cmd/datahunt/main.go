package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"datahunt/internal/api"
	"datahunt/internal/config"
	"datahunt/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	baseURL    string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "datahunt",
	Short: "DataHunt - upload, search and export contacts",
	Long: `DataHunt is a terminal client for the contacts API.

Upload CSV or Excel contact lists, search them with filters and export the
matches as CSV or XLSX.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		if err := logging.Initialize(cfg.Logging.Options()); err != nil {
			return fmt.Errorf("failed to initialize file logging: %w", err)
		}
		logging.Boot("datahunt starting: %s (api %s)", cmd.CommandPath(), cfg.API.BaseURL)

		// The interactive UI owns the terminal; keep stdout clean.
		if isInteractive(cmd) {
			logger = zap.NewNop()
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runTUI,
}

// isInteractive reports whether cmd starts the TUI: the bare root or "tui".
func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd == tuiCmd
}

// loadConfig reads .env, the YAML config and the command line overrides.
func loadConfig() (*config.Config, error) {
	config.LoadDotEnv()

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if verbose {
		c.Logging.Level = "debug"
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func newClient() (*api.Client, error) {
	return api.NewClient(cfg.API.BaseURL, api.WithTimeout(cfg.GetAPITimeout()))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .datahunt/config.yaml or ~/.datahunt/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Contacts API root (or set DATAHUNT_API_BASE_URL)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
