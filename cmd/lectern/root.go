package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/lectern/internal/config"
	"github.com/aretw0/lectern/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Lectern turns JSON deck descriptions into PowerPoint files",
	Long: `Lectern builds .pptx presentations from a JSON description of slides.
It runs as an HTTP service, as an MCP server for AI agents, or offline from the command line.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is normal.
		_ = godotenv.Load()
	},
}

func init() {
	addConfigFlags(rootCmd.PersistentFlags())
}

// addConfigFlags defines the flags read by loadConfig.
func addConfigFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "Path to a YAML config file (default ./"+config.DefaultFile+" if present)")
	fs.String("decks", "", "Directory of stored decks")
	fs.String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig resolves file, environment and persistent flags, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, os.LookupEnv)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("decks") {
		cfg.DecksDir, _ = cmd.Flags().GetString("decks")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		if _, err := config.ParseLevel(cfg.LogLevel); err != nil {
			return cfg, fmt.Errorf("invalid --log-level: %w", err)
		}
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	logger := logging.NewWithFormat(os.Stderr, cfg.Level(), logging.Format(cfg.LogFormat))
	slog.SetDefault(logger)
	return logger
}
