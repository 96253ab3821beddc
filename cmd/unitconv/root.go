package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/unitconv/internal/cli"
	"github.com/aretw0/unitconv/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "unitconv",
	Short: "unitconv converts distances, temperatures and weights",
	Long: `unitconv converts kilometers to meters, Fahrenheit to Celsius and grams to kilograms.

Run it without a command for the interactive converter, or host converter
sessions over HTTP (serve) or the Model Context Protocol (mcp).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every session event to stderr")
	rootCmd.PersistentFlags().String("store", "", "Session store: memory, file or redis (overrides config)")
	rootCmd.PersistentFlags().String("store-dir", "", "Directory of the file store (overrides config)")
}

// loadConfig resolves configuration with flags taking precedence over env, file and defaults.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Backend = v
	}
	if v, _ := cmd.Flags().GetString("store-dir"); v != "" {
		cfg.Store.Dir = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := cli.NewLogger(cfg, debug)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
