// Package main is the entry point for the cor3 binary. It loads a chain
// definition from YAML and submits requests to it, validates it or renders it
// as a DOT graph.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ib-77/cor3/internal/logging"
	"github.com/spf13/cobra"
)

const (
	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
)

// CLIConfig holds the flags shared by every subcommand.
type CLIConfig struct {
	Chain     string
	LogLevel  string
	LogFormat string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cor3",
		Short: "Sequential responsibility chains from YAML",
		Long: `cor3 walks requests through an ordered chain of handlers. The first
handler whose rule accepts a request resolves it; a request no handler
accepts is reported as unresolved.

Example:
  cor3 submit --chain approval.yaml 500 3000 7000`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("chain", "c", "", "Path to chain definition (YAML)")
	rootCmd.PersistentFlags().StringP("log-level", "l", defaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", defaultLogFormat, "Log format (text, json)")

	rootCmd.AddCommand(newSubmitCmd(), newValidateCmd(), newGraphCmd())
	return rootCmd
}

// parseCLIConfig reads the persistent flags.
func parseCLIConfig(cmd *cobra.Command) (*CLIConfig, error) {
	chainPath, err := cmd.Flags().GetString("chain")
	if err != nil {
		return nil, fmt.Errorf("failed to get chain flag: %w", err)
	}
	if chainPath == "" {
		return nil, fmt.Errorf("no chain definition given, use --chain FILE")
	}

	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}

	logFormat, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-format flag: %w", err)
	}

	return &CLIConfig{
		Chain:     chainPath,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}, nil
}

func newLogger(cmd *cobra.Command, cfg *CLIConfig) *slog.Logger {
	return logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, cmd.ErrOrStderr())
}
