// Command nlm is an unofficial CLI for Google NotebookLM.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/crosszan/nlm/pkg/env"
	"github.com/spf13/cobra"
)

var (
	flagStorage  string
	flagLogLevel string
	flagJSON     bool
)

var rootCmd = &cobra.Command{
	Use:           "nlm",
	Short:         "Unofficial Google NotebookLM client",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var level slog.Level
		switch strings.ToLower(flagLogLevel) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "path to storage state file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output JSON instead of tables")
}

func main() {
	_ = env.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
