// Package main provides the entry point for the protograph CLI tool.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "protograph",
		Short: "Protograph - explore compiled protobuf message hierarchies",
		Long: `Protograph renders the structure of protobuf messages from compiled
descriptors: nested messages, repeated fields, oneof groups, and maps,
without needing the original .proto source.

Commands:
  show      Render the field hierarchy of a module's messages
  root      Infer the proto import root for a .proto file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newShowCommand())
	rootCmd.AddCommand(newRootCommand())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "protograph %s (commit: %s)\n", version, commit)
		},
	}
}
