package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phyten/jscomments/internal/config"
)

// version is replaced at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
	level      slog.LevelVar
	logger     *slog.Logger
	// getenv and environ are swapped out by tests.
	getenv  func(string) string
	environ func() []string
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{getenv: os.Getenv, environ: os.Environ})
}

func newRootCommand(ro *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jscomments",
		Short:         "Find comment spans in JavaScript, TypeScript and JSX sources",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.Version = version

	pf := cmd.PersistentFlags()
	pf.StringVar(&ro.configPath, "config", "", "config file (default: search .jscomments.* upwards, then XDG and home)")
	pf.StringVar(&ro.logLevel, "log-level", "", "debug|info|warn|error")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		raw := ro.logLevel
		if raw == "" {
			raw = ro.getenv("JSCOMMENTS_LOG_LEVEL")
		}
		level, err := config.ParseLogLevel(raw)
		if err != nil {
			return err
		}
		ro.level.Set(level)
		ro.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: &ro.level}))
		return nil
	}

	cmd.AddCommand(
		newScanCommand(ro),
		newGapCommand(ro),
		newStripCommand(ro),
		newServeCommand(ro),
		newWatchCommand(ro),
		newVersionCommand(),
	)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}
