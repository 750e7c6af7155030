package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand once the root command has
// loaded the configuration.
type app struct {
	cfgFile string
	cfg     Config
	logger  *slog.Logger
}

// NewRootCmd builds the ngramgen command tree.
func NewRootCmd() *cobra.Command {
	defaults := DefaultConfig()
	a := &app{
		cfg:    defaults,
		logger: newLogger(defaults.LogLevel),
	}

	cmd := &cobra.Command{
		Use:           "ngramgen",
		Short:         "Generate random sentences from an n-gram model of plain-text files",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := LoadConfig(LoadOptions{
				Cmd:        cmd,
				ConfigFile: a.cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			a.cfg = loaded
			a.logger = newLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newGenerateCmd(a))
	cmd.AddCommand(newStatsCmd(a))
	cmd.AddCommand(newHistoryCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// newLogger builds the text logger used by every command. Logs go to stderr
// so that generated sentences on stdout stay clean.
func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: ParseLogLevel(level)}))
}
