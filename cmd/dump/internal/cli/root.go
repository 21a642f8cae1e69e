// Package cli wires the dump command's cobra surface. It is internal
// because nothing outside cmd/dump needs to construct a *cobra.Command;
// the engine itself lives in the top-level dump/dumper/config/heap
// packages and is reusable without this CLI at all.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// logLevelFlag is a pflag.Value so an unrecognized --log-level is
// rejected at parse time with a useful message, rather than silently
// falling back to info the way a plain StringVar would.
type logLevelFlag struct {
	level slog.Level
}

var _ pflag.Value = (*logLevelFlag)(nil)

func (f *logLevelFlag) String() string { return f.level.String() }
func (f *logLevelFlag) Type() string   { return "level" }
func (f *logLevelFlag) Set(s string) error {
	return f.level.UnmarshalText([]byte(s))
}

// Main builds the root command, executes it against args, and returns a
// process exit code — the same split cmd/cue's Main()/New() pair uses,
// so the library half (New) stays testable without calling os.Exit.
func Main(args []string) int {
	root, err := New(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

// New builds the root "dump" command and its subcommands.
func New(args []string) (*cobra.Command, error) {
	root := &cobra.Command{
		Use:           "dump",
		Short:         "snapshot a live interpreter heap to source-text files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	level := &logLevelFlag{level: slog.LevelInfo}
	root.PersistentFlags().VarP(level, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level.level})))
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newValidateCmd())
	root.SetArgs(args)
	return root, nil
}
