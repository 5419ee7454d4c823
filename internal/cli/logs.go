package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/five82/piecebook/internal/config"
	"github.com/five82/piecebook/internal/logtail"
)

// LogsOptions holds flags for the logs command.
type LogsOptions struct {
	Lines int
	Level string
}

// NewLogsCommand creates the logs command.
func NewLogsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogsOptions{}
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the piecebook log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --level %q", opts.Level), err)
			}

			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "load config", err)
			}

			entries, err := logtail.Read(cfg.LogFile, opts.Lines, level)
			if err != nil {
				return WrapExitError(ExitFailure, "read log", err)
			}
			if entries == nil {
				entries = []logtail.Entry{}
			}

			return writeOutput(cmd.OutOrStdout(), rootOpts.Format, entries, func(w io.Writer) error {
				for _, e := range entries {
					if _, err := fmt.Fprintln(w, logtail.Format(e)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 50, "number of records to show (0 for all)")
	cmd.Flags().StringVar(&opts.Level, "level", "info", "minimum level (debug|info|warn|error)")
	return cmd
}
