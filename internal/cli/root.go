package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/five82/piecebook/internal/app"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Locale     string
	Theme      string
	Format     string // "text" | "json" | "yaml"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the piecebook command. Without a subcommand it
// starts the TUI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "piecebook",
		Short: "Browse and edit a catalog of musical pieces",
		Long: `piecebook is a terminal client for a pieces REST API.

Run it without arguments for the interactive interface, or use the
subcommands to manage pieces from scripts. "logs" prints the end of
the log file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: opts.ConfigPath,
				Locale:     opts.Locale,
				Theme:      opts.Theme,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/piecebook/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", "", "interface language (fr|en)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "color theme (Nightfox|Kanagawa|Slate)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewLogsCommand(opts))
	cmd.AddCommand(NewMockServerCommand())

	return cmd
}

// openSession wires config, logging and the API client for one command.
func (o *RootOptions) openSession() (*app.Session, error) {
	session, err := app.Setup(app.Options{ConfigPath: o.ConfigPath, Locale: o.Locale})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "setup", err)
	}
	return session, nil
}
