package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/piecebook/internal/locale"
	"github.com/five82/piecebook/internal/pieces"
	"github.com/five82/piecebook/internal/state"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	Alive   bool
	Between string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pieces, optionally filtered",
		Long: `List pieces from the catalog.

--alive filters on the composer's life status and --between on the release
year range (START:END, inclusive). The two filters are exclusive; the year
range wins when both are given, as in the interactive list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := listNav(opts, cmd.Flags().Changed("alive"))
			if err != nil {
				return err
			}
			return runList(cmd, rootOpts, nav.Query())
		},
	}

	cmd.Flags().BoolVar(&opts.Alive, "alive", false, "only living (true) or deceased (false) composers")
	cmd.Flags().StringVar(&opts.Between, "between", "", "release year range START:END")

	return cmd
}

// listNav turns the flags into the same filter state the TUI uses.
func listNav(opts *ListOptions, aliveSet bool) (state.Nav, error) {
	var nav state.Nav
	if aliveSet {
		nav.Alive = state.DeceasedOnly
		if opts.Alive {
			nav.Alive = state.AliveOnly
		}
	}
	if opts.Between == "" {
		return nav, nil
	}

	start, end, ok := strings.Cut(opts.Between, ":")
	if !ok {
		return nav, NewExitError(ExitCommandError, fmt.Sprintf("invalid --between %q: want START:END", opts.Between))
	}
	next, err := nav.ApplyYearFilter(start, end)
	if err != nil {
		return nav, WrapExitError(ExitCommandError, fmt.Sprintf("invalid --between %q", opts.Between), err)
	}
	return next, nil
}

func runList(cmd *cobra.Command, rootOpts *RootOptions, q state.Query) error {
	session, err := rootOpts.openSession()
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	ctx := cmd.Context()
	var res pieces.Result[pieces.PieceList]
	switch q.Kind {
	case state.QueryYears:
		res = session.Catalog.PiecesBetweenYears(ctx, q.Start, q.End)
	case state.QueryAlive:
		res = session.Catalog.PiecesByAlive(ctx, q.Alive)
	default:
		res = session.Catalog.AllPieces(ctx)
	}
	if !res.OK() {
		return callFailed("list", res.Failure)
	}

	return writeOutput(cmd.OutOrStdout(), rootOpts.Format, res.Value, func(w io.Writer) error {
		return writePieceTable(w, session.Locale, res.Value.Pieces)
	})
}

// writePieceTable prints one aligned row per piece.
func writePieceTable(w io.Writer, loc locale.Locale, list []pieces.Piece) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, loc.T("list.empty"))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range list {
		status := loc.T("app.filter.deceased")
		if p.CompositorIsAlive {
			status = loc.T("app.filter.alive")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.PieceName, p.CompositorName, strconv.Itoa(p.ReleaseYear()), status)
	}
	return tw.Flush()
}
