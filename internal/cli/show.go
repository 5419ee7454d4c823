package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/piecebook/internal/locale"
	"github.com/five82/piecebook/internal/pieces"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one piece",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := rootOpts.openSession()
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()

			res := session.Catalog.PieceByID(cmd.Context(), args[0])
			if !res.OK() {
				if res.Failure == pieces.FailureNotFound {
					return NewExitError(ExitFailure, session.Locale.T("piece.notFound"))
				}
				return callFailed("show", res.Failure)
			}
			if res.Value.Piece == nil {
				return NewExitError(ExitFailure, session.Locale.T("piece.notFound"))
			}

			piece := res.Value.Piece
			return writeOutput(cmd.OutOrStdout(), rootOpts.Format, piece, func(w io.Writer) error {
				return writePiece(w, session.Locale, *piece)
			})
		},
	}
}

// writePiece prints the same fields the detail screen shows.
func writePiece(w io.Writer, loc locale.Locale, p pieces.Piece) error {
	status := loc.T("piece.deceased")
	if p.CompositorIsAlive {
		status = loc.T("piece.alive")
	}

	rows := [][2]string{
		{loc.T("form.pieceName"), p.PieceName},
		{loc.T("piece.composer"), p.CompositorName},
		{"", status},
		{loc.T("piece.duration"), loc.T("piece.minutes", loc.Number(p.DurationMinutes))},
		{loc.T("piece.releaseDate"), loc.FormatDate(p.DateOfRelease)},
		{loc.T("piece.difficulty"), loc.T("piece.difficultyLevel", p.DifficultyLevel)},
		{loc.T("piece.instruments"), strings.Join(p.Instruments, ", ")},
		{loc.T("piece.styles"), strings.Join(p.Styles, ", ")},
		{loc.T("piece.image"), p.CompositorImageURL},
	}
	for _, row := range rows {
		label := row[0]
		if label != "" {
			label += ":"
		}
		if _, err := fmt.Fprintf(w, "%-22s %s\n", label, row[1]); err != nil {
			return err
		}
	}
	return nil
}
