package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/piecebook/internal/pieces"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	Yes bool
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{}
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a piece",
		Long: `Delete a piece by id.

Without --yes the piece is fetched first and the deletion must be confirmed
on stdin. Declining sends no delete request.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, rootOpts, opts, args[0])
		},
	}
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func runDelete(cmd *cobra.Command, rootOpts *RootOptions, opts *DeleteOptions, id string) error {
	session, err := rootOpts.openSession()
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	ctx := cmd.Context()
	if !opts.Yes {
		one := session.Catalog.PieceByID(ctx, id)
		if !one.OK() || one.Value.Piece == nil {
			if one.Failure == pieces.FailureNotFound || one.OK() {
				return NewExitError(ExitFailure, session.Locale.T("piece.notFound"))
			}
			return callFailed("show", one.Failure)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", session.Locale.T("list.deleteConfirm", one.Value.Piece.PieceName))
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes", "o", "oui":
		default:
			return nil
		}
	}

	res := session.Catalog.DeletePiece(ctx, id)
	if !res.OK() || !res.Value.Success {
		return NewExitError(ExitFailure, session.Locale.T("list.deleteError"))
	}

	return writeOutput(cmd.OutOrStdout(), rootOpts.Format, res.Value, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, id)
		return err
	})
}
