package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/piecebook/internal/pieces/piecestest"
)

// NewMockServerCommand creates the mock-server command, an in-memory
// backend seeded with sample pieces for local use.
func NewMockServerCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve an in-memory pieces API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := piecestest.NewStore(piecestest.Sample()...)
			fmt.Fprintf(cmd.ErrOrStderr(), "serving %d pieces on http://%s\n", len(store.Pieces()), addr)
			return piecestest.ListenAndServe(cmd.Context(), addr, store)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}
