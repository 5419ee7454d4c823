package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/five82/piecebook/internal/form"
	"github.com/five82/piecebook/internal/locale"
	"github.com/five82/piecebook/internal/pieces"
)

// SaveOptions holds flags shared by add and update.
type SaveOptions struct {
	File string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaveOptions{}
	cmd := &cobra.Command{
		Use:   "add --file piece.yaml",
		Short: "Create a piece from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, rootOpts, opts, "")
		},
	}
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML file describing the piece")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaveOptions{}
	cmd := &cobra.Command{
		Use:   "update <id> --file piece.yaml",
		Short: "Replace a piece with the contents of a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, rootOpts, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML file describing the piece")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// pieceFile is the on-disk shape of a piece. The date stays a string so
// quoted calendar dates decode; time.Time only accepts RFC 3339 text.
type pieceFile struct {
	ID                 string   `yaml:"id,omitempty"`
	PieceName          string   `yaml:"pieceName"`
	CompositorName     string   `yaml:"compositorName"`
	DurationMinutes    float64  `yaml:"durationMinutes"`
	DateOfRelease      string   `yaml:"dateOfRelease"`
	CompositorIsAlive  bool     `yaml:"compositorIsAlive"`
	Instruments        []string `yaml:"instruments"`
	DifficultyLevel    int      `yaml:"difficultyLevel"`
	Styles             []string `yaml:"styles"`
	CompositorImageURL string   `yaml:"compositorImageUrl"`
}

// values converts the file into form values. A date that is neither
// YYYY-MM-DD nor RFC 3339 is kept as written so validation reports it.
func (f pieceFile) values() form.Values {
	v := form.FromPiece(pieces.Piece{
		PieceName:          f.PieceName,
		CompositorName:     f.CompositorName,
		DurationMinutes:    f.DurationMinutes,
		CompositorIsAlive:  f.CompositorIsAlive,
		Instruments:        f.Instruments,
		DifficultyLevel:    f.DifficultyLevel,
		Styles:             f.Styles,
		CompositorImageURL: f.CompositorImageURL,
	})
	v.DateOfRelease = strings.TrimSpace(f.DateOfRelease)
	if _, err := form.ParseDate(v.DateOfRelease); err == nil {
		return v
	}
	if t, err := time.Parse(time.RFC3339, v.DateOfRelease); err == nil {
		v.DateOfRelease = form.FormatDate(t)
	}
	return v
}

// readPieceFile decodes a piece from YAML. Unknown keys are rejected.
func readPieceFile(path string) (form.Values, error) {
	f, err := os.Open(path)
	if err != nil {
		return form.Values{}, err
	}
	defer func() { _ = f.Close() }()

	var p pieceFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return form.Values{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return p.values(), nil
}

// runSave validates the file with the form rules, then adds (empty id) or
// updates the piece.
func runSave(cmd *cobra.Command, rootOpts *RootOptions, opts *SaveOptions, id string) error {
	values, err := readPieceFile(opts.File)
	if err != nil {
		return WrapExitError(ExitCommandError, "read piece", err)
	}

	session, err := rootOpts.openSession()
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	if errs := form.Validate(values, time.Now()); !errs.Empty() {
		writeValidationErrors(cmd.ErrOrStderr(), session.Locale, errs)
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid field(s)", len(errs)))
	}

	piece, err := values.Piece(id)
	if err != nil {
		return WrapExitError(ExitFailure, session.Locale.T(form.ErrGeneric), err)
	}

	var res pieces.Result[pieces.PieceOne]
	op := "add"
	if id != "" {
		op = "update"
		res = session.Catalog.UpdatePiece(cmd.Context(), piece)
	} else {
		res = session.Catalog.AddPiece(cmd.Context(), piece)
	}
	if !res.OK() {
		return WrapExitError(ExitFailure, session.Locale.T(form.ErrSaveFailed), callFailed(op, res.Failure))
	}

	saved := piece
	if res.Value.Piece != nil {
		saved = *res.Value.Piece
	}
	return writeOutput(cmd.OutOrStdout(), rootOpts.Format, saved, func(w io.Writer) error {
		return writePiece(w, session.Locale, saved)
	})
}

// writeValidationErrors prints one localized line per failing field in form
// order.
func writeValidationErrors(w io.Writer, loc locale.Locale, errs form.Errors) {
	order := make(map[form.Field]int, len(form.Fields))
	for i, f := range form.Fields {
		order[f] = i
	}
	fields := make([]form.Field, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return order[fields[i]] < order[fields[j]] })

	for _, f := range fields {
		fmt.Fprintf(w, "%s: %s\n", f, loc.T(errs[f]))
	}
}
