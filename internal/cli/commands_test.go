package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/five82/piecebook/internal/pieces"
	"github.com/five82/piecebook/internal/pieces/piecestest"
)

// backend starts a mock API and writes a config pointing at it.
func backend(t *testing.T) (string, *piecestest.Store) {
	t.Helper()
	t.Setenv("PIECEBOOK_BASE_URL", "")
	t.Setenv("PIECEBOOK_LOCALE", "")

	srv, store := piecestest.NewServer(t, piecestest.Sample()...)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	body := "base_url = \"" + srv.URL + "\"\nlog_file = \"" + filepath.Join(dir, "piecebook.log") + "\"\n"
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0o644))
	return cfg, store
}

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, cfg, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writePieceYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "piece.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validPiece = `pieceName: Gymnopédie No. 1
compositorName: Erik Satie
durationMinutes: 3.5
dateOfRelease: 1888-01-01
compositorIsAlive: false
instruments: [Piano]
difficultyLevel: 3
styles: [Impressionism, Minimalism]
compositorImageUrl: https://example.org/satie.jpg
`

func TestListText(t *testing.T) {
	cfg, store := backend(t)

	res := execute(t, cfg, "", "list", "--locale", "en")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Clair de lune")
	assert.Contains(t, res.stdout, "Spiegel im Spiegel")
	assert.Len(t, strings.Split(strings.TrimSpace(res.stdout), "\n"), 3)
	assert.Equal(t, []string{"GET /api/pieces/all"}, store.Requests())
}

func TestListAliveJSON(t *testing.T) {
	cfg, store := backend(t)

	res := execute(t, cfg, "", "list", "--alive=true", "--format", "json")
	require.NoError(t, res.err)

	var list pieces.PieceList
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &list))
	require.Len(t, list.Pieces, 1)
	assert.Equal(t, "Arvo Pärt", list.Pieces[0].CompositorName)
	assert.Equal(t, []string{"GET /api/pieces/alive/true"}, store.Requests())
}

func TestListBetweenYAML(t *testing.T) {
	cfg, store := backend(t)

	res := execute(t, cfg, "", "list", "--alive=false", "--between", "1850:1910", "--format", "yaml")
	require.NoError(t, res.err)

	var list pieces.PieceList
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &list))
	assert.Len(t, list.Pieces, 2)
	assert.Equal(t, []string{"GET /api/pieces/between/1850/1910"}, store.Requests())
}

func TestListBackendFailure(t *testing.T) {
	cfg, store := backend(t)
	store.FailWith(500)

	res := execute(t, cfg, "", "list")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, ExitCode(res.err))
	assert.Contains(t, res.err.Error(), "status")
}

func TestShow(t *testing.T) {
	cfg, _ := backend(t)

	res := execute(t, cfg, "", "show", "spiegel-im-spiegel", "--locale", "en")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Arvo Pärt")
	assert.Contains(t, res.stdout, "Level 2 of 6")
	assert.Contains(t, res.stdout, "10.5 minutes")
	assert.Contains(t, res.stdout, "Piano, Violin")
}

func TestShowMissing(t *testing.T) {
	cfg, _ := backend(t)

	res := execute(t, cfg, "", "show", "nope", "--locale", "en")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, ExitCode(res.err))
	assert.Equal(t, "Piece not found.", res.err.Error())
}

func TestAdd(t *testing.T) {
	cfg, store := backend(t)
	file := writePieceYAML(t, validPiece)

	res := execute(t, cfg, "", "add", "--file", file, "--format", "json")
	require.NoError(t, res.err, res.stderr)

	var saved pieces.Piece
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &saved))
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Gymnopédie No. 1", saved.PieceName)
	assert.Len(t, store.Pieces(), 4)
}

func TestAddDateForms(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"plain", "1888-01-01"},
		{"quoted", `"1888-01-01"`},
		{"single quoted", "'1888-01-01'"},
		{"timestamp", "1888-01-01T00:00:00Z"},
		{"quoted timestamp", `"1888-01-01T00:00:00Z"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, store := backend(t)
			body := strings.Replace(validPiece, "dateOfRelease: 1888-01-01", "dateOfRelease: "+tt.date, 1)
			file := writePieceYAML(t, body)

			res := execute(t, cfg, "", "add", "--file", file, "--format", "json")
			require.NoError(t, res.err, res.stderr)

			var saved pieces.Piece
			require.NoError(t, json.Unmarshal([]byte(res.stdout), &saved))
			assert.True(t, saved.DateOfRelease.Equal(time.Date(1888, 1, 1, 0, 0, 0, 0, time.UTC)), "got %v", saved.DateOfRelease)
			assert.Len(t, store.Pieces(), 4)
		})
	}
}

func TestAddRejectsMalformedDate(t *testing.T) {
	cfg, store := backend(t)
	body := strings.Replace(validPiece, "dateOfRelease: 1888-01-01", `dateOfRelease: "01/01/1888"`, 1)
	file := writePieceYAML(t, body)

	res := execute(t, cfg, "", "add", "--file", file, "--locale", "en")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, ExitCode(res.err))
	assert.Contains(t, res.stderr, "dateOfRelease: The release date must use the YYYY-MM-DD format.")
	assert.Empty(t, store.Requests())
}

func TestAddRejectsInvalidFile(t *testing.T) {
	cfg, store := backend(t)
	file := writePieceYAML(t, `pieceName: "  "
compositorName: Erik Satie
durationMinutes: 3
dateOfRelease: 1888-01-01
instruments: [Piano, Piano]
difficultyLevel: 9
styles: []
compositorImageUrl: https://example.org/satie.jpg
`)

	res := execute(t, cfg, "", "add", "--file", file, "--locale", "en")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, ExitCode(res.err))
	assert.Contains(t, res.stderr, "pieceName: The piece name is required.")
	assert.Contains(t, res.stderr, "Instruments must not contain duplicates.")
	assert.Contains(t, res.stderr, "The difficulty level must be a whole number from 1 to 6.")
	assert.Contains(t, res.stderr, "At least one style is required.")
	assert.Empty(t, store.Requests())
}

func TestAddRejectsUnknownKeys(t *testing.T) {
	cfg, _ := backend(t)
	file := writePieceYAML(t, validPiece+"composer: typo\n")

	res := execute(t, cfg, "", "add", "--file", file)
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, ExitCode(res.err))
}

func TestAddBackendFailure(t *testing.T) {
	cfg, store := backend(t)
	store.FailWith(500)
	file := writePieceYAML(t, validPiece)

	res := execute(t, cfg, "", "add", "--file", file, "--locale", "en")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, ExitCode(res.err))
	assert.Contains(t, res.err.Error(), "Saving the piece failed.")
}

func TestUpdate(t *testing.T) {
	cfg, store := backend(t)
	file := writePieceYAML(t, validPiece)

	res := execute(t, cfg, "", "update", "clair-de-lune", "--file", file)
	require.NoError(t, res.err, res.stderr)

	var found bool
	for _, p := range store.Pieces() {
		if p.ID == "clair-de-lune" {
			found = true
			assert.Equal(t, "Gymnopédie No. 1", p.PieceName)
		}
	}
	assert.True(t, found)
	assert.Contains(t, store.Requests(), "PUT /api/pieces/update")
}

func TestDeleteWithYes(t *testing.T) {
	cfg, store := backend(t)

	res := execute(t, cfg, "", "delete", "la-campanella", "--yes")
	require.NoError(t, res.err)
	assert.Len(t, store.Pieces(), 2)
	assert.Equal(t, []string{"DELETE /api/pieces/delete/la-campanella"}, store.Requests())
}

func TestDeletePrompt(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		cfg, store := backend(t)

		res := execute(t, cfg, "n\n", "delete", "la-campanella", "--locale", "en")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, `Do you really want to delete "La campanella"?`)
		assert.Len(t, store.Pieces(), 3)
		assert.Equal(t, []string{"GET /api/pieces/one/la-campanella"}, store.Requests())
	})

	t.Run("confirmed", func(t *testing.T) {
		cfg, store := backend(t)

		res := execute(t, cfg, "y\n", "delete", "la-campanella")
		require.NoError(t, res.err)
		assert.Len(t, store.Pieces(), 2)
	})
}

func TestDeleteMissing(t *testing.T) {
	cfg, _ := backend(t)

	res := execute(t, cfg, "", "delete", "nope", "--yes", "--locale", "en")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, ExitCode(res.err))
	assert.Equal(t, "The deletion failed.", res.err.Error())
}

func TestLogs(t *testing.T) {
	cfg, _ := backend(t)

	// A failing call leaves an error record behind.
	res := execute(t, cfg, "", "show", "nope")
	require.Error(t, res.err)

	res = execute(t, cfg, "", "logs", "--level", "info")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "session started")

	res = execute(t, cfg, "", "logs", "--level", "error", "--format", "json")
	require.NoError(t, res.err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &entries))
	for _, e := range entries {
		assert.Equal(t, "ERROR", e["level"])
	}
}

func TestLogsInvalidLevel(t *testing.T) {
	cfg, _ := backend(t)

	res := execute(t, cfg, "", "logs", "--level", "loud")
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, ExitCode(res.err))
}
