package pieces

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

// Result is the outcome of a domain call. Value is nil exactly when the call
// failed; Failure then says why.
type Result[T any] struct {
	Value   *T
	Failure FailureKind
}

// OK reports whether the call produced a value.
func (r Result[T]) OK() bool {
	return r.Value != nil
}

// Catalog is the set of piece operations the UI and CLI depend on.
type Catalog interface {
	AllPieces(ctx context.Context) Result[PieceList]
	PieceByID(ctx context.Context, id string) Result[PieceOne]
	PiecesByAlive(ctx context.Context, alive bool) Result[PieceList]
	PiecesBetweenYears(ctx context.Context, start, end int) Result[PieceList]
	AddPiece(ctx context.Context, piece Piece) Result[PieceOne]
	UpdatePiece(ctx context.Context, piece Piece) Result[PieceOne]
	DeletePiece(ctx context.Context, id string) Result[DeleteResult]
}

var _ Catalog = (*API)(nil)

// API implements Catalog over a Client. Failures are logged and collapsed
// into an empty Result; errors never reach callers.
type API struct {
	client *Client
	logger *slog.Logger
}

// NewAPI wires an API. A nil logger discards failure records.
func NewAPI(client *Client, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.New(discardHandler{})
	}
	return &API{client: client, logger: logger}
}

func (a *API) AllPieces(ctx context.Context) Result[PieceList] {
	return call[PieceList](ctx, a, "fetchAll", http.MethodGet, "/api/pieces/all", nil)
}

func (a *API) PieceByID(ctx context.Context, id string) Result[PieceOne] {
	return call[PieceOne](ctx, a, "fetchOne", http.MethodGet, "/api/pieces/one/"+url.PathEscape(id), nil)
}

func (a *API) PiecesByAlive(ctx context.Context, alive bool) Result[PieceList] {
	return call[PieceList](ctx, a, "fetchByAlive", http.MethodGet, "/api/pieces/alive/"+strconv.FormatBool(alive), nil)
}

func (a *API) PiecesBetweenYears(ctx context.Context, start, end int) Result[PieceList] {
	path := "/api/pieces/between/" + strconv.Itoa(start) + "/" + strconv.Itoa(end)
	return call[PieceList](ctx, a, "fetchBetween", http.MethodGet, path, nil)
}

// AddPiece creates piece. Any ID on the argument is dropped; the backend
// assigns one.
func (a *API) AddPiece(ctx context.Context, piece Piece) Result[PieceOne] {
	piece.ID = ""
	return call[PieceOne](ctx, a, "add", http.MethodPost, "/api/pieces/add", pieceBody{Piece: piece})
}

func (a *API) UpdatePiece(ctx context.Context, piece Piece) Result[PieceOne] {
	return call[PieceOne](ctx, a, "update", http.MethodPut, "/api/pieces/update", pieceBody{Piece: piece})
}

func (a *API) DeletePiece(ctx context.Context, id string) Result[DeleteResult] {
	return call[DeleteResult](ctx, a, "delete", http.MethodDelete, "/api/pieces/delete/"+url.PathEscape(id), nil)
}

func call[T any](ctx context.Context, a *API, op, method, path string, body any) Result[T] {
	value, err := Request[T](ctx, a.client, path, method, body)
	if err != nil {
		kind := KindOf(err)
		attrs := []any{
			slog.String("operation", op),
			slog.String("method", method),
			slog.String("path", path),
			slog.String("kind", kind.String()),
			slog.String("error", err.Error()),
		}
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.Status != 0 {
			attrs = append(attrs, slog.Int("status", reqErr.Status))
		}
		a.logger.ErrorContext(ctx, "api.error."+op, attrs...)
		return Result[T]{Failure: kind}
	}
	return Result[T]{Value: &value}
}
