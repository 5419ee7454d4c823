// Package piecestest serves the pieces REST surface from memory.
package piecestest

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/five82/piecebook/internal/pieces"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// Store is the in-memory backend state.
type Store struct {
	mu       sync.RWMutex
	order    []string
	pieces   map[string]pieces.Piece
	entropy  io.Reader
	failWith int
	requests []string
}

// NewStore seeds a store. Seed pieces without an ID get one.
func NewStore(seed ...pieces.Piece) *Store {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	s := &Store{
		pieces:  make(map[string]pieces.Piece),
		entropy: ulid.Monotonic(src, 0),
	}
	for _, p := range seed {
		s.insert(p)
	}
	return s
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) insert(p pieces.Piece) pieces.Piece {
	if p.ID == "" {
		p.ID = s.newID()
	}
	if _, exists := s.pieces[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.pieces[p.ID] = p
	return p
}

// Pieces returns the stored pieces in insertion order.
func (s *Store) Pieces() []pieces.Piece {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(pieces.Piece) bool { return true })
}

func (s *Store) filter(keep func(pieces.Piece) bool) []pieces.Piece {
	out := make([]pieces.Piece, 0, len(s.order))
	for _, id := range s.order {
		if p := s.pieces[id]; keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// FailWith makes every request answer with status until cleared with 0.
func (s *Store) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = status
}

// Requests lists the requests served so far as "METHOD path".
func (s *Store) Requests() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.requests...)
}

// Handler builds the gin engine serving the store.
func Handler(s *Store) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.record)

	api := r.Group("/api/pieces")
	{
		api.GET("/all", s.handleAll)
		api.GET("/one/:id", s.handleOne)
		api.GET("/alive/:alive", s.handleAlive)
		api.GET("/between/:start/:end", s.handleBetween)
		api.POST("/add", s.handleAdd)
		api.PUT("/update", s.handleUpdate)
		api.DELETE("/delete/:id", s.handleDelete)
	}
	return r
}

// NewServer starts an httptest server over a seeded store and closes it when
// the test ends.
func NewServer(t testing.TB, seed ...pieces.Piece) (*httptest.Server, *Store) {
	t.Helper()
	store := NewStore(seed...)
	server := httptest.NewServer(Handler(store))
	t.Cleanup(server.Close)
	return server, store
}

// ListenAndServe serves store on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, store *Store) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(store),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Store) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, c.Request.Method+" "+c.Request.URL.Path)
	status := s.failWith
	s.mu.Unlock()

	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	c.Next()
}

func (s *Store) handleAll(c *gin.Context) {
	c.JSON(http.StatusOK, pieces.PieceList{Pieces: s.Pieces()})
}

func (s *Store) handleOne(c *gin.Context) {
	s.mu.RLock()
	p, ok := s.pieces[c.Param("id")]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "piece not found"})
		return
	}
	c.JSON(http.StatusOK, pieces.PieceOne{Piece: &p})
}

func (s *Store) handleAlive(c *gin.Context) {
	alive, err := strconv.ParseBool(c.Param("alive"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "alive must be true or false"})
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c.JSON(http.StatusOK, pieces.PieceList{Pieces: s.filter(func(p pieces.Piece) bool {
		return p.CompositorIsAlive == alive
	})})
}

func (s *Store) handleBetween(c *gin.Context) {
	start, errStart := strconv.Atoi(c.Param("start"))
	end, errEnd := strconv.Atoi(c.Param("end"))
	if errStart != nil || errEnd != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "years must be integers"})
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c.JSON(http.StatusOK, pieces.PieceList{Pieces: s.filter(func(p pieces.Piece) bool {
		year := p.ReleaseYear()
		return year >= start && year <= end
	})})
}

type pieceRequest struct {
	Piece *pieces.Piece `json:"piece"`
}

func (s *Store) handleAdd(c *gin.Context) {
	var req pieceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Piece == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {piece}"})
		return
	}
	if req.Piece.ID != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new piece must not carry _id"})
		return
	}
	s.mu.Lock()
	created := s.insert(*req.Piece)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, pieces.PieceOne{Piece: &created})
}

func (s *Store) handleUpdate(c *gin.Context) {
	var req pieceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Piece == nil || req.Piece.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {piece} with _id"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pieces[req.Piece.ID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "piece not found"})
		return
	}
	updated := s.insert(*req.Piece)
	c.JSON(http.StatusOK, pieces.PieceOne{Piece: &updated})
}

func (s *Store) handleDelete(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pieces[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}
	delete(s.pieces, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	c.JSON(http.StatusOK, pieces.DeleteResult{Success: true})
}
