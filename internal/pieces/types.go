package pieces

import "time"

// Piece is one musical work as stored by the backend.
type Piece struct {
	ID                 string    `json:"_id,omitempty" yaml:"id,omitempty"`
	PieceName          string    `json:"pieceName" yaml:"pieceName"`
	CompositorName     string    `json:"compositorName" yaml:"compositorName"`
	DurationMinutes    float64   `json:"durationMinutes" yaml:"durationMinutes"`
	DateOfRelease      time.Time `json:"dateOfRelease" yaml:"dateOfRelease"`
	CompositorIsAlive  bool      `json:"compositorIsAlive" yaml:"compositorIsAlive"`
	Instruments        []string  `json:"instruments" yaml:"instruments"`
	DifficultyLevel    int       `json:"difficultyLevel" yaml:"difficultyLevel"`
	Styles             []string  `json:"styles" yaml:"styles"`
	CompositorImageURL string    `json:"compositorImageUrl" yaml:"compositorImageUrl"`
}

// ReleaseYear returns the calendar year of the release date in UTC.
func (p Piece) ReleaseYear() int {
	return p.DateOfRelease.UTC().Year()
}

// PieceList mirrors the list endpoints' payload.
type PieceList struct {
	Pieces []Piece `json:"pieces" yaml:"pieces"`
}

// PieceOne mirrors the single-piece payload. Piece is nil when the backend
// answered without one.
type PieceOne struct {
	Piece *Piece `json:"piece" yaml:"piece"`
}

// DeleteResult mirrors the delete endpoint's payload.
type DeleteResult struct {
	Success bool `json:"success" yaml:"success"`
}

// pieceBody wraps a piece for add/update requests.
type pieceBody struct {
	Piece Piece `json:"piece"`
}
