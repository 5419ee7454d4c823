package piecestest

import (
	"time"

	"github.com/five82/piecebook/internal/pieces"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Sample returns a small catalog spanning living and dead composers.
func Sample() []pieces.Piece {
	return []pieces.Piece{
		{
			ID:                 "clair-de-lune",
			PieceName:          "Clair de lune",
			CompositorName:     "Claude Debussy",
			DurationMinutes:    5,
			DateOfRelease:      date(1905, time.January, 1),
			CompositorIsAlive:  false,
			Instruments:        []string{"Piano"},
			DifficultyLevel:    4,
			Styles:             []string{"Impressionism"},
			CompositorImageURL: "https://example.org/debussy.jpg",
		},
		{
			ID:                 "spiegel-im-spiegel",
			PieceName:          "Spiegel im Spiegel",
			CompositorName:     "Arvo Pärt",
			DurationMinutes:    10.5,
			DateOfRelease:      date(1978, time.June, 1),
			CompositorIsAlive:  true,
			Instruments:        []string{"Piano", "Violin"},
			DifficultyLevel:    2,
			Styles:             []string{"Minimalism", "Tintinnabuli"},
			CompositorImageURL: "https://example.org/part.jpg",
		},
		{
			ID:                 "la-campanella",
			PieceName:          "La campanella",
			CompositorName:     "Franz Liszt",
			DurationMinutes:    4.5,
			DateOfRelease:      date(1851, time.March, 15),
			CompositorIsAlive:  false,
			Instruments:        []string{"Piano"},
			DifficultyLevel:    6,
			Styles:             []string{"Romantic"},
			CompositorImageURL: "https://example.org/liszt.jpg",
		},
	}
}
