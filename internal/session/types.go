package session

import (
	"context"
	"errors"
	"time"

	"github.com/park285/chessboard/internal/board"
)

var ErrSessionNotFound = errors.New("board session not found")

// Snapshot is the persisted state of one board session. Occupancy is
// stored piece-by-piece so identifiers survive a reload; highlight flags
// are transient and never persisted.
type Snapshot struct {
	ID        string              `json:"id"`
	Pieces    []board.PlacedPiece `json:"pieces"`
	Moves     int                 `json:"moves"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Restore rebuilds the board the snapshot describes.
func (s *Snapshot) Restore() (*board.Board, error) {
	b := board.New()
	for _, pp := range s.Pieces {
		p := pp.Piece
		if err := b.Set(pp.Coord, board.SquareState{Piece: &p}); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Store persists session snapshots. Load returns (nil, nil) for an
// unknown ID.
type Store interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context, id string) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
}
