// Package archive persists committed moves for later review. Persistence
// is best effort: a failed insert never blocks the board.
package archive

import (
	"context"
	"time"
)

// Record is one committed move as stored.
type Record struct {
	SessionID string    `json:"session_id"`
	Number    int       `json:"number"`
	Kind      string    `json:"kind"`
	Team      string    `json:"team"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Captured  string    `json:"captured,omitempty"`
	PlayedAt  time.Time `json:"played_at"`
}

// Repository stores move records. RecentMoves returns the newest moves
// of a session first.
type Repository interface {
	InsertMove(ctx context.Context, rec Record) error
	RecentMoves(ctx context.Context, sessionID string, limit int) ([]Record, error)
}
