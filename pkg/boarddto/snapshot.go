package boarddto

import "time"

// PlacedPiece pairs a piece with its current square.
type PlacedPiece struct {
	PieceID string `json:"piece_id"`
	Kind    string `json:"kind"`
	Team    string `json:"team"`
	Square  Square `json:"square"`
}

// SessionState is the externally visible state of one board session.
type SessionState struct {
	SessionID   string        `json:"session_id"`
	Placement   string        `json:"placement"`
	Pieces      []PlacedPiece `json:"pieces"`
	Highlighted []Square      `json:"highlighted,omitempty"`
	Moves       int           `json:"moves"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
