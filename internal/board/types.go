package board

import (
	"fmt"

	"github.com/google/uuid"
)

// Team identifies a side.
type Team uint8

const (
	White Team = iota
	Black
)

func (t Team) Opponent() Team {
	if t == White {
		return Black
	}
	return White
}

func (t Team) String() string {
	if t == White {
		return "white"
	}
	return "black"
}

// PieceKind selects the movement policy that applies to a piece.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Rook
	Knight
	Bishop
	Queen
	King
)

var kindNames = [...]string{"pawn", "rook", "knight", "bishop", "queen", "king"}

func (k PieceKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Letter returns the placement-string letter for the kind: uppercase for
// white in context, the caller lowercases for black.
func (k PieceKind) Letter() byte {
	switch k {
	case Pawn:
		return 'P'
	case Rook:
		return 'R'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Queen:
		return 'Q'
	default:
		return 'K'
	}
}

func kindFromLetter(c byte) (PieceKind, bool) {
	switch c {
	case 'P':
		return Pawn, true
	case 'R':
		return Rook, true
	case 'N':
		return Knight, true
	case 'B':
		return Bishop, true
	case 'Q':
		return Queen, true
	case 'K':
		return King, true
	}
	return 0, false
}

// Piece is an occupant of a square. ID is the opaque handle the rendering
// collaborator uses to relocate or despawn the piece's visual entity; the
// engine itself never interprets it.
type Piece struct {
	ID   uuid.UUID `json:"id"`
	Kind PieceKind `json:"kind"`
	Team Team      `json:"team"`
}

func NewPiece(kind PieceKind, team Team) Piece {
	return Piece{ID: uuid.New(), Kind: kind, Team: team}
}

// Coord addresses one of the 64 squares. Col and Row are both in [0,7];
// row 0 is the white back rank.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (c Coord) IsOnBoard() bool {
	return c.Col >= 0 && c.Col < Size && c.Row >= 0 && c.Row < Size
}

// Offset returns the coordinate shifted by (dc, dr). The result may be off
// the board; callers filter through IsOnBoard before dereferencing.
func (c Coord) Offset(dc, dr int) Coord {
	return Coord{Col: c.Col + dc, Row: c.Row + dr}
}

func (c Coord) String() string {
	if !c.IsOnBoard() {
		return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
	}
	return fmt.Sprintf("%c%d", 'a'+c.Col, c.Row+1)
}
