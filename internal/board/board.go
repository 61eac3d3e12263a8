package board

import (
	"errors"
	"fmt"
)

// Size is the board edge length. The grid is Size×Size.
const Size = 8

var ErrOutOfBounds = errors.New("coordinate off the board")

// SquareState is the per-square record. Piece is nil for an empty square.
// Highlighted is a transient flag layered on top of the occupancy state;
// capture squares carry it while still occupied.
type SquareState struct {
	Piece       *Piece `json:"piece,omitempty"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

func (s SquareState) Empty() bool { return s.Piece == nil }

func (s SquareState) OccupiedBy(t Team) bool {
	return s.Piece != nil && s.Piece.Team == t
}

// Board is the single source of occupancy truth: a dense mapping from
// Coord to SquareState, fully populated at all times. It is mutated only
// by the engine; renderers read it through snapshots.
type Board struct {
	squares [Size][Size]SquareState
}

// New returns an empty board.
func New() *Board { return &Board{} }

var backRank = [Size]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewGame returns a board with the standard starting arrangement: white
// back rank on row 0, white pawns on row 1, black pawns on row 6 and the
// mirrored black back rank on row 7. Every piece gets a fresh identifier.
func NewGame() *Board {
	b := New()
	for col, kind := range backRank {
		b.mustPlace(Coord{Col: col, Row: 0}, NewPiece(kind, White))
		b.mustPlace(Coord{Col: col, Row: 1}, NewPiece(Pawn, White))
		b.mustPlace(Coord{Col: col, Row: 6}, NewPiece(Pawn, Black))
		b.mustPlace(Coord{Col: col, Row: 7}, NewPiece(kind, Black))
	}
	return b
}

func (b *Board) mustPlace(c Coord, p Piece) {
	b.squares[c.Row][c.Col] = SquareState{Piece: &p}
}

// Get returns the state of the square at c.
func (b *Board) Get(c Coord) (SquareState, error) {
	if !c.IsOnBoard() {
		return SquareState{}, fmt.Errorf("get %s: %w", c, ErrOutOfBounds)
	}
	return b.squares[c.Row][c.Col], nil
}

// Set replaces the state of the square at c.
func (b *Board) Set(c Coord, s SquareState) error {
	if !c.IsOnBoard() {
		return fmt.Errorf("set %s: %w", c, ErrOutOfBounds)
	}
	if s.Piece != nil {
		p := *s.Piece
		s.Piece = &p
	}
	b.squares[c.Row][c.Col] = s
	return nil
}

// SetHighlight toggles the transient highlight flag without touching
// occupancy.
func (b *Board) SetHighlight(c Coord, on bool) error {
	if !c.IsOnBoard() {
		return fmt.Errorf("highlight %s: %w", c, ErrOutOfBounds)
	}
	b.squares[c.Row][c.Col].Highlighted = on
	return nil
}

// Highlighted returns every currently highlighted coordinate in row-major
// order.
func (b *Board) Highlighted() []Coord {
	var out []Coord
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.squares[row][col].Highlighted {
				out = append(out, Coord{Col: col, Row: row})
			}
		}
	}
	return out
}

// Clone returns a deep copy, piece pointers included.
func (b *Board) Clone() *Board {
	out := New()
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			s := b.squares[row][col]
			if s.Piece != nil {
				p := *s.Piece
				s.Piece = &p
			}
			out.squares[row][col] = s
		}
	}
	return out
}

// Equal reports whether both boards hold identical occupancy, piece
// identity and highlight state on every square.
func (b *Board) Equal(o *Board) bool {
	if o == nil {
		return false
	}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			a, z := b.squares[row][col], o.squares[row][col]
			if a.Highlighted != z.Highlighted {
				return false
			}
			if (a.Piece == nil) != (z.Piece == nil) {
				return false
			}
			if a.Piece != nil && *a.Piece != *z.Piece {
				return false
			}
		}
	}
	return true
}

// Squares returns a flat snapshot of every occupied square, row-major.
// The returned pieces are copies.
func (b *Board) Squares() []PlacedPiece {
	var out []PlacedPiece
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if p := b.squares[row][col].Piece; p != nil {
				out = append(out, PlacedPiece{Coord: Coord{Col: col, Row: row}, Piece: *p})
			}
		}
	}
	return out
}

// PlacedPiece pairs a piece with the square it stands on.
type PlacedPiece struct {
	Coord Coord `json:"coord"`
	Piece Piece `json:"piece"`
}
