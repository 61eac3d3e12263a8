// Package movegen computes pseudo-legal destination squares: moves valid
// under piece-movement rules alone, with no check or pin analysis.
package movegen

import (
	"errors"
	"fmt"

	"github.com/park285/chessboard/internal/board"
)

var ErrEmptySquare = errors.New("no piece on origin square")

// Direction and offset tables. Their order fixes the order of generated
// destinations, which tests rely on.
var (
	rookDirs   = [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	knightOffsets = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
)

// Rules carries the board-orientation decisions that are not universal:
// which way each team's pawns advance.
type Rules struct {
	// PawnDir maps a team to its row advance direction, +1 or -1.
	PawnDir map[board.Team]int
}

// DefaultRules matches the standard arrangement built by board.NewGame:
// white advances toward increasing rows, black toward decreasing rows.
func DefaultRules() Rules {
	return Rules{PawnDir: map[board.Team]int{board.White: 1, board.Black: -1}}
}

// Destinations computes the ordered set of pseudo-legal destination
// coordinates for the piece standing on origin, using default rules.
func Destinations(b *board.Board, origin board.Coord) ([]board.Coord, error) {
	return DefaultRules().Destinations(b, origin)
}

// Destinations computes the ordered set of pseudo-legal destination
// coordinates for the piece standing on origin. An off-board origin is a
// caller error; an empty origin square yields ErrEmptySquare.
func (r Rules) Destinations(b *board.Board, origin board.Coord) ([]board.Coord, error) {
	st, err := b.Get(origin)
	if err != nil {
		return nil, err
	}
	if st.Piece == nil {
		return nil, fmt.Errorf("%s: %w", origin, ErrEmptySquare)
	}
	p := *st.Piece

	switch p.Kind {
	case board.Rook:
		return slide(b, origin, p.Team, rookDirs), nil
	case board.Bishop:
		return slide(b, origin, p.Team, bishopDirs), nil
	case board.Queen:
		return slide(b, origin, p.Team, queenDirs), nil
	case board.Knight:
		return steps(b, origin, p.Team, knightOffsets), nil
	case board.King:
		return steps(b, origin, p.Team, kingOffsets), nil
	case board.Pawn:
		return r.pawn(b, origin, p.Team), nil
	default:
		return nil, fmt.Errorf("%s: unknown piece kind %v", origin, p.Kind)
	}
}

// slide walks each direction one square at a time: empty squares are
// destinations and the walk continues, an opposing occupant is a capture
// destination that ends the ray, a same-team occupant ends the ray without
// being added. The board edge bounds every ray at seven steps.
func slide(b *board.Board, origin board.Coord, team board.Team, dirs [][2]int) []board.Coord {
	var out []board.Coord
	for _, d := range dirs {
		for to := origin.Offset(d[0], d[1]); to.IsOnBoard(); to = to.Offset(d[0], d[1]) {
			st, err := b.Get(to)
			if err != nil {
				break
			}
			if st.Piece == nil {
				out = append(out, to)
				continue
			}
			if st.Piece.Team != team {
				out = append(out, to)
			}
			break
		}
	}
	return out
}

// steps applies a fixed offset set with no path blocking: knights jump and
// king moves are single steps.
func steps(b *board.Board, origin board.Coord, team board.Team, offsets [][2]int) []board.Coord {
	var out []board.Coord
	for _, o := range offsets {
		to := origin.Offset(o[0], o[1])
		if !to.IsOnBoard() {
			continue
		}
		st, err := b.Get(to)
		if err != nil {
			continue
		}
		if st.Piece != nil && st.Piece.Team == team {
			continue
		}
		out = append(out, to)
	}
	return out
}

// pawn generates the forward single step (empty squares only) and the two
// diagonal captures (opposing occupants only). Double steps, en passant
// and promotion are outside this engine's rule set.
func (r Rules) pawn(b *board.Board, origin board.Coord, team board.Team) []board.Coord {
	dir, ok := r.PawnDir[team]
	if !ok {
		dir = DefaultRules().PawnDir[team]
	}

	var out []board.Coord
	if fwd := origin.Offset(0, dir); fwd.IsOnBoard() {
		if st, err := b.Get(fwd); err == nil && st.Piece == nil {
			out = append(out, fwd)
		}
	}
	for _, dc := range []int{-1, 1} {
		diag := origin.Offset(dc, dir)
		if !diag.IsOnBoard() {
			continue
		}
		if st, err := b.Get(diag); err == nil && st.Piece != nil && st.Piece.Team != team {
			out = append(out, diag)
		}
	}
	return out
}
