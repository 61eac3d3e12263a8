package board

import (
	"fmt"
	"strings"
)

// Placement encodes occupancy as a FEN-style placement string, rows from 7
// down to 0 separated by '/', uppercase for white. Highlight flags and
// piece identifiers are not part of the encoding; it exists for logs,
// tests and compact persistence.
func (b *Board) Placement() string {
	var sb strings.Builder
	for row := Size - 1; row >= 0; row-- {
		empty := 0
		for col := 0; col < Size; col++ {
			p := b.squares[row][col].Piece
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			c := p.Kind.Letter()
			if p.Team == Black {
				c += 'a' - 'A'
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ParsePlacement builds a board from a placement string produced by
// Placement. Pieces receive fresh identifiers.
func ParsePlacement(s string) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != Size {
		return nil, fmt.Errorf("placement: expected %d rows, got %d", Size, len(rows))
	}
	b := New()
	for i, rowStr := range rows {
		row := Size - 1 - i
		col := 0
		for j := 0; j < len(rowStr); j++ {
			c := rowStr[j]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			team := White
			upper := c
			if c >= 'a' && c <= 'z' {
				team = Black
				upper = c - ('a' - 'A')
			}
			kind, ok := kindFromLetter(upper)
			if !ok {
				return nil, fmt.Errorf("placement: bad piece letter %q in row %d", c, row)
			}
			if col >= Size {
				return nil, fmt.Errorf("placement: row %d overflows", row)
			}
			b.mustPlace(Coord{Col: col, Row: row}, NewPiece(kind, team))
			col++
		}
		if col != Size {
			return nil, fmt.Errorf("placement: row %d has %d columns", row, col)
		}
	}
	return b, nil
}
