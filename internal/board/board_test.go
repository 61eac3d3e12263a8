package board

import (
	"errors"
	"testing"
)

func TestNewGameLayout(t *testing.T) {
	b := NewGame()

	wantBack := [Size]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < Size; col++ {
		checkPiece(t, b, Coord{Col: col, Row: 0}, wantBack[col], White)
		checkPiece(t, b, Coord{Col: col, Row: 1}, Pawn, White)
		checkPiece(t, b, Coord{Col: col, Row: 6}, Pawn, Black)
		checkPiece(t, b, Coord{Col: col, Row: 7}, wantBack[col], Black)
	}
	for row := 2; row <= 5; row++ {
		for col := 0; col < Size; col++ {
			st, err := b.Get(Coord{Col: col, Row: row})
			if err != nil {
				t.Fatalf("Get(%d,%d): %v", col, row, err)
			}
			if !st.Empty() {
				t.Fatalf("square (%d,%d) should be empty, has %v", col, row, st.Piece.Kind)
			}
		}
	}

	if got := len(b.Squares()); got != 32 {
		t.Fatalf("expected 32 pieces, got %d", got)
	}
}

func checkPiece(t *testing.T, b *Board, c Coord, kind PieceKind, team Team) {
	t.Helper()
	st, err := b.Get(c)
	if err != nil {
		t.Fatalf("Get(%s): %v", c, err)
	}
	if st.Piece == nil {
		t.Fatalf("square %s is empty, want %v %v", c, team, kind)
	}
	if st.Piece.Kind != kind || st.Piece.Team != team {
		t.Fatalf("square %s: got %v %v, want %v %v", c, st.Piece.Team, st.Piece.Kind, team, kind)
	}
}

func TestUniquePieceIDs(t *testing.T) {
	b := NewGame()
	seen := map[string]bool{}
	for _, pp := range b.Squares() {
		id := pp.Piece.ID.String()
		if seen[id] {
			t.Fatalf("duplicate piece id %s", id)
		}
		seen[id] = true
	}
}

func TestOutOfBounds(t *testing.T) {
	b := New()
	bad := []Coord{{Col: -1, Row: 0}, {Col: 0, Row: -1}, {Col: 8, Row: 0}, {Col: 0, Row: 8}, {Col: 99, Row: 99}}
	for _, c := range bad {
		if _, err := b.Get(c); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Get(%v): want ErrOutOfBounds, got %v", c, err)
		}
		if err := b.Set(c, SquareState{}); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Set(%v): want ErrOutOfBounds, got %v", c, err)
		}
		if err := b.SetHighlight(c, true); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("SetHighlight(%v): want ErrOutOfBounds, got %v", c, err)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := NewGame()
	c := b.Clone()
	if !b.Equal(c) {
		t.Fatalf("clone differs from original")
	}

	if err := c.Set(Coord{Col: 4, Row: 4}, SquareState{Piece: &Piece{Kind: Queen, Team: White}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if b.Equal(c) {
		t.Fatalf("mutating the clone should not affect the original")
	}
	st, _ := b.Get(Coord{Col: 4, Row: 4})
	if !st.Empty() {
		t.Fatalf("original board mutated through clone")
	}
}

func TestHighlightedOrder(t *testing.T) {
	b := New()
	for _, c := range []Coord{{Col: 7, Row: 7}, {Col: 0, Row: 0}, {Col: 3, Row: 2}} {
		if err := b.SetHighlight(c, true); err != nil {
			t.Fatalf("SetHighlight: %v", err)
		}
	}
	got := b.Highlighted()
	want := []Coord{{Col: 0, Row: 0}, {Col: 3, Row: 2}, {Col: 7, Row: 7}}
	if len(got) != len(want) {
		t.Fatalf("highlighted: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("highlighted[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	b := NewGame()
	const start = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"
	if got := b.Placement(); got != start {
		t.Fatalf("Placement: got %q, want %q", got, start)
	}

	parsed, err := ParsePlacement(start)
	if err != nil {
		t.Fatalf("ParsePlacement: %v", err)
	}
	if got := parsed.Placement(); got != start {
		t.Fatalf("round trip: got %q, want %q", got, start)
	}
}

func TestParsePlacementRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"8/8/8/8",
		"9/8/8/8/8/8/8/8",
		"xnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
	}
	for _, s := range cases {
		if _, err := ParsePlacement(s); err == nil {
			t.Fatalf("ParsePlacement(%q): expected error", s)
		}
	}
}

func TestCoordString(t *testing.T) {
	if got := (Coord{Col: 0, Row: 0}).String(); got != "a1" {
		t.Fatalf("a1: got %q", got)
	}
	if got := (Coord{Col: 7, Row: 7}).String(); got != "h8" {
		t.Fatalf("h8: got %q", got)
	}
	if got := (Coord{Col: 1, Row: 0}).String(); got != "b1" {
		t.Fatalf("b1: got %q", got)
	}
}
