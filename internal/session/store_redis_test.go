package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/park285/chessboard/internal/board"
)

func newTestRedisStore(t *testing.T) Store {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+mr.Addr(), time.Hour)
	if err != nil {
		t.Fatalf("redis store: %v", err)
	}
	return store
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	snap := &Snapshot{
		ID:        "s1",
		Pieces:    board.NewGame().Squares(),
		Moves:     3,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if got.Moves != 3 || len(got.Pieces) != 32 {
		t.Fatalf("unexpected snapshot: moves=%d pieces=%d", got.Moves, len(got.Pieces))
	}

	b, err := got.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	st, err := b.Get(board.Coord{Col: 4, Row: 0})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if st.Piece == nil || st.Piece.Kind != board.King || st.Piece.Team != board.White {
		t.Fatalf("expected white king on e1, got %+v", st.Piece)
	}
}

func TestRedisStoreUnknownID(t *testing.T) {
	store := newTestRedisStore(t)
	got, err := store.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil snapshot, got %+v", got)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	snap := &Snapshot{ID: "s1", Pieces: board.NewGame().Squares()}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatal("expected snapshot gone after delete")
	}
}

func TestParseRedisURL(t *testing.T) {
	opts, err := parseRedisURL("redis://:secret@localhost:6379/2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.Password != "secret" || opts.DB != 2 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if _, err := parseRedisURL("http://localhost"); err == nil {
		t.Fatal("expected scheme error")
	}
}
