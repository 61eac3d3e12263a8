package archive

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRepositoryRecentMoves(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		rec := Record{
			SessionID: "s1",
			Number:    i,
			Kind:      "pawn",
			Team:      "white",
			From:      "e2",
			To:        "e3",
			PlayedAt:  time.Now(),
		}
		if err := repo.InsertMove(ctx, rec); err != nil {
			t.Fatalf("insert move %d: %v", i, err)
		}
	}

	got, err := repo.RecentMoves(ctx, "s1", 3)
	if err != nil {
		t.Fatalf("recent moves: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(got))
	}
	if got[0].Number != 5 || got[2].Number != 3 {
		t.Fatalf("expected newest first, got %d..%d", got[0].Number, got[2].Number)
	}
}

func TestMemoryRepositoryReplaySameNumber(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := Record{SessionID: "s1", Number: 1, Kind: "pawn", Team: "white", From: "a2", To: "a3"}
	second := Record{SessionID: "s1", Number: 1, Kind: "rook", Team: "white", From: "a1", To: "a4"}
	if err := repo.InsertMove(ctx, first); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.InsertMove(ctx, second); err != nil {
		t.Fatalf("reinsert: %v", err)
	}

	got, err := repo.RecentMoves(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("recent moves: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record after replace, got %d", len(got))
	}
	if got[0].Kind != "rook" {
		t.Fatalf("expected replaced record, got kind %q", got[0].Kind)
	}
}

func TestMemoryRepositoryUnknownSession(t *testing.T) {
	repo := NewMemoryRepository()
	got, err := repo.RecentMoves(context.Background(), "missing", 10)
	if err != nil {
		t.Fatalf("recent moves: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no moves, got %d", len(got))
	}
}
