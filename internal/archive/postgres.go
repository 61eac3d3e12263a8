package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

const insertMoveQuery = `INSERT INTO board_moves (
    session_id, move_number, piece_kind, piece_team,
    from_square, to_square, captured_kind, played_at
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  ON CONFLICT (session_id, move_number) DO UPDATE SET
    piece_kind=EXCLUDED.piece_kind,
    piece_team=EXCLUDED.piece_team,
    from_square=EXCLUDED.from_square,
    to_square=EXCLUDED.to_square,
    captured_kind=EXCLUDED.captured_kind,
    played_at=EXCLUDED.played_at`

const recentMovesQuery = `SELECT session_id, move_number, piece_kind, piece_team,
    from_square, to_square, COALESCE(captured_kind, ''), played_at
  FROM board_moves
  WHERE session_id = $1
  ORDER BY move_number DESC
  LIMIT $2`

// PostgresRepository stores move records in a board_moves table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(databaseURL string) (*PostgresRepository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *PostgresRepository) InsertMove(ctx context.Context, rec Record) error {
	if r == nil || r.db == nil {
		return nil
	}
	var captured sql.NullString
	if rec.Captured != "" {
		captured = sql.NullString{String: rec.Captured, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, insertMoveQuery,
		rec.SessionID, rec.Number, rec.Kind, rec.Team,
		rec.From, rec.To, captured, rec.PlayedAt,
	)
	if err != nil {
		return fmt.Errorf("insert move: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RecentMoves(ctx context.Context, sessionID string, limit int) ([]Record, error) {
	if r == nil || r.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, recentMovesQuery, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.SessionID, &rec.Number, &rec.Kind, &rec.Team,
			&rec.From, &rec.To, &rec.Captured, &rec.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
