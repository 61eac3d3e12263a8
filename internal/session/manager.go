package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/chessboard/internal/archive"
	"github.com/park285/chessboard/internal/board"
	"github.com/park285/chessboard/internal/engine"
	"github.com/park285/chessboard/internal/movegen"
	"github.com/park285/chessboard/pkg/boarddto"
)

// Manager owns every live board session. It loads snapshots on demand,
// serializes gestures per session and fans notifications out to
// subscribers.
type Manager struct {
	store  Store
	repo   archive.Repository
	rules  movegen.Rules
	logger *zap.Logger

	mu   sync.Mutex
	live map[string]*Session
}

type ManagerOption func(*Manager)

func WithLogger(l *zap.Logger) ManagerOption { return func(m *Manager) { m.logger = l } }

func WithRules(r movegen.Rules) ManagerOption { return func(m *Manager) { m.rules = r } }

func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		rules:  movegen.DefaultRules(),
		logger: zap.NewNop(),
		live:   make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AttachRepository enables best-effort move archiving. Safe to skip when
// no database is configured.
func (m *Manager) AttachRepository(repo archive.Repository) { m.repo = repo }

// Session is one live board with its gesture state. All operations go
// through the owning Manager, which serializes them under mu.
type Session struct {
	id      string
	eng     *engine.Engine
	relay   *relay
	created time.Time
	updated time.Time

	mu sync.Mutex
}

func (s *Session) ID() string { return s.id }

// Create starts a fresh session with the standard piece arrangement.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	r := newRelay()
	sess := &Session{
		id:      id,
		relay:   r,
		created: now,
		updated: now,
	}
	sess.eng = engine.New(board.NewGame(),
		engine.WithNotifier(r),
		engine.WithRules(m.rules),
		engine.WithLogger(m.logger),
	)

	if err := m.persist(ctx, sess); err != nil {
		return nil, fmt.Errorf("save new session: %w", err)
	}

	m.mu.Lock()
	m.live[id] = sess
	m.mu.Unlock()

	m.logger.Info("session_create", zap.String("session_id", id))
	return sess, nil
}

// Get returns the live session, loading it from the store if needed.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	if sess, ok := m.live[id]; ok {
		m.mu.Unlock()
		return sess, nil
	}
	m.mu.Unlock()

	snap, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if snap == nil {
		return nil, ErrSessionNotFound
	}
	b, err := snap.Restore()
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}

	r := newRelay()
	sess := &Session{
		id:      snap.ID,
		relay:   r,
		created: snap.CreatedAt,
		updated: snap.UpdatedAt,
	}
	sess.eng = engine.New(b,
		engine.WithNotifier(r),
		engine.WithRules(m.rules),
		engine.WithLogger(m.logger),
		engine.WithMoveCount(snap.Moves),
	)

	m.mu.Lock()
	// Another goroutine may have loaded it while we hit the store.
	if existing, ok := m.live[id]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.live[id] = sess
	m.mu.Unlock()

	m.logger.Info("session_resume", zap.String("session_id", id), zap.Int("moves", snap.Moves))
	return sess, nil
}

// Delete drops a session from memory and from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.live, id)
	m.mu.Unlock()
	return m.store.Delete(ctx, id)
}

// Select starts a gesture on the given square and returns the offered
// destinations.
func (m *Manager) Select(ctx context.Context, id string, sq boarddto.Square) ([]boarddto.Square, error) {
	sess, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	dests, err := sess.eng.Select(board.Coord{Col: sq.Col, Row: sq.Row})
	if err != nil {
		return nil, err
	}
	out := toSquares(dests)
	sess.relay.publish(boarddto.Notification{Type: boarddto.NotifyDestinations, Squares: out})
	return out, nil
}

// Choose commits the active gesture to the given square, persists the
// resulting snapshot and archives the move when a repository is attached.
func (m *Manager) Choose(ctx context.Context, id string, sq boarddto.Square) (*boarddto.Move, error) {
	sess, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	mv, err := sess.eng.Choose(board.Coord{Col: sq.Col, Row: sq.Row})
	if err != nil {
		return nil, err
	}
	sess.updated = time.Now().UTC()

	if err := m.persist(ctx, sess); err != nil {
		m.logger.Warn("session_persist_failed",
			zap.String("session_id", id), zap.Error(err))
	}
	m.archiveMove(ctx, id, mv)

	dto := toMoveDTO(mv)
	sess.relay.publish(boarddto.Notification{Type: boarddto.NotifyMoveCommitted, Move: dto})
	return dto, nil
}

// Deselect cancels the active gesture, if any.
func (m *Manager) Deselect(ctx context.Context, id string) error {
	sess, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.eng.Deselect()
	return nil
}

// State returns the externally visible state of a session.
func (m *Manager) State(ctx context.Context, id string) (*boarddto.SessionState, error) {
	sess, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	b := sess.eng.Board()
	st := &boarddto.SessionState{
		SessionID:   sess.id,
		Placement:   b.Placement(),
		Moves:       sess.eng.Moves(),
		CreatedAt:   sess.created,
		UpdatedAt:   sess.updated,
		Highlighted: toSquares(b.Highlighted()),
	}
	for _, pp := range b.Squares() {
		st.Pieces = append(st.Pieces, boarddto.PlacedPiece{
			PieceID: pp.Piece.ID.String(),
			Kind:    pp.Piece.Kind.String(),
			Team:    pp.Piece.Team.String(),
			Square:  boarddto.Square{Col: pp.Coord.Col, Row: pp.Coord.Row},
		})
	}
	return st, nil
}

// BoardCopy returns a deep copy of the session board for rendering.
func (m *Manager) BoardCopy(ctx context.Context, id string) (*board.Board, error) {
	sess, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.eng.Board().Clone(), nil
}

// RecentMoves returns archived moves for the session, newest first.
func (m *Manager) RecentMoves(ctx context.Context, id string, limit int) ([]archive.Record, error) {
	if m.repo == nil {
		return nil, nil
	}
	return m.repo.RecentMoves(ctx, id, limit)
}

// Subscribe registers a notification callback for the session and
// returns a token for Unsubscribe.
func (m *Manager) Subscribe(ctx context.Context, id string, fn func(boarddto.Notification)) (int, error) {
	sess, err := m.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return sess.relay.subscribe(fn), nil
}

func (m *Manager) Unsubscribe(ctx context.Context, id string, token int) {
	m.mu.Lock()
	sess, ok := m.live[id]
	m.mu.Unlock()
	if ok {
		sess.relay.unsubscribe(token)
	}
}

func (m *Manager) persist(ctx context.Context, sess *Session) error {
	snap := &Snapshot{
		ID:        sess.id,
		Pieces:    sess.eng.Board().Squares(),
		Moves:     sess.eng.Moves(),
		CreatedAt: sess.created,
		UpdatedAt: sess.updated,
	}
	return m.store.Save(ctx, snap)
}

func (m *Manager) archiveMove(ctx context.Context, id string, mv *engine.Move) {
	if m.repo == nil {
		return
	}
	rec := archive.Record{
		SessionID: id,
		Number:    mv.Number,
		Kind:      mv.Piece.Kind.String(),
		Team:      mv.Piece.Team.String(),
		From:      mv.From.String(),
		To:        mv.To.String(),
		PlayedAt:  time.Now().UTC(),
	}
	if mv.Captured != nil {
		rec.Captured = mv.Captured.Kind.String()
	}
	if err := m.repo.InsertMove(ctx, rec); err != nil {
		m.logger.Warn("move_archive_failed",
			zap.String("session_id", id), zap.Int("number", mv.Number), zap.Error(err))
	}
}

func toSquares(coords []board.Coord) []boarddto.Square {
	if len(coords) == 0 {
		return nil
	}
	out := make([]boarddto.Square, 0, len(coords))
	for _, c := range coords {
		out = append(out, boarddto.Square{Col: c.Col, Row: c.Row})
	}
	return out
}

func toMoveDTO(mv *engine.Move) *boarddto.Move {
	dto := &boarddto.Move{
		Number: mv.Number,
		Kind:   mv.Piece.Kind.String(),
		Team:   mv.Piece.Team.String(),
		From:   boarddto.Square{Col: mv.From.Col, Row: mv.From.Row},
		To:     boarddto.Square{Col: mv.To.Col, Row: mv.To.Row},
	}
	if mv.Captured != nil {
		dto.Captured = &boarddto.Capture{
			PieceID: mv.Captured.ID.String(),
			Kind:    mv.Captured.Kind.String(),
			Team:    mv.Captured.Team.String(),
		}
	}
	return dto
}
