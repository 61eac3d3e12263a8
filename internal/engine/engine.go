// Package engine drives one board through select → highlight → commit
// gestures. All calls are synchronous; callers serialize access.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/chessboard/internal/board"
	"github.com/park285/chessboard/internal/movegen"
)

var (
	// ErrIllegalDestination rejects a commit against a square that was not
	// offered by the active selection. The board is left unchanged.
	ErrIllegalDestination = errors.New("destination is not an offered move")

	// ErrNoActiveSelection reports a destination choice with nothing
	// selected. It can arise from benign input races; callers usually
	// ignore it.
	ErrNoActiveSelection = errors.New("no active selection")
)

// Notifier receives the outbound visual notifications. Implementations
// must not mutate the board; they only mirror state changes.
type Notifier interface {
	ShowMarker(c board.Coord)
	HideMarker(c board.Coord)
	RelocatePiece(id uuid.UUID, to board.Coord)
	RemovePiece(id uuid.UUID)
}

// Move records one committed board mutation.
type Move struct {
	Number   int          `json:"number"`
	Piece    board.Piece  `json:"piece"`
	From     board.Coord  `json:"from"`
	To       board.Coord  `json:"to"`
	Captured *board.Piece `json:"captured,omitempty"`
}

// selection is the ephemeral context of one gesture: the selected piece
// and the destinations currently offered for it.
type selection struct {
	origin       board.Coord
	piece        board.Piece
	destinations []board.Coord
}

type Engine struct {
	board    *board.Board
	rules    movegen.Rules
	notifier Notifier
	logger   *zap.Logger

	sel   *selection
	moves int
}

type Option func(*Engine)

func WithNotifier(n Notifier) Option { return func(e *Engine) { e.notifier = n } }

func WithRules(r movegen.Rules) Option { return func(e *Engine) { e.rules = r } }

func WithLogger(l *zap.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithMoveCount seeds the committed-move counter, used when resuming a
// persisted session.
func WithMoveCount(n int) Option { return func(e *Engine) { e.moves = n } }

func New(b *board.Board, opts ...Option) *Engine {
	e := &Engine{
		board:  b,
		rules:  movegen.DefaultRules(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Board() *board.Board { return e.board }

// Moves returns the number of committed moves.
func (e *Engine) Moves() int { return e.moves }

// Selected returns the origin of the active selection, if any.
func (e *Engine) Selected() (board.Coord, bool) {
	if e.sel == nil {
		return board.Coord{}, false
	}
	return e.sel.origin, true
}

// Select starts a gesture on the piece at c. A previous selection's
// highlights are torn down first, so re-selecting while a selection is
// active is always safe. Returns the offered destinations.
func (e *Engine) Select(c board.Coord) ([]board.Coord, error) {
	st, err := e.board.Get(c)
	if err != nil {
		return nil, err
	}
	e.clearHighlights()
	e.sel = nil

	if st.Piece == nil {
		return nil, fmt.Errorf("select %s: %w", c, movegen.ErrEmptySquare)
	}

	dests, err := e.rules.Destinations(e.board, c)
	if err != nil {
		return nil, err
	}

	e.sel = &selection{origin: c, piece: *st.Piece, destinations: dests}
	for _, d := range dests {
		if err := e.board.SetHighlight(d, true); err != nil {
			return nil, err
		}
		if e.notifier != nil {
			e.notifier.ShowMarker(d)
		}
	}

	e.logger.Debug("piece_select",
		zap.String("origin", c.String()),
		zap.String("kind", st.Piece.Kind.String()),
		zap.String("team", st.Piece.Team.String()),
		zap.Int("destinations", len(dests)),
	)
	return dests, nil
}

// Choose commits the active selection to the destination c. The square
// must currently carry the highlight flag; committing anywhere else,
// including back onto the origin, fails with ErrIllegalDestination and
// leaves the board untouched.
func (e *Engine) Choose(c board.Coord) (*Move, error) {
	if e.sel == nil {
		return nil, ErrNoActiveSelection
	}
	st, err := e.board.Get(c)
	if err != nil {
		return nil, err
	}
	if !st.Highlighted {
		return nil, fmt.Errorf("choose %s: %w", c, ErrIllegalDestination)
	}

	sel := *e.sel
	move := &Move{
		Number: e.moves + 1,
		Piece:  sel.piece,
		From:   sel.origin,
		To:     c,
	}

	if st.Piece != nil {
		captured := *st.Piece
		move.Captured = &captured
		if e.notifier != nil {
			e.notifier.RemovePiece(captured.ID)
		}
	}

	moving := sel.piece
	if err := e.board.Set(c, board.SquareState{Piece: &moving}); err != nil {
		return nil, err
	}
	if err := e.board.Set(sel.origin, board.SquareState{}); err != nil {
		return nil, err
	}
	if e.notifier != nil {
		e.notifier.RelocatePiece(moving.ID, c)
	}

	e.clearHighlights()
	e.sel = nil
	e.moves++

	e.logger.Info("move_commit",
		zap.Int("number", move.Number),
		zap.String("kind", move.Piece.Kind.String()),
		zap.String("team", move.Piece.Team.String()),
		zap.String("from", move.From.String()),
		zap.String("to", move.To.String()),
		zap.Bool("capture", move.Captured != nil),
	)
	return move, nil
}

// Deselect cancels the active gesture without mutating occupancy. Calling
// it with no selection is a no-op.
func (e *Engine) Deselect() {
	e.clearHighlights()
	e.sel = nil
}

// clearHighlights removes every highlight flag and emits a HideMarker for
// each. Idempotent: a second pass finds nothing to clear.
func (e *Engine) clearHighlights() {
	for _, c := range e.board.Highlighted() {
		_ = e.board.SetHighlight(c, false)
		if e.notifier != nil {
			e.notifier.HideMarker(c)
		}
	}
}
