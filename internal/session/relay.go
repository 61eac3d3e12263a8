package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/park285/chessboard/internal/board"
	"github.com/park285/chessboard/pkg/boarddto"
)

// relay converts engine notifications into wire frames and fans them out
// to every subscriber. Callbacks run inline on the gesture goroutine, so
// they must not block; the websocket layer hands frames to a send queue.
type relay struct {
	mu   sync.Mutex
	next int
	subs map[int]func(boarddto.Notification)
}

func newRelay() *relay {
	return &relay{subs: make(map[int]func(boarddto.Notification))}
}

func (r *relay) subscribe(fn func(boarddto.Notification)) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.subs[r.next] = fn
	return r.next
}

func (r *relay) unsubscribe(token int) {
	r.mu.Lock()
	delete(r.subs, token)
	r.mu.Unlock()
}

func (r *relay) publish(n boarddto.Notification) {
	r.mu.Lock()
	fns := make([]func(boarddto.Notification), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.mu.Unlock()
	for _, fn := range fns {
		fn(n)
	}
}

func (r *relay) ShowMarker(c board.Coord) {
	r.publish(boarddto.Notification{
		Type:   boarddto.NotifyShowMarker,
		Square: &boarddto.Square{Col: c.Col, Row: c.Row},
	})
}

func (r *relay) HideMarker(c board.Coord) {
	r.publish(boarddto.Notification{
		Type:   boarddto.NotifyHideMarker,
		Square: &boarddto.Square{Col: c.Col, Row: c.Row},
	})
}

func (r *relay) RelocatePiece(id uuid.UUID, to board.Coord) {
	r.publish(boarddto.Notification{
		Type:    boarddto.NotifyRelocatePiece,
		PieceID: id.String(),
		Square:  &boarddto.Square{Col: to.Col, Row: to.Row},
	})
}

func (r *relay) RemovePiece(id uuid.UUID) {
	r.publish(boarddto.Notification{
		Type:    boarddto.NotifyRemovePiece,
		PieceID: id.String(),
	})
}
