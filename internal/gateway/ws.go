package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/chessboard/internal/board"
	"github.com/park285/chessboard/internal/engine"
	"github.com/park285/chessboard/internal/movegen"
	"github.com/park285/chessboard/internal/session"
	"github.com/park285/chessboard/pkg/boarddto"
)

const wsSendBuffer = 64

// handleWS attaches one websocket client to a session: inbound frames
// are gestures, outbound frames are the visual notifications the
// gestures produce. Frames from other clients of the same session are
// relayed too.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.mgr.Get(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.logger.Warn("ws_accept_failed", zap.String("session_id", id), zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	send := make(chan boarddto.Notification, wsSendBuffer)
	token, err := s.mgr.Subscribe(ctx, id, func(n boarddto.Notification) {
		select {
		case send <- n:
		default:
			s.logger.Warn("ws_frame_dropped", zap.String("session_id", id), zap.String("type", n.Type))
		}
	})
	if err != nil {
		conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer s.mgr.Unsubscribe(context.Background(), id, token)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-send:
				if err := wsjson.Write(ctx, conn, n); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	s.logger.Info("ws_attach", zap.String("session_id", id))
	for {
		var ev boarddto.Event
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || ctx.Err() != nil {
				conn.Close(websocket.StatusNormalClosure, "")
			} else {
				s.logger.Debug("ws_read_end", zap.String("session_id", id), zap.Error(err))
			}
			return
		}
		s.dispatch(ctx, id, ev, send)
	}
}

func (s *Server) dispatch(ctx context.Context, id string, ev boarddto.Event, send chan<- boarddto.Notification) {
	var err error
	switch ev.Type {
	case boarddto.EventSelect:
		if ev.Square == nil {
			err = errors.New("select event needs a square")
			break
		}
		_, err = s.mgr.Select(ctx, id, *ev.Square)
	case boarddto.EventChoose:
		if ev.Square == nil {
			err = errors.New("choose event needs a square")
			break
		}
		_, err = s.mgr.Choose(ctx, id, *ev.Square)
	case boarddto.EventDeselect:
		err = s.mgr.Deselect(ctx, id)
	default:
		err = errors.New("unknown event type " + ev.Type)
	}
	if err == nil {
		return
	}

	// A destination choice that races a cleared selection is benign
	// input noise; log it and move on without a frame.
	if errors.Is(err, engine.ErrNoActiveSelection) {
		s.logger.Debug("ws_stale_choose", zap.String("session_id", id))
		return
	}

	frame := boarddto.Notification{Type: boarddto.NotifyError, Err: &boarddto.DomainError{
		Code:    errCode(err),
		Message: err.Error(),
	}}
	select {
	case send <- frame:
	default:
	}
}

func errCode(err error) string {
	switch {
	case errors.Is(err, board.ErrOutOfBounds):
		return boarddto.CodeOutOfBounds
	case errors.Is(err, movegen.ErrEmptySquare):
		return boarddto.CodeEmptySquare
	case errors.Is(err, engine.ErrIllegalDestination):
		return boarddto.CodeIllegalDestination
	case errors.Is(err, engine.ErrNoActiveSelection):
		return boarddto.CodeNoActiveSelection
	case errors.Is(err, session.ErrSessionNotFound):
		return boarddto.CodeSessionNotFound
	default:
		return boarddto.CodeBadRequest
	}
}
