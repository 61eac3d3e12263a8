package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/park285/chessboard/internal/board"
	"github.com/park285/chessboard/internal/engine"
	"github.com/park285/chessboard/internal/movegen"
	"github.com/park285/chessboard/internal/session"
	"github.com/park285/chessboard/pkg/boarddto"
)

type squareRequest struct {
	Square boarddto.Square `json:"square"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.mgr.Create(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	st, err := s.mgr.State(r.Context(), sess.ID())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.mgr.State(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.mgr.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req squareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeDomainError(w, http.StatusBadRequest, boarddto.CodeBadRequest, "invalid request body")
		return
	}
	dests, err := s.mgr.Select(r.Context(), mux.Vars(r)["id"], req.Square)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"destinations": dests})
}

func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	var req squareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeDomainError(w, http.StatusBadRequest, boarddto.CodeBadRequest, "invalid request body")
		return
	}
	mv, err := s.mgr.Choose(r.Context(), mux.Vars(r)["id"], req.Square)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, mv)
}

func (s *Server) handleDeselect(w http.ResponseWriter, r *http.Request) {
	if err := s.mgr.Deselect(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	recs, err := s.mgr.RecentMoves(r.Context(), mux.Vars(r)["id"], 50)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"moves": recs})
}

func (s *Server) handleBoardPNG(w http.ResponseWriter, r *http.Request) {
	b, err := s.mgr.BoardCopy(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	raw, err := s.rnd.RenderPNG(r.Context(), b)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(raw)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response_encode_failed", zap.Error(err))
	}
}

func (s *Server) writeDomainError(w http.ResponseWriter, status int, code, msg string) {
	s.writeJSON(w, status, map[string]any{
		"error": boarddto.DomainError{Code: code, Message: msg},
	})
}

// writeError maps domain errors onto wire codes. Everything in the
// gesture taxonomy is recoverable and reported as a client error.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		s.writeDomainError(w, http.StatusNotFound, boarddto.CodeSessionNotFound, "session not found")
	case errors.Is(err, board.ErrOutOfBounds):
		s.writeDomainError(w, http.StatusBadRequest, boarddto.CodeOutOfBounds, err.Error())
	case errors.Is(err, movegen.ErrEmptySquare):
		s.writeDomainError(w, http.StatusBadRequest, boarddto.CodeEmptySquare, err.Error())
	case errors.Is(err, engine.ErrIllegalDestination):
		s.writeDomainError(w, http.StatusConflict, boarddto.CodeIllegalDestination, err.Error())
	case errors.Is(err, engine.ErrNoActiveSelection):
		s.writeDomainError(w, http.StatusConflict, boarddto.CodeNoActiveSelection, err.Error())
	default:
		s.logger.Error("request_failed", zap.Error(err))
		s.writeDomainError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
