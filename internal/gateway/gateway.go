// Package gateway exposes board sessions over HTTP: a small JSON API for
// gestures, a PNG view of the board and a websocket feed of visual
// notifications.
package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/park285/chessboard/internal/render"
	"github.com/park285/chessboard/internal/session"
)

type Server struct {
	mgr    *session.Manager
	rnd    *render.Renderer
	logger *zap.Logger
	srv    *http.Server
}

func New(addr string, mgr *session.Manager, rnd *render.Renderer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{mgr: mgr, rnd: rnd, logger: logger}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the route table. Exposed for tests.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sessions", s.handleCreate).Methods("POST")
	api.HandleFunc("/sessions/{id}", s.handleState).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDelete).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/select", s.handleSelect).Methods("POST")
	api.HandleFunc("/sessions/{id}/choose", s.handleChoose).Methods("POST")
	api.HandleFunc("/sessions/{id}/deselect", s.handleDeselect).Methods("POST")
	api.HandleFunc("/sessions/{id}/moves", s.handleMoves).Methods("GET")
	api.HandleFunc("/sessions/{id}/board.png", s.handleBoardPNG).Methods("GET")

	r.HandleFunc("/ws/sessions/{id}", s.handleWS)
	return r
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("gateway_listen", zap.String("addr", s.srv.Addr))
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
