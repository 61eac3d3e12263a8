package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/park285/chessboard/internal/archive"
	appcfg "github.com/park285/chessboard/internal/config"
	"github.com/park285/chessboard/internal/gateway"
	"github.com/park285/chessboard/internal/obslog"
	"github.com/park285/chessboard/internal/render"
	"github.com/park285/chessboard/internal/session"
	"github.com/park285/chessboard/internal/theme"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()

	// Session store: Redis when configured, in-process otherwise.
	var store session.Store
	if cfg.RedisURL != "" {
		store, err = session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			logger.Fatal("redis store init", zap.Error(err))
		}
	} else {
		store = session.NewMemoryStore()
		logger.Info("session store: in-memory (REDIS_URL not set)")
	}

	mgr := session.NewManager(store, session.WithLogger(logger))

	// Move archive: Postgres when configured.
	var repo *archive.PostgresRepository
	if cfg.DatabaseURL != "" {
		repo, err = archive.NewPostgresRepository(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("archive init", zap.Error(err))
		}
		mgr.AttachRepository(repo)
	} else {
		mgr.AttachRepository(archive.NewMemoryRepository())
		logger.Info("move archive: in-memory (DATABASE_URL not set)")
	}

	th, err := theme.Load(cfg.ThemeDir)
	if err != nil {
		logger.Fatal("theme load", zap.Error(err))
	}

	srv := gateway.New(cfg.ListenAddr, mgr, render.New(th), logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
	if repo != nil {
		_ = repo.Close()
	}
	if c, ok := store.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}
