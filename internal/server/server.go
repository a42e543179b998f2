// Package server assembles the reference document store: SQLite storage,
// JWT auth and the HTTP routes the sync client talks to.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/moodkeeper/internal/config"
	"github.com/iudanet/moodkeeper/internal/server/handlers"
	"github.com/iudanet/moodkeeper/internal/server/jwt"
	"github.com/iudanet/moodkeeper/internal/server/middleware"
	"github.com/iudanet/moodkeeper/internal/server/storage"
	"github.com/iudanet/moodkeeper/internal/server/storage/sqlite"
)

const (
	healthPath      = "/api/v1/health"
	shutdownTimeout = 10 * time.Second
)

// Deps зависимости HTTP маршрутов
type Deps struct {
	Logger    *slog.Logger
	Users     storage.UserStorage
	Documents storage.DocumentStorage
	DB        handlers.Pinger
	Tokens    *jwt.Service
	Limiter   *middleware.RateLimiter
	Version   string
}

// NewRouter регистрирует маршруты API.
// Цепочка: recovery -> logging -> rate limit -> (JWT для документов) -> handler.
func NewRouter(d Deps) http.Handler {
	health := handlers.NewHealthHandler(d.Logger, d.DB, d.Version)
	auth := handlers.NewAuthHandler(d.Logger, d.Users, d.Tokens)
	docs := handlers.NewDocumentHandler(d.Logger, d.Documents)
	requireAuth := middleware.AuthMiddleware(d.Logger, d.Tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+healthPath, health.Health)
	mux.HandleFunc("POST /api/v1/auth/register", auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", auth.Login)

	const documents = "/api/v1/collections/{collection}/documents"
	mux.Handle("POST "+documents, requireAuth(http.HandlerFunc(docs.Create)))
	mux.Handle("GET "+documents, requireAuth(http.HandlerFunc(docs.Query)))
	mux.Handle("PUT "+documents+"/{id}", requireAuth(http.HandlerFunc(docs.Update)))
	mux.Handle("DELETE "+documents+"/{id}", requireAuth(http.HandlerFunc(docs.Delete)))

	var h http.Handler = mux
	if d.Limiter != nil {
		h = middleware.RateLimitMiddleware(d.Limiter)(h)
	}
	h = middleware.LoggingWithSkip(d.Logger, []string{healthPath})(h)
	h = middleware.RecoveryMiddleware(d.Logger)(h)

	return h
}

// Server HTTP сервер удаленного хранилища документов
type Server struct {
	httpServer *http.Server
	store      *sqlite.Storage
	limiter    *middleware.RateLimiter
	logger     *slog.Logger
}

// New открывает базу, применяет миграции и собирает HTTP сервер
func New(ctx context.Context, cfg *config.ServerConfig, version string, logger *slog.Logger) (*Server, error) {
	store, err := sqlite.New(ctx, cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)

	router := NewRouter(Deps{
		Logger:    logger,
		Users:     store,
		Documents: store,
		DB:        store,
		Tokens:    jwt.NewService(cfg.JWTSecret, cfg.TokenTTL),
		Limiter:   limiter,
		Version:   version,
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		store:   store,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.release()
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve как Run, но на заранее открытом listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.release()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server started", "addr", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

func (s *Server) release() {
	s.limiter.Stop()
	if err := s.store.Close(); err != nil {
		s.logger.Error("Failed to close storage", "error", err)
	}
}
