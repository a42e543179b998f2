package auth

import (
	"context"

	"github.com/iudanet/moodkeeper/internal/client/storage"
	"github.com/iudanet/moodkeeper/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service defines the main interface for authentication operations.
// It owns the session stored in AuthStorage and keeps the remote client token in sync with it.
type Service interface {
	// Register регистрирует нового пользователя (без входа)
	Register(ctx context.Context, username, password string) (string, error)

	// Login выполняет аутентификацию и сохраняет сессию локально
	Login(ctx context.Context, username, password string) (*storage.AuthData, error)

	// Logout удаляет локальную сессию
	Logout(ctx context.Context) error

	// Restore загружает сохраненную сессию и передает токен клиенту.
	// Возвращает ErrNotAuthenticated, если сессии нет или она истекла
	Restore(ctx context.Context) (*storage.AuthData, error)
}

//go:generate moq -out remoteauth_mock.go . RemoteAuth

// RemoteAuth is the part of the remote store client used for authentication
type RemoteAuth interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
	SetToken(token string)
}
