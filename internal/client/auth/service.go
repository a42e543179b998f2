package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/moodkeeper/internal/client/storage"
	"github.com/iudanet/moodkeeper/internal/validation"
	"github.com/iudanet/moodkeeper/pkg/api"
)

// ErrNotAuthenticated нет действующей сессии
var ErrNotAuthenticated = errors.New("not authenticated")

type service struct {
	remote  RemoteAuth
	storage storage.AuthStorage
	logger  *slog.Logger
	now     func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(remote RemoteAuth, authStorage storage.AuthStorage, logger *slog.Logger) Service {
	return &service{
		remote:  remote,
		storage: authStorage,
		logger:  logger,
		now:     time.Now,
	}
}

// Register регистрирует нового пользователя и возвращает его ID
func (s *service) Register(ctx context.Context, username, password string) (string, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return "", fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.remote.Register(ctx, api.RegisterRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info("User registered", "username", username, "user_id", resp.UserID)
	return resp.UserID, nil
}

// Login выполняет вход, сохраняет сессию и устанавливает токен клиенту
func (s *service) Login(ctx context.Context, username, password string) (*storage.AuthData, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("invalid password: password cannot be empty")
	}

	resp, err := s.remote.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	authData := &storage.AuthData{
		Username:    username,
		UserID:      resp.UserID,
		AccessToken: resp.AccessToken,
		ExpiresAt:   s.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
	}
	if err := s.storage.SaveAuth(ctx, authData); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.remote.SetToken(authData.AccessToken)
	s.logger.Info("User logged in", "username", username, "user_id", authData.UserID)

	return authData, nil
}

// Logout удаляет локальные данные авторизации.
// Офлайн-данные (кэш, очередь, backup) не затрагиваются: они привязаны
// к владельцу и ждут его следующего входа.
func (s *service) Logout(ctx context.Context) error {
	s.remote.SetToken("")

	if err := s.storage.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}
	return nil
}

// Restore возвращает сохраненную сессию, если токен еще действителен
func (s *service) Restore(ctx context.Context) (*storage.AuthData, error) {
	authData, err := s.storage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if !s.now().Before(time.Unix(authData.ExpiresAt, 0)) {
		s.logger.Debug("Stored session expired", "username", authData.Username)
		return nil, ErrNotAuthenticated
	}

	s.remote.SetToken(authData.AccessToken)
	return authData, nil
}
