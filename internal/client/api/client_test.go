package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/moodkeeper/internal/models"
	"github.com/iudanet/moodkeeper/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// TestClient_Register проверяет успешную регистрацию
func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.RegisterRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)

		assert.Equal(t, "testuser", req.Username)
		assert.Equal(t, "password123", req.Password)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.RegisterResponse{
			UserID:  "user-123",
			Message: "Registration successful",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Register(context.Background(), api.RegisterRequest{
		Username: "testuser",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-123", resp.UserID)
	assert.Equal(t, "Registration successful", resp.Message)
}

// TestClient_Register_Error проверяет обработку ошибок при регистрации
func TestClient_Register_Error(t *testing.T) {
	tests := []struct {
		responseBody   interface{}
		wantClass      error
		name           string
		expectedErrMsg string
		statusCode     int
	}{
		{
			name:           "User already exists",
			statusCode:     http.StatusConflict,
			responseBody:   api.ErrorResponse{Error: "conflict", Message: "user already exists"},
			expectedErrMsg: "server error (409): user already exists",
			wantClass:      ErrRejected,
		},
		{
			name:           "Invalid request",
			statusCode:     http.StatusBadRequest,
			responseBody:   api.ErrorResponse{Error: "bad_request", Message: "invalid username"},
			expectedErrMsg: "server error (400): invalid username",
			wantClass:      ErrRejected,
		},
		{
			name:           "Internal server error",
			statusCode:     http.StatusInternalServerError,
			responseBody:   "Internal Server Error",
			expectedErrMsg: "request failed with status 500",
			wantClass:      ErrTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if errResp, ok := tt.responseBody.(api.ErrorResponse); ok {
					_ = json.NewEncoder(w).Encode(errResp)
				} else {
					_, _ = w.Write([]byte(tt.responseBody.(string)))
				}
			}))
			defer server.Close()

			client := NewClient(server.URL)
			resp, err := client.Register(context.Background(), api.RegisterRequest{
				Username: "testuser",
				Password: "password123",
			})

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)
			assert.ErrorIs(t, err, tt.wantClass)
		})
	}
}

// TestClient_Login проверяет успешный логин
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "testuser", req.Username)

		_ = json.NewEncoder(w).Encode(api.TokenResponse{
			UserID:      "user-uuid-123",
			AccessToken: "access_token_123",
			ExpiresIn:   3600,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Login(context.Background(), api.LoginRequest{
		Username: "testuser",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-uuid-123", resp.UserID)
	assert.Equal(t, "access_token_123", resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

// TestClient_Login_InvalidCredentials проверяет обработку неверных учетных данных
func TestClient_Login_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Message: "invalid credentials"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Login(context.Background(), api.LoginRequest{Username: "testuser", Password: "wrong"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "server error (401): invalid credentials")
	assert.ErrorIs(t, err, ErrUnauthorized)
	// 401 лечится повторным входом, а не отбрасыванием запроса
	assert.NotErrorIs(t, err, ErrRejected)
	assert.NotErrorIs(t, err, ErrTransient)
}

// TestClient_Health проверяет запрос health check
func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	}))

	client := NewClient(server.URL)
	require.NoError(t, client.Health(context.Background()))

	// После остановки сервера ошибка временная
	server.Close()
	err := client.Health(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransient)
}

// TestClient_Create проверяет создание документа
func TestClient_Create(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/collections/moodLogs/documents", r.URL.Path)
		assert.Equal(t, "Bearer test_token", r.Header.Get("Authorization"))

		var req api.CreateDocumentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.CreatedAt)
		assert.True(t, createdAt.Equal(*req.CreatedAt))
		assert.JSONEq(t, `{"mood":7}`, string(req.Data))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.Document{
			ID:         "server-id",
			Collection: "moodLogs",
			UserID:     "user-1",
			Data:       req.Data,
			CreatedAt:  *req.CreatedAt,
			UpdatedAt:  *req.CreatedAt,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("test_token")

	rec, err := client.Create(context.Background(), models.CollectionMoodLogs, &models.Record{
		ID:        "local-id",
		Data:      json.RawMessage(`{"mood":7}`),
		CreatedAt: createdAt,
	})

	require.NoError(t, err)
	assert.Equal(t, "server-id", rec.ID)
	assert.Equal(t, "user-1", rec.UserID)
	assert.False(t, rec.IsOffline)
	assert.True(t, createdAt.Equal(rec.CreatedAt))
}

// TestClient_UpdateDelete проверяет изменение и удаление документа
func TestClient_UpdateDelete(t *testing.T) {
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPut:
			var req api.UpdateDocumentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.JSONEq(t, `{"mood":3}`, string(req.Data))
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{Message: "document not found"})
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	err := client.Update(ctx, "moodLogs", "doc-1", json.RawMessage(`{"mood":3}`))
	require.NoError(t, err)

	err = client.Delete(ctx, "moodLogs", "doc-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrRejected)
	assert.False(t, errors.Is(err, ErrTransient))

	assert.Equal(t, []string{
		"PUT /api/v1/collections/moodLogs/documents/doc-1",
		"DELETE /api/v1/collections/moodLogs/documents/doc-1",
	}, calls)
}

// TestClient_Query проверяет выборку документов и параметры фильтра
func TestClient_Query(t *testing.T) {
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "2026-03-01T00:00:00Z", r.URL.Query().Get("since"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		_ = json.NewEncoder(w).Encode(api.QueryResponse{Documents: []api.Document{
			{ID: "a", Collection: "moodLogs", UserID: "user-1", Data: json.RawMessage(`{}`), CreatedAt: since.Add(time.Hour)},
			{ID: "b", Collection: "moodLogs", UserID: "user-1", Data: json.RawMessage(`{}`), CreatedAt: since.Add(2 * time.Hour)},
		}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	records, err := client.Query(context.Background(), "moodLogs", models.Filter{Since: since, Limit: 50})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
}

// TestClient_RateLimited проверяет что 429 считается временной ошибкой
func TestClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Message: "rate limit exceeded"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Query(context.Background(), "moodLogs", models.Filter{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransient)
	assert.False(t, errors.Is(err, ErrRejected))
}

// TestClient_ContextCancellation проверяет отмену запроса через контекст
func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Имитируем долгий запрос
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	resp, err := client.Register(ctx, api.RegisterRequest{Username: "testuser", Password: "password123"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "context deadline exceeded")
	assert.ErrorIs(t, err, ErrTransient)
}

// TestClient_InvalidJSON проверяет обработку невалидного JSON в ответе
func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("invalid json {{{"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Register(context.Background(), api.RegisterRequest{Username: "testuser", Password: "password123"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to decode response")
}

// TestClient_HTTPClientRedirect проверяет обработку редиректов
func TestClient_HTTPClientRedirect(t *testing.T) {
	redirectCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if redirectCount < 3 {
			redirectCount++
			w.Header().Set("Location", "/redirected")
			w.WriteHeader(http.StatusFound)
			return
		}

		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, redirectCount)
}
