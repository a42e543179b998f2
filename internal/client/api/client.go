package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/iudanet/moodkeeper/internal/models"
	"github.com/iudanet/moodkeeper/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с удаленным хранилищем документов
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu    sync.RWMutex
	token string
}

var _ RemoteStore = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetToken задает access token, который передается в заголовке Authorization
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Health проверяет доступность удаленного хранилища
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Create создает документ в коллекции
func (c *Client) Create(ctx context.Context, collection string, draft *models.Record) (*models.Record, error) {
	req := api.CreateDocumentRequest{Data: draft.Data}
	if !draft.CreatedAt.IsZero() {
		createdAt := draft.CreatedAt
		req.CreatedAt = &createdAt
	}

	var doc api.Document
	if err := c.doRequest(ctx, http.MethodPost, documentsPath(collection), req, &doc); err != nil {
		return nil, fmt.Errorf("create document request failed: %w", err)
	}
	return documentToRecord(doc), nil
}

// Update заменяет данные документа
func (c *Client) Update(ctx context.Context, collection, id string, data json.RawMessage) error {
	req := api.UpdateDocumentRequest{Data: data}
	if err := c.doRequest(ctx, http.MethodPut, documentPath(collection, id), req, nil); err != nil {
		return fmt.Errorf("update document request failed: %w", err)
	}
	return nil
}

// Delete удаляет документ
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, documentPath(collection, id), nil, nil); err != nil {
		return fmt.Errorf("delete document request failed: %w", err)
	}
	return nil
}

// Query возвращает документы пользователя из коллекции
func (c *Client) Query(ctx context.Context, collection string, filter models.Filter) ([]*models.Record, error) {
	path := documentsPath(collection)

	params := url.Values{}
	if !filter.Since.IsZero() {
		params.Set("since", filter.Since.UTC().Format(time.RFC3339))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp api.QueryResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("query documents request failed: %w", err)
	}

	records := make([]*models.Record, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		rec := documentToRecord(doc)
		if filter.Match(rec) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func documentsPath(collection string) string {
	return "/api/v1/collections/" + url.PathEscape(collection) + "/documents"
}

func documentPath(collection, id string) string {
	return documentsPath(collection) + "/" + url.PathEscape(id)
}

func documentToRecord(doc api.Document) *models.Record {
	return &models.Record{
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
		ID:         doc.ID,
		Collection: doc.Collection,
		UserID:     doc.UserID,
		Data:       doc.Data,
	}
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.accessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты считаем временными
		return fmt.Errorf("%w: request failed: %w", ErrTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrTransient, err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			msg := errResp.Message
			if msg == "" {
				msg = errResp.Error
			}
			return &StatusError{StatusCode: resp.StatusCode, Message: msg}
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: string(respBody), Raw: true}
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
