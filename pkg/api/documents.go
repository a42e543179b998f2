package api

import (
	"encoding/json"
	"time"
)

// Document представляет документ удаленного хранилища
type Document struct {
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ID         string          `json:"id"`
	Collection string          `json:"collection"`
	UserID     string          `json:"user_id"`
	Data       json.RawMessage `json:"data"`
}

// CreateDocumentRequest представляет запрос на создание документа.
// CreatedAt позволяет сохранить исходное время создания офлайн-записи.
type CreateDocumentRequest struct {
	CreatedAt *time.Time      `json:"created_at,omitempty"`
	Data      json.RawMessage `json:"data"`
}

// UpdateDocumentRequest представляет запрос на замену данных документа
type UpdateDocumentRequest struct {
	Data json.RawMessage `json:"data"`
}

// QueryResponse представляет результат выборки документов коллекции
type QueryResponse struct {
	Documents []Document `json:"documents"`
}
