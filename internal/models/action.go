package models

import (
	"encoding/json"
	"time"
)

// ActionType тип отложенной мутации
type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
)

// Valid reports whether t is one of the known action types.
func (t ActionType) Valid() bool {
	switch t {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	default:
		return false
	}
}

// PendingAction представляет намерение изменить удаленное хранилище,
// которое не удалось выполнить сразу (нет сети или ошибка сервера).
type PendingAction struct {
	Timestamp  time.Time       `json:"timestamp"`  // Timestamp момент постановки в очередь
	ID         string          `json:"id"`         // ID формат "<type>_<unixMillis>_<suffix>"
	UserID     string          `json:"userId"`     // UserID владелец; воспроизводится только под его сессией
	Type       ActionType      `json:"type"`       // Type create / update / delete
	Collection string          `json:"collection"` // Collection целевая коллекция
	Payload    json.RawMessage `json:"payload"`    // Payload сериализованный ActionPayload
	Retries    int             `json:"retries"`    // Retries количество неудачных попыток воспроизведения
}

// ActionPayload is the decoded form of PendingAction.Payload.
// RecordID holds the locally generated id for creates and the target id otherwise.
type ActionPayload struct {
	RecordID string          `json:"record_id"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// OfflineCache is the persisted local record cache.
type OfflineCache struct {
	LastSync time.Time `json:"last_sync"`
	Records  []*Record `json:"records"`
}
