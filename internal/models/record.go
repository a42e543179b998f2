package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Коллекции удаленного хранилища, с которыми работает портал
const (
	CollectionMoodLogs       = "moodLogs"
	CollectionNotifications  = "notifications"
	CollectionJournalEntries = "journalEntries"
	CollectionSessions       = "sessions"
)

// DefaultCollections возвращает коллекции, которые попадают в полный backup пользователя
func DefaultCollections() []string {
	return []string{
		CollectionMoodLogs,
		CollectionNotifications,
		CollectionJournalEntries,
		CollectionSessions,
	}
}

// Record представляет доменную запись (mood entry, уведомление и т.д.).
// Пока IsOffline == true, запись существует только в локальном кэше и ID сгенерирован
// локально; после подтверждения удаленным хранилищем ID заменяется серверным.
type Record struct {
	CreatedAt  time.Time       `json:"created_at"`           // CreatedAt время создания записи
	UpdatedAt  time.Time       `json:"updated_at"`           // UpdatedAt время последнего изменения
	ID         string          `json:"id"`                   // ID локальный или серверный идентификатор
	Collection string          `json:"collection"`           // Collection имя коллекции (например, "moodLogs")
	UserID     string          `json:"user_id"`              // UserID владелец записи
	Data       json.RawMessage `json:"data"`                 // Data произвольный JSON объект записи
	IsOffline  bool            `json:"is_offline,omitempty"` // IsOffline запись еще не подтверждена сервером
}

// Clone создает глубокую копию записи
func (r *Record) Clone() *Record {
	data := make(json.RawMessage, len(r.Data))
	copy(data, r.Data)

	return &Record{
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		ID:         r.ID,
		Collection: r.Collection,
		UserID:     r.UserID,
		Data:       data,
		IsOffline:  r.IsOffline,
	}
}

// Filter ограничивает выборку записей коллекции
type Filter struct {
	Since  time.Time // Since только записи, созданные не раньше этого момента
	UserID string    // UserID только записи пользователя
	Limit  int       // Limit максимальное количество записей (0 = без ограничения)
}

// Match проверяет, подходит ли запись под фильтр (Limit не учитывается)
func (f Filter) Match(r *Record) bool {
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	if !f.Since.IsZero() && r.CreatedAt.Before(f.Since) {
		return false
	}
	return true
}

// MoodEntry is the typed payload of a moodLogs record.
type MoodEntry struct {
	RecordedAt time.Time `json:"recorded_at"`
	Note       string    `json:"note,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Mood       int       `json:"mood"` // Mood оценка настроения от 1 до 10
}

const (
	MinMood = 1
	MaxMood = 10
)

// Validate проверяет корректность mood entry перед записью
func (m *MoodEntry) Validate() error {
	if m.Mood < MinMood || m.Mood > MaxMood {
		return fmt.Errorf("mood must be between %d and %d, got %d", MinMood, MaxMood, m.Mood)
	}
	if len(m.Note) > 2000 {
		return fmt.Errorf("note must not exceed 2000 characters")
	}
	for _, tag := range m.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("tags cannot be empty")
		}
	}
	return nil
}
