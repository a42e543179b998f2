package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Классы ошибок удаленного хранилища
var (
	// ErrTransient сеть, таймаут, 5xx или 429: запрос можно повторить
	ErrTransient = errors.New("transient remote error")

	// ErrRejected удаленное хранилище отклонило запрос (4xx кроме 401 и 429), повтор не поможет
	ErrRejected = errors.New("remote store rejected request")

	// ErrNotFound документ или ресурс не найден (404)
	ErrNotFound = errors.New("remote resource not found")

	// ErrUnauthorized токен отсутствует, неверен или истек (401)
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is returned for any non-2xx response.
// It matches ErrTransient, ErrRejected, ErrNotFound and ErrUnauthorized via errors.Is.
type StatusError struct {
	Message    string
	StatusCode int
	// Raw тело ответа не было ErrorResponse
	Raw bool
}

func (e *StatusError) Error() string {
	if e.Raw {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Is классифицирует ошибку по коду ответа
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrTransient:
		return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
	case ErrRejected:
		return e.StatusCode >= 400 && e.StatusCode < 500 &&
			e.StatusCode != http.StatusTooManyRequests &&
			e.StatusCode != http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	default:
		return false
	}
}
