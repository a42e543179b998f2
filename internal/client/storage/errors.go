package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrKeyNotFound indicates that key is absent in local storage
	ErrKeyNotFound = errors.New("key not found")

	// ErrQuotaExceeded indicates that a write would exceed the local storage quota
	ErrQuotaExceeded = errors.New("local storage quota exceeded")

	// ErrDatabaseLocked indicates that another process holds the database file
	ErrDatabaseLocked = errors.New("database is in use by another moodkeeper process")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
