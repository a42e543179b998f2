// Package validation checks user-supplied names shared by client and server.
package validation

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalid оборачивает все ошибки проверки пакета
var ErrInvalid = errors.New("validation failed")

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32

	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxPasswordLen bcrypt учитывает только первые 72 байта
	MaxPasswordLen = 72
)

// UsernamePattern латинские буквы, цифры и подчеркивание
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateUsername проверяет имя учетной записи удаленного хранилища
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return invalid("username cannot be empty")
	case len(username) < MinUsernameLen:
		return invalid("username must be at least %d characters long", MinUsernameLen)
	case len(username) > MaxUsernameLen:
		return invalid("username must not exceed %d characters", MaxUsernameLen)
	case !UsernamePattern.MatchString(username):
		return invalid("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}
	return nil
}

// ValidatePassword проверяет длину пароля в байтах
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return invalid("password cannot be empty")
	case len(password) < MinPasswordLen:
		return invalid("password must be at least %d characters long", MinPasswordLen)
	case len(password) > MaxPasswordLen:
		return invalid("password must not exceed %d bytes", MaxPasswordLen)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}
