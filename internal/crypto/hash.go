// Package crypto holds the hashing helpers shared by backup snapshots and exports.
package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrChecksumMismatch payload не соответствует сохраненной контрольной сумме
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Checksum возвращает hex-encoded SHA-256 от payload
func Checksum(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum проверяет payload по ранее посчитанной сумме.
// Пустая сумма означает, что она не сохранялась: такой payload не проверяется.
func VerifyChecksum(payload []byte, want string) error {
	if want == "" {
		return nil
	}

	got := Checksum(payload)
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, short(got), short(want))
	}
	return nil
}

func short(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
