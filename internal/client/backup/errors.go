package backup

import "errors"

var (
	// ErrBackupNotFound backup с указанным ID отсутствует в истории
	ErrBackupNotFound = errors.New("backup not found")

	// ErrIntegrity payload backup поврежден или не совпадает контрольная сумма
	ErrIntegrity = errors.New("backup integrity check failed")

	// ErrInvalidConfig недопустимое значение настроек backup
	ErrInvalidConfig = errors.New("invalid backup config")
)
