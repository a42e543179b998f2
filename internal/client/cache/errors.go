package cache

import "errors"

// ErrRecordNotFound запись отсутствует в локальном кэше
var ErrRecordNotFound = errors.New("record not found in local cache")
