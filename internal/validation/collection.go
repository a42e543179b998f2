package validation

import "regexp"

// CollectionPattern допустимое имя коллекции: латинская буква, затем буквы и цифры, до 64 символов
var CollectionPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]{0,63}$`)

// ValidateCollection проверяет имя коллекции документов
func ValidateCollection(collection string) error {
	if collection == "" {
		return invalid("collection cannot be empty")
	}

	if !CollectionPattern.MatchString(collection) {
		return invalid("collection must start with a letter and contain only letters and digits (max 64)")
	}

	return nil
}
