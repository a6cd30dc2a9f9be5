package storage

import "errors"

// ErrNotFound is returned when no combination exists for a key.
type ErrNotFound struct {
	Key string
}

func (e ErrNotFound) Error() string {
	if e.Key == "" {
		return "combination not found"
	}

	return "combination not found: " + e.Key
}

// IsNotFound reports whether err is (or wraps) an ErrNotFound.
func IsNotFound(err error) bool {
	var notFound ErrNotFound
	return errors.As(err, &notFound)
}
