package commercetools

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("commercetools: resource not found")
	// ErrVersionConflict is returned when a versioned write is rejected
	// because another writer updated the resource in between.
	ErrVersionConflict = errors.New("commercetools: version conflict")
)
