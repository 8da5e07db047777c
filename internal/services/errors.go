package services

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors returned by services. Handlers map these to HTTP
// statuses; everything else is treated as an internal error.
var (
	// ErrNotFound signals that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidOperation signals a state conflict, e.g. a duplicate like
	// or a reply targeting a parent on another image.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrUnauthorized signals that the actor lacks ownership or role for
	// a mutating operation.
	ErrUnauthorized = errors.New("unauthorized")
)

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
