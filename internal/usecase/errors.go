package usecase

import (
	"errors"

	"storefront/internal/platform/bookstore"
)

var (
	ErrNoSession         = errors.New("no active session")
	ErrInvalidInput      = errors.New("invalid input")
	ErrMalformedResponse = bookstore.ErrMalformedResponse
)
