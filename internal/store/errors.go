package store

import (
	"errors"
	"strings"
)

var ErrEmptyKey = errors.New("store: key is required")

func validKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}
