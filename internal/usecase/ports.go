package usecase

import (
	"context"

	"storefront/internal/entity"
	"storefront/internal/platform/bookstore"
	"storefront/internal/view"
)

//go:generate mockgen -destination=../store/mocks/mock_ports.go -package=mocks storefront/internal/usecase BookstoreAPI,SessionStore

// BookstoreAPI is the remote REST surface the storefront consumes. Non-2xx
// answers are reported as *bookstore.APIError.
type BookstoreAPI interface {
	Login(ctx context.Context, email, password string) (bookstore.LoginResult, error)
	Register(ctx context.Context, name, email, password string) (string, error)
	ListBooks(ctx context.Context) ([]entity.Book, error)
	AddToCart(ctx context.Context, token, bookID string) (string, error)
	ListCart(ctx context.Context, token string) ([]entity.CartItem, error)
	RemoveFromCart(ctx context.Context, token, bookID string) (string, error)
}

// SessionStore is the persistent key-value storage holding the session fields.
// Get returns "" for a missing key.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Notifier surfaces a message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Presenter replaces the catalog or cart display with the given view.
type Presenter interface {
	ShowCatalog(ctx context.Context, c view.Catalog) error
	ShowCart(ctx context.Context, c view.Cart) error
}

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(ctx context.Context, page string)
}
