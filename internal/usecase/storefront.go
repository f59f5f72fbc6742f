package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"storefront/internal/entity"
	"storefront/internal/platform/bookstore"
	"storefront/internal/view"
)

// Landing pages the storefront navigates to.
const (
	LoginPage      = "/login.html"
	AdminDashboard = "/admin-dashboard.html"
	UserDashboard  = "/user-dashboard.html"
)

// User-facing messages.
const (
	MsgLoginSuccess     = "Login successful!"
	MsgLoginRejected    = "Invalid login credentials!"
	MsgLoginFailed      = "Error logging in. Please try again."
	MsgRegisterSuccess  = "Registration successful! Please login."
	MsgRegisterRejected = "Registration failed!"
	MsgRegisterFailed   = "Error registering user."
	MsgCatalogFailed    = "Error loading books!"
	MsgLoginToAdd       = "Please login to add items to cart!"
	MsgLoginToView      = "Please login to view your cart!"
	MsgLoginToManage    = "Please login to manage your cart!"
	MsgAdded            = "Book added to cart!"
	MsgAddRejected      = "Failed to add book to cart."
	MsgCartRejected     = "Failed to load your cart."
	MsgRemoved          = "Item removed from cart."
	MsgRemoveRejected   = "Failed to remove item from cart."
	MsgInvalidBookID    = "Invalid book ID."
	MsgUnreachable      = "Could not reach the bookstore. Please try again."
	MsgLoggedOut        = "Logged out successfully."
	MsgLogoutFailed     = "Error logging out."
)

// Storefront implements the storefront operations. It keeps no state of its own:
// the session lives in the SessionStore and is handed to the authenticated
// operations explicitly.
type Storefront struct {
	api       BookstoreAPI
	sessions  SessionStore
	notifier  Notifier
	presenter Presenter
	navigator Navigator
	logger    *slog.Logger
}

func NewStorefront(api BookstoreAPI, sessions SessionStore, notifier Notifier, presenter Presenter, navigator Navigator, logger *slog.Logger) *Storefront {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storefront{
		api:       api,
		sessions:  sessions,
		notifier:  notifier,
		presenter: presenter,
		navigator: navigator,
		logger:    logger,
	}
}

// LandingPage returns the page a freshly authenticated session lands on.
func LandingPage(sess entity.Session) string {
	if sess.IsAdmin() {
		return AdminDashboard
	}
	return UserDashboard
}

// CurrentSession reads the persisted session. A missing token yields a zero
// Session, not an error.
func (s *Storefront) CurrentSession(ctx context.Context) (entity.Session, error) {
	token, err := s.sessions.Get(ctx, entity.TokenKey)
	if err != nil {
		return entity.Session{}, fmt.Errorf("read session token: %w", err)
	}
	role, err := s.sessions.Get(ctx, entity.RoleKey)
	if err != nil {
		return entity.Session{}, fmt.Errorf("read session role: %w", err)
	}
	return entity.Session{Token: token, Role: role}, nil
}

func (s *Storefront) Authenticate(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if errs := ValidateStruct(credentialsInput{Email: email, Password: password}); len(errs) > 0 {
		return s.invalid(ctx, errs)
	}

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return s.fail(ctx, "login", err, MsgLoginRejected, MsgLoginFailed)
	}
	if strings.TrimSpace(res.Token) == "" {
		return s.fail(ctx, "login", fmt.Errorf("%w: login response has no token", ErrMalformedResponse), MsgLoginRejected, MsgLoginFailed)
	}

	sess := entity.Session{Token: res.Token, Role: entity.NormalizeRole(res.Role)}
	if err := s.saveSession(ctx, sess); err != nil {
		s.logger.Error("persist session", slog.Any("err", err))
		s.notifier.Notify(ctx, MsgLoginFailed)
		return err
	}

	s.logger.Info("logged in", slog.String("role", sess.Role))
	s.notifier.Notify(ctx, MsgLoginSuccess)
	s.navigator.Navigate(ctx, LandingPage(sess))
	return nil
}

func (s *Storefront) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if errs := ValidateStruct(registrationInput{Name: name, Email: email, Password: password}); len(errs) > 0 {
		return s.invalid(ctx, errs)
	}

	if _, err := s.api.Register(ctx, name, email, password); err != nil {
		return s.fail(ctx, "register", err, MsgRegisterRejected, MsgRegisterFailed)
	}

	s.notifier.Notify(ctx, MsgRegisterSuccess)
	s.navigator.Navigate(ctx, LoginPage)
	return nil
}

// ListCatalog replaces the catalog display with the current book collection.
// On failure the display is cleared.
func (s *Storefront) ListCatalog(ctx context.Context) error {
	books, err := s.api.ListBooks(ctx)
	if err != nil {
		s.render(ctx, "catalog", s.presenter.ShowCatalog(ctx, view.Catalog{Unavailable: true}))
		return s.fail(ctx, "list catalog", err, MsgCatalogFailed, MsgCatalogFailed)
	}
	if err := s.presenter.ShowCatalog(ctx, view.NewCatalog(books)); err != nil {
		s.render(ctx, "catalog", err)
		return fmt.Errorf("render catalog: %w", err)
	}
	return nil
}

func (s *Storefront) AddToCart(ctx context.Context, sess entity.Session, bookID string) error {
	if !sess.Authenticated() {
		s.notifier.Notify(ctx, MsgLoginToAdd)
		return ErrNoSession
	}
	if err := s.checkBookID(ctx, bookID); err != nil {
		return err
	}

	if _, err := s.api.AddToCart(ctx, sess.Token, bookID); err != nil {
		return s.fail(ctx, "add to cart", err, MsgAddRejected, MsgUnreachable)
	}
	s.notifier.Notify(ctx, MsgAdded)
	return nil
}

// ListCart replaces the cart display with the session's cart. On failure the
// display is cleared.
func (s *Storefront) ListCart(ctx context.Context, sess entity.Session) error {
	if !sess.Authenticated() {
		s.notifier.Notify(ctx, MsgLoginToView)
		return ErrNoSession
	}

	items, err := s.api.ListCart(ctx, sess.Token)
	if err != nil {
		s.render(ctx, "cart", s.presenter.ShowCart(ctx, view.Cart{Unavailable: true}))
		return s.fail(ctx, "list cart", err, MsgCartRejected, MsgUnreachable)
	}
	if err := s.presenter.ShowCart(ctx, view.NewCart(items)); err != nil {
		s.render(ctx, "cart", err)
		return fmt.Errorf("render cart: %w", err)
	}
	return nil
}

// RemoveFromCart deletes one book from the cart and then refreshes the cart
// display once. A failed refresh is surfaced by ListCart itself and does not
// turn the removal into a failure.
func (s *Storefront) RemoveFromCart(ctx context.Context, sess entity.Session, bookID string) error {
	if !sess.Authenticated() {
		s.notifier.Notify(ctx, MsgLoginToManage)
		return ErrNoSession
	}
	if err := s.checkBookID(ctx, bookID); err != nil {
		return err
	}

	if _, err := s.api.RemoveFromCart(ctx, sess.Token, bookID); err != nil {
		return s.fail(ctx, "remove from cart", err, MsgRemoveRejected, MsgUnreachable)
	}
	s.notifier.Notify(ctx, MsgRemoved)

	if err := s.ListCart(ctx, sess); err != nil {
		s.logger.Warn("refresh cart after removal", slog.Any("err", err))
	}
	return nil
}

// Logout clears both session fields, whatever their previous state.
func (s *Storefront) Logout(ctx context.Context) error {
	var errs []error
	for _, key := range []string{entity.TokenKey, entity.RoleKey} {
		if err := s.sessions.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.logger.Error("clear session", slog.Any("err", err))
		s.notifier.Notify(ctx, MsgLogoutFailed)
		return err
	}

	s.notifier.Notify(ctx, MsgLoggedOut)
	s.navigator.Navigate(ctx, LoginPage)
	return nil
}

func (s *Storefront) saveSession(ctx context.Context, sess entity.Session) error {
	if err := s.sessions.Set(ctx, entity.TokenKey, sess.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := s.sessions.Set(ctx, entity.RoleKey, sess.Role); err != nil {
		// never leave a token without its role
		_ = s.sessions.Remove(ctx, entity.TokenKey)
		return fmt.Errorf("store role: %w", err)
	}
	return nil
}

// checkBookID rejects IDs that would not name a single path segment.
func (s *Storefront) checkBookID(ctx context.Context, bookID string) error {
	switch bookID {
	case "", ".", "..":
		s.notifier.Notify(ctx, MsgInvalidBookID)
		return fmt.Errorf("%w: book id %q", ErrInvalidInput, bookID)
	}
	return nil
}

func (s *Storefront) invalid(ctx context.Context, errs []ValidationError) error {
	msg := joinValidation(errs)
	s.notifier.Notify(ctx, msg)
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// fail surfaces err to the user. Rejections show the server message, or the
// fallback when there is none. Transport failures are logged and show a generic
// message.
func (s *Storefront) fail(ctx context.Context, op string, err error, rejectedFallback, transportMsg string) error {
	if apiErr, ok := bookstore.IsRejection(err); ok {
		s.logger.Warn("request rejected",
			slog.String("op", op),
			slog.Int("status", apiErr.StatusCode),
			slog.String("code", apiErr.Code),
		)
		msg := apiErr.Message
		if msg == "" {
			msg = rejectedFallback
		}
		s.notifier.Notify(ctx, msg)
		return err
	}

	s.logger.Error("request failed", slog.String("op", op), slog.Any("err", err))
	s.notifier.Notify(ctx, transportMsg)
	return err
}

func (s *Storefront) render(ctx context.Context, what string, err error) {
	if err != nil {
		s.logger.ErrorContext(ctx, "render "+what, slog.Any("err", err))
	}
}
