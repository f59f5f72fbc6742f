package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"storefront/internal/entity"
	"storefront/internal/platform/crypto"

	"github.com/golang-jwt/jwt/v5"
)

// TestSecret signs tokens minted by the fake bookstore.
const TestSecret = "test-secret"

// TestBook is a catalog entry seeded by NewFakeBookstore.
var TestBook = entity.Book{
	ID:     "test-book-id-789",
	Title:  "Test Book Title",
	Author: "Test Author",
	Price:  10,
	Image:  "https://example.com/cover.jpg",
}

// GenerateTestToken mints an HS256 token carrying sub and role.
func GenerateTestToken(secret, sub, role string) string {
	return mint(secret, sub, role, time.Now().Add(time.Hour))
}

// GenerateExpiredToken mints a token that expired an hour ago.
func GenerateExpiredToken(secret, sub, role string) string {
	return mint(secret, sub, role, time.Now().Add(-time.Hour))
}

func mint(secret, sub, role string, exp time.Time) string {
	c := crypto.Claims{
		Sub:  sub,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(exp.Add(-2 * time.Hour)),
		},
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	return token
}

type fakeUser struct {
	name     string
	password string
	role     string
}

// RecordedRequest is what the fake bookstore saw for one request.
type RecordedRequest struct {
	Method    string
	Path      string
	RawPath   string
	Header    http.Header
	RequestID string
}

// FakeBookstore is an in-memory bookstore REST API served over httptest.
type FakeBookstore struct {
	Server *httptest.Server

	mu       sync.Mutex
	users    map[string]fakeUser
	books    []entity.Book
	carts    map[string][]string
	requests []RecordedRequest
}

// NewFakeBookstore starts a fake API seeded with TestBook. Call Close when done.
func NewFakeBookstore() *FakeBookstore {
	f := &FakeBookstore{
		users: make(map[string]fakeUser),
		books: []entity.Book{TestBook},
		carts: make(map[string][]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", f.login)
	mux.HandleFunc("POST /api/users/register", f.register)
	mux.HandleFunc("GET /api/books", f.listBooks)
	mux.HandleFunc("POST /api/cart/add", f.addToCart)
	mux.HandleFunc("GET /api/cart", f.listCart)
	mux.HandleFunc("DELETE /api/cart/remove/{id}", f.removeFromCart)

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			RawPath:   r.URL.EscapedPath(),
			Header:    r.Header.Clone(),
			RequestID: r.Header.Get("X-Request-Id"),
		})
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	return f
}

// URL is the API base URL, including the /api prefix.
func (f *FakeBookstore) URL() string {
	return f.Server.URL + "/api"
}

func (f *FakeBookstore) Close() {
	f.Server.Close()
}

// AddUser registers an account directly.
func (f *FakeBookstore) AddUser(name, email, password, role string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = fakeUser{name: name, password: password, role: role}
}

// SetBooks replaces the catalog.
func (f *FakeBookstore) SetBooks(books ...entity.Book) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.books = append([]entity.Book(nil), books...)
}

// Cart returns the book IDs in the cart of email.
func (f *FakeBookstore) Cart(email string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.carts[email]...)
}

// Requests returns every request seen so far.
func (f *FakeBookstore) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

func (f *FakeBookstore) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	f.mu.Lock()
	u, ok := f.users[req.Email]
	f.mu.Unlock()
	if !ok || u.password != req.Password {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"token": GenerateTestToken(TestSecret, req.Email, u.role),
		"role":  u.role,
	})
}

func (f *FakeBookstore) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[req.Email]; exists {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}
	f.users[req.Email] = fakeUser{name: req.Name, password: req.Password, role: entity.RoleUser}
	writeMessage(w, http.StatusCreated, "User registered successfully")
}

func (f *FakeBookstore) listBooks(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	books := append([]entity.Book{}, f.books...)
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, books)
}

func (f *FakeBookstore) addToCart(w http.ResponseWriter, r *http.Request) {
	email, err := f.authenticate(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, err.Error())
		return
	}
	var req struct {
		BookID string `json:"bookId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.book(req.BookID); !ok {
		writeMessage(w, http.StatusNotFound, "Book not found")
		return
	}
	f.carts[email] = append(f.carts[email], req.BookID)
	writeMessage(w, http.StatusOK, "Book added to cart")
}

func (f *FakeBookstore) listCart(w http.ResponseWriter, r *http.Request) {
	email, err := f.authenticate(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, err.Error())
		return
	}

	f.mu.Lock()
	items := make([]entity.CartItem, 0, len(f.carts[email]))
	for _, id := range f.carts[email] {
		b, _ := f.book(id)
		items = append(items, entity.CartItem{Book: entity.CartBook{ID: b.ID, Title: b.Title, Price: b.Price}})
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, items)
}

func (f *FakeBookstore) removeFromCart(w http.ResponseWriter, r *http.Request) {
	email, err := f.authenticate(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, err.Error())
		return
	}
	id := r.PathValue("id")

	f.mu.Lock()
	defer f.mu.Unlock()
	cart := f.carts[email]
	for i, existing := range cart {
		if existing == id {
			f.carts[email] = append(cart[:i], cart[i+1:]...)
			writeMessage(w, http.StatusOK, "Book removed from cart")
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Book not in cart")
}

// book must be called with f.mu held.
func (f *FakeBookstore) book(id string) (entity.Book, bool) {
	for _, b := range f.books {
		if b.ID == id {
			return b, true
		}
	}
	return entity.Book{}, false
}

func (f *FakeBookstore) authenticate(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return "", errors.New("No token, authorization denied")
	}
	claims := &crypto.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(TestSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.New("Token is not valid")
	}
	return claims.Sub, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
