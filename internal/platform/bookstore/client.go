package bookstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/entity"
	"storefront/internal/httpx"
)

const (
	DefaultBaseURL   = "http://localhost:5000/api"
	DefaultUserAgent = "storefront-cli/1.0"

	maxResponseBytes = 4 << 20
)

type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	userAgent  string
	rps        float64
	timeout    *time.Duration
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The client is copied, never
// modified, and the copy's transport is decorated with request IDs, rate limiting
// and access logging.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.timeout = &d
		}
	}
}

// WithRateLimit caps outbound requests per second. Zero disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.rps = rps
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client rooted at baseURL, e.g. "http://localhost:5000/api".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("bookstore: invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("bookstore: base URL must be http or https, got %q", baseURL)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    parsed,
		userAgent:  DefaultUserAgent,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	decorated := *c.httpClient
	if c.timeout != nil {
		decorated.Timeout = *c.timeout
	}
	decorated.Transport = httpx.Chain(c.httpClient.Transport,
		httpx.RequestID(),
		httpx.AccessLog(c.logger),
		httpx.RateLimit(c.rps, 1),
	)
	c.httpClient = &decorated
	return c, nil
}

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addToCartReq struct {
	BookID string `json:"bookId"`
}

// Login exchanges credentials for a session token and role.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	body, err := c.do(ctx, http.MethodPost, "", loginReq{Email: email, Password: password}, "users", "login")
	if err != nil {
		return LoginResult{}, err
	}
	if err := decodeInto(body, &res); err != nil {
		return LoginResult{}, err
	}
	return res, nil
}

// Register creates an account and returns the server's message.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "", registerReq{Name: name, Email: email, Password: password}, "users", "register")
	if err != nil {
		return "", err
	}
	return decodeMessage(body), nil
}

// ListBooks fetches the whole catalog. No authentication is required.
func (c *Client) ListBooks(ctx context.Context) ([]entity.Book, error) {
	body, err := c.do(ctx, http.MethodGet, "", nil, "books")
	if err != nil {
		return nil, err
	}
	var books []entity.Book
	if err := decodeInto(body, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) AddToCart(ctx context.Context, token, bookID string) (string, error) {
	if err := checkBookID(bookID); err != nil {
		return "", err
	}
	body, err := c.do(ctx, http.MethodPost, token, addToCartReq{BookID: bookID}, "cart", "add")
	if err != nil {
		return "", err
	}
	return decodeMessage(body), nil
}

func (c *Client) ListCart(ctx context.Context, token string) ([]entity.CartItem, error) {
	body, err := c.do(ctx, http.MethodGet, token, nil, "cart")
	if err != nil {
		return nil, err
	}
	var items []entity.CartItem
	if err := decodeInto(body, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, token, bookID string) (string, error) {
	if err := checkBookID(bookID); err != nil {
		return "", err
	}
	body, err := c.do(ctx, http.MethodDelete, token, nil, "cart", "remove", url.PathEscape(bookID))
	if err != nil {
		return "", err
	}
	return decodeMessage(body), nil
}

// do performs one request and returns the raw 2xx body. Non-2xx answers become
// *APIError; everything else is returned as a wrapped transport error.
func (c *Client) do(ctx context.Context, method, token string, payload any, segments ...string) ([]byte, error) {
	endpoint := c.baseURL.JoinPath(segments...)

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("bookstore: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("bookstore: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bookstore: %s %s: %w", method, endpoint.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("bookstore: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message, code := httpx.ErrorMessage(body)
		return nil, &APIError{StatusCode: resp.StatusCode, Code: code, Message: message}
	}
	return body, nil
}

// checkBookID rejects IDs that the path join would drop or resolve upward.
func checkBookID(bookID string) error {
	switch bookID {
	case "", ".", "..":
		return fmt.Errorf("%w: %q", ErrInvalidBookID, bookID)
	}
	return nil
}

func decodeInto(body []byte, target any) error {
	payload := httpx.Unwrap(body)
	if len(payload) == 0 {
		return ErrMalformedResponse
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return errors.Join(ErrMalformedResponse, err)
	}
	return nil
}

// decodeMessage is lenient: success responses for mutations only carry an
// informational message, so an empty or unexpected body yields "".
func decodeMessage(body []byte) string {
	payload := httpx.Unwrap(body)
	if len(payload) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &obj); err == nil {
		return obj.Message
	}
	return ""
}
