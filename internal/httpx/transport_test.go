package httpx

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okTransport(seen *[]*http.Request) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		*seen = append(*seen, r)
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Decorator {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}
	var seen []*http.Request
	rt := Chain(okTransport(&seen), mark("outer"), mark("inner"))

	req, _ := http.NewRequest(http.MethodGet, "http://example.com/api/books", nil)
	_, err := rt.RoundTrip(req)

	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Len(t, seen, 1)
}

func TestChain_NilBase(t *testing.T) {
	assert.Equal(t, http.DefaultTransport, Chain(nil))
}

func TestRequestID(t *testing.T) {
	var seen []*http.Request
	rt := Chain(okTransport(&seen), RequestID())

	t.Run("generated", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "http://example.com/", nil)
		_, err := rt.RoundTrip(req)
		require.NoError(t, err)

		got := seen[len(seen)-1]
		assert.Len(t, got.Header.Get(RequestIDHeader), 36)
		assert.Equal(t, got.Header.Get(RequestIDHeader), RequestIDFrom(got.Context()))
		assert.Empty(t, req.Header.Get(RequestIDHeader), "caller's request is not mutated")
	})

	t.Run("from context", func(t *testing.T) {
		ctx := ContextWithRequestID(context.Background(), "abc")
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com/", nil)
		_, err := rt.RoundTrip(req)
		require.NoError(t, err)

		assert.Equal(t, "abc", seen[len(seen)-1].Header.Get(RequestIDHeader))
	})

	t.Run("explicit header wins", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "http://example.com/", nil)
		req.Header.Set(RequestIDHeader, "fixed")
		_, err := rt.RoundTrip(req)
		require.NoError(t, err)

		assert.Equal(t, "fixed", seen[len(seen)-1].Header.Get(RequestIDHeader))
	})
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	var seen []*http.Request
	rt := Chain(okTransport(&seen), RequestID(), AccessLog(logger))

	req, _ := http.NewRequest(http.MethodPost, "http://example.com/api/cart/add", nil)
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)

	line := buf.String()
	assert.Contains(t, line, "msg=access")
	assert.Contains(t, line, "method=POST")
	assert.Contains(t, line, "path=/api/cart/add")
	assert.Contains(t, line, "status=200")
	assert.Contains(t, line, "request_id="+seen[0].Header.Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		var seen []*http.Request
		base := okTransport(&seen)
		rt := RateLimit(0, 1)(base)
		req, _ := http.NewRequest(http.MethodGet, "http://example.com/", nil)
		for i := 0; i < 5; i++ {
			_, err := rt.RoundTrip(req)
			require.NoError(t, err)
		}
		assert.Len(t, seen, 5)
	})

	t.Run("waits between requests", func(t *testing.T) {
		var seen []*http.Request
		rt := Chain(okTransport(&seen), RateLimit(20, 1))
		req, _ := http.NewRequest(http.MethodGet, "http://example.com/", nil)

		start := time.Now()
		for i := 0; i < 3; i++ {
			_, err := rt.RoundTrip(req)
			require.NoError(t, err)
		}
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("canceled context", func(t *testing.T) {
		var seen []*http.Request
		rt := Chain(okTransport(&seen), RateLimit(1, 1))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com/", nil)

		_, err := rt.RoundTrip(req)

		require.Error(t, err)
		assert.Empty(t, seen)
	})
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bare array", `[{"_id":"b1"}]`, `[{"_id":"b1"}]`},
		{"envelope", `{"success":true,"data":{"token":"T1"}}`, `{"token":"T1"}`},
		{"object without envelope", `{"token":"T1","role":"admin"}`, `{"token":"T1","role":"admin"}`},
		{"data without success", `{"data":1}`, `{"data":1}`},
		{"whitespace", "  \n", ""},
		{"not json", `oops`, `oops`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strings.TrimSpace(string(Unwrap([]byte(tt.body)))))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantMsg  string
		wantCode string
	}{
		{"message", `{"message":"Invalid credentials"}`, "Invalid credentials", ""},
		{"envelope", `{"success":false,"error":{"code":"NOT_FOUND","message":"Book not found"}}`, "Book not found", "NOT_FOUND"},
		{"top-level message wins", `{"message":"outer","error":{"code":"X","message":"inner"}}`, "outer", "X"},
		{"error string", `{"error":"nope"}`, "nope", ""},
		{"empty object", `{}`, "", ""},
		{"plain text", `Internal Server Error`, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, code := ErrorMessage([]byte(tt.body))
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
