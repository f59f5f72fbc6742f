package httpx

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit blocks each outbound request until the limiter grants a token.
// A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) Decorator {
	if rps <= 0 {
		return func(next http.RoundTripper) http.RoundTripper { return next }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if err := limiter.Wait(r.Context()); err != nil {
				return nil, err
			}
			return next.RoundTrip(r)
		})
	}
}
