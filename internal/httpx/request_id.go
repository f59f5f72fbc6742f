package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID stamps every outbound request with an X-Request-Id. The ID comes from
// the request context when present, otherwise a fresh UUID is generated.
func RequestID() Decorator {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(r)
			}
			requestID := RequestIDFrom(r.Context())
			if requestID == "" {
				requestID = uuid.New().String()
			}
			r = r.Clone(ContextWithRequestID(r.Context(), requestID))
			r.Header.Set(RequestIDHeader, requestID)
			return next.RoundTrip(r)
		})
	}
}
