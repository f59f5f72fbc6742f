package httpx

import (
	"log/slog"
	"net/http"
	"time"
)

// AccessLog logs one line per outbound request at debug level.
func AccessLog(logger *slog.Logger) Decorator {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			status := 0
			if resp != nil {
				status = resp.StatusCode
			}
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("request_id", r.Header.Get(RequestIDHeader)),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("err", err))
			}
			logger.LogAttrs(r.Context(), slog.LevelDebug, "access", attrs...)
			return resp, err
		})
	}
}
