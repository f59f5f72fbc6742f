package httpx

import "context"

type contextKey string

const requestIDKey contextKey = "requestID"

// ContextWithRequestID pins the X-Request-Id used for requests made with ctx.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFrom retrieves the request ID stored in ctx.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
