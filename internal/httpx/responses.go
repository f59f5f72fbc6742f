package httpx

import (
	"bytes"
	"encoding/json"
)

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Unwrap returns the payload inside a {success,data,meta} envelope, or body itself when
// it is not enveloped.
func Unwrap(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return trimmed
	}
	_, hasSuccess := probe["success"]
	data, hasData := probe["data"]
	if !hasSuccess || !hasData {
		return trimmed
	}
	return data
}

// ErrorMessage extracts a user-facing message and code from an error body. It
// understands a top-level "message" field, an "error" string, and the
// {error:{code,message}} envelope. Both results are empty when nothing matches.
func ErrorMessage(body []byte) (message, code string) {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(body), &payload); err != nil {
		return "", ""
	}
	if len(payload.Error) > 0 {
		var nested ErrorResponseBody
		if err := json.Unmarshal(payload.Error, &nested); err == nil {
			code = nested.Code
			if payload.Message == "" {
				payload.Message = nested.Message
			}
		} else {
			var s string
			if err := json.Unmarshal(payload.Error, &s); err == nil && payload.Message == "" {
				payload.Message = s
			}
		}
	}
	return payload.Message, code
}
