// Package respond provides utilities for sending HTTP responses in JSON format.
// Errors are rendered as {"type","time","msg"} with the status of their kind,
// and their causes are logged with secrets masked.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/handler/http/requestid"
)

// MsgNotJSON is returned for bodies that are not a JSON document.
const MsgNotJSON = "Data must be provided in JSON format."

// MsgEndpointNotFound is returned for unknown routes and methods.
const MsgEndpointNotFound = "The endpoint you're trying to reach is not found."

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Empty writes an empty JSON response with status 200.
func Empty(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
}

// Error renders err through the error taxonomy. Errors outside the taxonomy
// become Unclassified so their text never reaches the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	e := entity.AsError(err)

	attrs := []any{
		slog.String("type", string(e.Kind)),
		slog.Int("status", e.HTTPStatus()),
		slog.String("msg", e.Msg),
	}
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
		attrs = append(attrs,
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", SanitizeError(e.Err)))
	}
	slog.Default().Log(ctx, e.Level(), "request failed", attrs...)

	JSON(w, e.HTTPStatus(), e.Describe())
}

// DecodeJSON decodes the request body into v. Malformed, empty and null
// bodies are BadRequest, as are bodies cut off by http.MaxBytesReader.
func DecodeJSON(r *http.Request, v any) error {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return entity.BadRequest("Request body exceeds %d bytes", tooLarge.Limit)
		}
		return entity.BadRequest(MsgNotJSON)
	}
	if string(raw) == "null" {
		return entity.BadRequest(MsgNotJSON)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return entity.BadRequest(MsgNotJSON)
	}
	return nil
}

// NotFound renders the unknown endpoint error.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, r, entity.NotFound(MsgEndpointNotFound))
}
