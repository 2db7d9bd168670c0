package entity

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrorKind identifies one variant of the closed error taxonomy.
// The string value is the wire "type" reported to clients.
type ErrorKind string

const (
	KindMissingAttribute ErrorKind = "MISSING_ATTRIBUTE"
	KindBadRequest       ErrorKind = "BAD_REQUEST"
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindUnavailable      ErrorKind = "UNAVAILABLE"
	KindAuthentication   ErrorKind = "AUTHENTICATION_ERROR"
	KindInternal         ErrorKind = "INTERNAL_ERROR"
	KindUnclassified     ErrorKind = "UNKNOWN_ERROR"
)

type kindMeta struct {
	status int
	level  slog.Level
}

// kindTable is the static metadata for every variant.
var kindTable = map[ErrorKind]kindMeta{
	KindMissingAttribute: {http.StatusBadRequest, slog.LevelWarn},
	KindBadRequest:       {http.StatusBadRequest, slog.LevelWarn},
	KindNotFound:         {http.StatusNotFound, slog.LevelInfo},
	KindUnavailable:      {http.StatusServiceUnavailable, slog.LevelWarn},
	KindAuthentication:   {http.StatusForbidden, slog.LevelWarn},
	KindInternal:         {http.StatusInternalServerError, slog.LevelError},
	KindUnclassified:     {http.StatusInternalServerError, slog.LevelError},
}

// HTTPStatus returns the status code equivalent of the kind.
// Unknown kinds map to 500.
func (k ErrorKind) HTTPStatus() int {
	if m, ok := kindTable[k]; ok {
		return m.status
	}
	return http.StatusInternalServerError
}

// Level returns the log severity of the kind.
func (k ErrorKind) Level() slog.Level {
	if m, ok := kindTable[k]; ok {
		return m.level
	}
	return slog.LevelError
}

// IsClientError reports whether the kind is caused by the caller (4xx).
func (k ErrorKind) IsClientError() bool {
	s := k.HTTPStatus()
	return s >= 400 && s < 500
}

// Error is the tagged error value used across the service.
type Error struct {
	Kind ErrorKind
	Msg  string
	Time time.Time
	Err  error
}

// now is replaced in tests.
var now = time.Now

func newError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Time: now().UTC(), Err: cause}
}

// Error implements the error interface as "TYPE: msg".
func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Msg
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code for the error's kind.
func (e *Error) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// Level returns the log level for the error's kind.
func (e *Error) Level() slog.Level {
	return e.Kind.Level()
}

// Describe returns the client facing representation {type, time, msg}.
func (e *Error) Describe() map[string]string {
	return map[string]string{
		"type": string(e.Kind),
		"time": e.Time.Format(time.RFC3339),
		"msg":  e.Msg,
	}
}

func MissingAttribute(format string, args ...any) *Error {
	return newError(KindMissingAttribute, fmt.Sprintf(format, args...), nil)
}

func BadRequest(format string, args ...any) *Error {
	return newError(KindBadRequest, fmt.Sprintf(format, args...), nil)
}

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, fmt.Sprintf(format, args...), nil)
}

func Unavailable(format string, args ...any) *Error {
	return newError(KindUnavailable, fmt.Sprintf(format, args...), nil)
}

func AuthenticationFailure(msg string, cause error) *Error {
	return newError(KindAuthentication, msg, cause)
}

func Internal(msg string, cause error) *Error {
	return newError(KindInternal, msg, cause)
}

// Unclassified wraps an unexpected error. The message never includes the
// cause text so internals are not leaked to clients.
func Unclassified(cause error) *Error {
	return newError(KindUnclassified, "Oops, ... Something went wrong!", cause)
}

// KindOf returns the kind of the outermost *Error in err's chain.
// nil yields "" and errors outside the taxonomy yield KindUnclassified.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}

// HasKind reports whether any *Error in err's chain has the given kind.
func HasKind(err error, kind ErrorKind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// AsError converts any error into the taxonomy. *Error values pass through.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unclassified(err)
}
