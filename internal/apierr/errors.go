package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies a failure returned by the client
type Kind string

const (
	KindTransport       Kind = "transport"
	KindAuthentication  Kind = "authentication"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindInvalidArgument Kind = "invalid_argument"
	KindAPI             Kind = "api_error"
)

// Sentinels for errors.Is. A sentinel matches any *Error of the same Kind.
var (
	ErrTransport       = &Error{Kind: KindTransport}
	ErrAuthentication  = &Error{Kind: KindAuthentication}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrAPI             = &Error{Kind: KindAPI}
)

// AuthSentinelMessage is what SalesDrive puts in "message" when the key is rejected
// on an otherwise successful HTTP response.
const AuthSentinelMessage = "api key is invalid"

// Error is the single error type surfaced by services and the transport
type Error struct {
	Kind       Kind                `json:"kind"`
	Message    string              `json:"message"`
	StatusCode int                 `json:"status_code,omitempty"`
	Fields     map[string][]string `json:"fields,omitempty"`
	Err        error               `json:"-"`
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("salesdrive: ")
	b.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
		}
		b.WriteString(" [")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString("]")
	}
	if e.Err != nil && e.Message == "" {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by Kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	return t.Message == "" && t.StatusCode == 0 && t.Err == nil && t.Kind == e.Kind
}

// New builds an *Error of the given kind
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Authentication(message string, status int) *Error {
	return &Error{Kind: KindAuthentication, Message: message, StatusCode: status}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func InvalidArgument(format string, args ...any) *Error {
	return New(KindInvalidArgument, format, args...)
}

// Wrap attaches a kind to an underlying error
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// CheckAuthMessage reports the key-rejected sentinel found in a 2xx body as an
// authentication error. Any other message yields nil.
func CheckAuthMessage(message string) error {
	if message == AuthSentinelMessage {
		return Authentication(message, http.StatusUnauthorized)
	}
	return nil
}

// KindOf returns the Kind of err, or "" when err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
