package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
)

// Kind classifies a failed backend call.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindUnauthorized
	KindValidation
	KindNotFound
	KindServer
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// Error is returned by every Client method on failure.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string // backend-reported message, verbatim
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

// Message returns the backend-reported message of err, or fallback.
func Message(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && strings.TrimSpace(ae.Message) != "" {
		return ae.Message
	}
	return fallback
}

// ErrorText returns the backend message, then the error text, then fallback.
func ErrorText(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var ae *Error
	if errors.As(err, &ae) {
		if strings.TrimSpace(ae.Message) != "" {
			return ae.Message
		}
		if ae.Err != nil && ae.Err.Error() != "" {
			return ae.Err.Error()
		}
		return fallback
	}
	if s := err.Error(); strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// HTTPStatus maps an API error to the status a view should answer with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		var ae *Error
		if errors.As(err, &ae) && ae.Status >= 400 && ae.Status < 500 {
			return ae.Status
		}
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

// extractMessage pulls "message" (string or list) or "error" out of an error body.
func extractMessage(body []byte) string {
	var payload map[string]any
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch m := payload["message"].(type) {
	case string:
		return m
	case []any:
		parts := make([]string, 0, len(m))
		for _, p := range m {
			if s, ok := p.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	}
	if s, ok := payload["error"].(string); ok {
		return s
	}
	return ""
}
