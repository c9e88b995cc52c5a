// Package netx holds helpers shared by the outbound JSON-over-HTTP clients.
package netx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxBodySize caps how much of a response body is decoded.
const MaxBodySize = 4 << 20

// ErrMalformedBody reports a body that is not the expected JSON document.
var ErrMalformedBody = errors.New("malformed response body")

// StatusError is returned when the peer answers with an unexpected status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// ErrorBody reads a short excerpt of r for error messages.
func ErrorBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}

// DecodeJSON decodes one JSON document from r into v. Trailing data and
// oversized bodies are rejected.
func DecodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(io.LimitReader(r, MaxBodySize))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrMalformedBody)
	}
	return nil
}

// CheckStatus returns a *StatusError unless resp has one of want.
func CheckStatus(resp *http.Response, want ...int) error {
	for _, code := range want {
		if resp.StatusCode == code {
			return nil
		}
	}
	return &StatusError{Code: resp.StatusCode, Body: ErrorBody(resp.Body)}
}
