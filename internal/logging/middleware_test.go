package logging

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_LogsCompletionWithRequestID(t *testing.T) {
	log, buf := newTestLogger(t)

	var seen Logger
	h := middleware.RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context(), nil)
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reviews", nil))

	require.NotNil(t, seen, "handler must see a request-scoped logger")
	out := buf.String()
	assert.Contains(t, out, "msg=\"request completed\"")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "path=/reviews")
	assert.Contains(t, out, "request_id=")
	assert.True(t, strings.Contains(out, "level=WARN"), "4xx must log at warn:\n%s", out)
}

func TestRequestLogger_DefaultStatusIsOK(t *testing.T) {
	log, buf := newTestLogger(t)

	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Contains(t, buf.String(), "status=200")
	assert.Contains(t, buf.String(), "level=INFO")
}

func TestFromContext_Fallback(t *testing.T) {
	fallback := Nop()
	got := FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context(), fallback)
	assert.Same(t, fallback, got)
}
