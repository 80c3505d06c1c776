package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vet-clinic/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Options{Level: logger.Debug, Format: logger.FormatJSON})

	h := chimw.RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/x", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/pets/x", line["path"])
	assert.EqualValues(t, 404, line["status"])
	assert.NotEmpty(t, line["request_id"])
}

func TestRecover_Returns500(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Options{Level: logger.Debug, Format: logger.FormatJSON})

	h := Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestRequestID_EchoesHeader(t *testing.T) {
	h := chimw.RequestID(RequestID(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get(chimw.RequestIDHeader))
}
