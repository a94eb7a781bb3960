package errors

import (
	"github.com/stretchr/testify/assert"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotFoundAndNotAllowed(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	w := httptest.NewRecorder()
	NotFound(log)(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Requested resource not found")

	w = httptest.NewRecorder()
	NotAllowed(log)(w, httptest.NewRequest(http.MethodDelete, "/api/verify-code", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
