package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/degen-journal/internal/platform/logger"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
	w := httptest.NewRecorder()
	RespondWithJSON(w, r, http.StatusCreated, map[string]int{"xp": 250})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"xp":250}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), TraceIDKey, "abc123"))
	w := httptest.NewRecorder()
	RespondWithError(w, r, http.StatusNotFound, "Trade not found")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Trade not found", body.Error)
	assert.Equal(t, "abc123", body.TraceID)
}

func TestRespondWithErrorAndLog_RedactsLogs(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger(t)
	r := httptest.NewRequest(http.MethodPost, "/api/trades", nil)
	r = r.WithContext(logger.WithLogger(r.Context(), log))
	w := httptest.NewRecorder()

	err := errors.New("connect postgres://journal:hunter22@db/journal failed")
	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter22")
	assert.NotContains(t, buf.String(), "hunter22")
	assert.Contains(t, buf.String(), "API error response")
}
