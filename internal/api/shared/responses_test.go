package shared

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)

	assert.Len(t, traceID, 2*traceIDLength)
	assert.Empty(t, GetTraceID(context.Background()))

	// Two requests never share a trace ID
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(context.Background())))
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Task not found")
	assert.Contains(t, rec.Body.String(), GetTraceID(req.Context()))
}

func TestRespondWithErrorAndLogHidesInternalError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()

	internal := errors.New("pq: password authentication failed for user admin")
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred", internal)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
	assert.NotContains(t, rec.Body.String(), "password authentication")
}

func TestDecodeJSONLimitsBody(t *testing.T) {
	var v struct {
		Title string `json:"title"`
	}

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"Water the plants"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "Water the plants", v.Title)

	huge := `{"title":"` + strings.Repeat("a", maxRequestBody) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(huge))
	assert.Error(t, DecodeJSON(req, &v))
}
