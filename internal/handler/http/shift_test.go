package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// partialShiftService stops bulk operations after some progress.
type partialShiftService struct {
	shift.ShiftService
	result shift.BulkResult
	err    error
}

func (s partialShiftService) CopyWeek(ctx context.Context, req shift.CopyWeekRequest) (shift.BulkResult, error) {
	return s.result, s.err
}

func (s partialShiftService) ClearWeek(ctx context.Context, req shift.ClearWeekRequest) (shift.BulkResult, error) {
	return s.result, s.err
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestShiftHandler_CopyWeek_ErrorCarriesProgress(t *testing.T) {
	h := NewShiftHandler(partialShiftService{
		result: shift.BulkResult{Copied: 3, Skipped: 1},
		err:    errors.New("store unavailable"),
	})

	req := httptest.NewRequest(http.MethodPost, "/shifts/week/copy", strings.NewReader(`{"week":"2026-10-12"}`))
	rec := httptest.NewRecorder()
	h.CopyWeek(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "error envelope carries the partial result")
	assert.Equal(t, float64(3), data["copied"])
	assert.Equal(t, float64(1), data["skipped"])

	detail, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", detail["code"])
}

func TestShiftHandler_ClearWeek_ErrorCarriesProgress(t *testing.T) {
	h := NewShiftHandler(partialShiftService{
		result: shift.BulkResult{Deleted: 2},
		err:    errors.New("store unavailable"),
	})

	req := httptest.NewRequest(http.MethodDelete, "/shifts/week?date=2026-10-12", nil)
	rec := httptest.NewRecorder()
	h.ClearWeek(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["deleted"])
}

func TestShiftHandler_CopyWeek_ValidationErrorHasNoData(t *testing.T) {
	h := NewShiftHandler(partialShiftService{})

	req := httptest.NewRequest(http.MethodPost, "/shifts/week/copy", strings.NewReader(`{"week":"12.10.2026"}`))
	rec := httptest.NewRecorder()
	h.CopyWeek(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeEnvelope(t, rec)
	_, hasData := body["data"]
	assert.False(t, hasData)
}
