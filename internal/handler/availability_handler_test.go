package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/carebridge-api/internal/middleware"
	"github.com/carebridge/carebridge-api/internal/models"
	"github.com/carebridge/carebridge-api/internal/service"
	"github.com/carebridge/carebridge-api/pkg/config"
)

type fakeAvailabilityRepo struct {
	slots   []models.AvailabilitySlot
	deleted []string
}

func (f *fakeAvailabilityRepo) ListByWorker(context.Context, string) ([]models.AvailabilitySlot, error) {
	return f.slots, nil
}

func (f *fakeAvailabilityRepo) ListByWorkerDate(_ context.Context, _, date string) ([]models.AvailabilitySlot, error) {
	matched := []models.AvailabilitySlot{}
	for _, slot := range f.slots {
		if slot.Date == date {
			matched = append(matched, slot)
		}
	}
	return matched, nil
}

func (f *fakeAvailabilityRepo) Insert(_ context.Context, slot *models.AvailabilitySlot) error {
	f.slots = append(f.slots, *slot)
	return nil
}

func (f *fakeAvailabilityRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAvailabilityRepo) DistinctDates(context.Context, string) ([]string, error) {
	seen := map[string]struct{}{}
	dates := []string{}
	for _, slot := range f.slots {
		if _, ok := seen[slot.Date]; !ok {
			seen[slot.Date] = struct{}{}
			dates = append(dates, slot.Date)
		}
	}
	return dates, nil
}

func newAvailabilityHandler(repo *fakeAvailabilityRepo) *AvailabilityHandler {
	svc := service.NewAvailabilityService(repo, config.AvailabilityConfig{DefaultStartHour: 9, DefaultEndHour: 17}, nil)
	return NewAvailabilityHandler(svc)
}

func TestSelectDayDefaultRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAvailabilityHandler(&fakeAvailabilityRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/availability/2025-04-08", nil)
	c.Params = gin.Params{{Key: "date", Value: "2025-04-08"}}
	c.Set(middleware.ContextUserKey, testClaims())

	handler.SelectDay(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data models.DaySelection `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, models.TimeRange{Start: 9, End: 17}, envelope.Data.EditingRange)
	assert.Empty(t, envelope.Data.Slots)
}

func TestAddSlotRejectsQuarterHours(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAvailabilityHandler(&fakeAvailabilityRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/availability/2025-04-08/slots",
		strings.NewReader(`{"start_hour":9.25,"end_hour":11}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "date", Value: "2025-04-08"}}
	c.Set(middleware.ContextUserKey, testClaims())

	handler.AddSlot(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveSlotOutOfRangeReturnsNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeAvailabilityRepo{slots: []models.AvailabilitySlot{
		{ID: "a", WorkerID: "w1", Date: "2025-04-08", StartHour: 9, EndHour: 12},
	}}
	handler := newAvailabilityHandler(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/availability/2025-04-08/slots/7", nil)
	c.Params = gin.Params{{Key: "date", Value: "2025-04-08"}, {Key: "index", Value: "7"}}
	c.Set(middleware.ContextUserKey, testClaims())

	handler.RemoveSlot(c)
	// Calling the handler directly bypasses gin's engine, which normally
	// flushes a status set via c.Status at the end of the handler chain.
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.deleted)
}
