package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/carebridge-api/internal/middleware"
	"github.com/carebridge/carebridge-api/internal/models"
	"github.com/carebridge/carebridge-api/internal/service"
)

type fakeShiftRepo struct {
	shifts   []models.Shift
	byID     map[string]*models.Shift
	affected int64
}

func (f *fakeShiftRepo) List(context.Context, models.ShiftFilter) ([]models.Shift, error) {
	return f.shifts, nil
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id string) (*models.Shift, error) {
	if shift, ok := f.byID[id]; ok {
		return shift, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeShiftRepo) Create(_ context.Context, shift *models.Shift) error {
	f.shifts = append(f.shifts, *shift)
	return nil
}

func (f *fakeShiftRepo) UpdateStatusVersioned(context.Context, string, models.ShiftStatus, models.ShiftStatus, int, *string) (int64, error) {
	return f.affected, nil
}

func testClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "w1", Role: models.RoleCareWorker, FullName: "Jordan Lee"}
}

func newShiftHandler(repo *fakeShiftRepo) *ShiftHandler {
	cache := service.NewCacheService(nil, nil, 0, nil, false)
	shifts := service.NewShiftService(repo, cache, nil, nil)
	views := service.NewShiftViewService(shifts, cache, nil)
	return NewShiftHandler(shifts, views)
}

func TestShiftViewRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newShiftHandler(&fakeShiftRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/shifts/view", nil)

	handler.View(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestShiftViewSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newShiftHandler(&fakeShiftRepo{shifts: []models.Shift{
		{ID: "s1", ClientName: "Sarah M.", Date: "2025-04-08", StartTime: "9:00", EndTime: "17:00", Status: models.ShiftScheduled},
		{ID: "s2", ClientName: "Tom R.", Date: "2025-04-09", StartTime: "10:00", EndTime: "14:00", Status: models.ShiftAvailable},
	}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/shifts/view?tab=upcoming", nil)
	c.Set(middleware.ContextUserKey, testClaims())

	handler.View(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data struct {
			Tab    string `json:"tab"`
			Shifts []struct {
				ID string `json:"id"`
			} `json:"shifts"`
			Counts struct {
				Upcoming  int `json:"upcoming"`
				Available int `json:"available"`
			} `json:"counts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "upcoming", envelope.Data.Tab)
	require.Len(t, envelope.Data.Shifts, 1)
	assert.Equal(t, "s1", envelope.Data.Shifts[0].ID)
	assert.Equal(t, 1, envelope.Data.Counts.Available)
}

func TestShiftViewRejectsUnknownTab(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newShiftHandler(&fakeShiftRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/shifts/view?tab=archived", nil)
	c.Set(middleware.ContextUserKey, testClaims())

	handler.View(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShiftAcceptConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	open := &models.Shift{ID: "s1", Status: models.ShiftAvailable, Version: 1}
	handler := newShiftHandler(&fakeShiftRepo{
		byID:     map[string]*models.Shift{"s1": open},
		affected: 0,
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/shifts/s1/accept", nil)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}
	c.Set(middleware.ContextUserKey, testClaims())

	handler.Accept(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
