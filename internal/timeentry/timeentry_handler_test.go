package timeentry_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"timeclock/internal/timeentry"
	entryerrors "timeclock/internal/timeentry/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeEntryService struct {
	clockInFn              func(ctx context.Context, userID string) (timeentry.TimeEntryResponse, error)
	clockOutFn             func(ctx context.Context, userID string, req timeentry.ClockOutRequest) (timeentry.TimeEntryResponse, error)
	todayFn                func(ctx context.Context, userID string) (timeentry.TimeEntryResponse, error)
	listOvertimeRequestsFn func(ctx context.Context) ([]timeentry.TimeEntryResponse, error)
	approveOvertimeFn      func(ctx context.Context, id, approverID string, approved bool) (timeentry.TimeEntryResponse, error)
	lockWeekFn             func(ctx context.Context, weekStart time.Time) (int64, error)
}

func (f *fakeEntryService) ClockIn(ctx context.Context, userID string) (timeentry.TimeEntryResponse, error) {
	return f.clockInFn(ctx, userID)
}

func (f *fakeEntryService) ClockOut(ctx context.Context, userID string, req timeentry.ClockOutRequest) (timeentry.TimeEntryResponse, error) {
	return f.clockOutFn(ctx, userID, req)
}

func (f *fakeEntryService) Today(ctx context.Context, userID string) (timeentry.TimeEntryResponse, error) {
	return f.todayFn(ctx, userID)
}

func (f *fakeEntryService) ListOvertimeRequests(ctx context.Context) ([]timeentry.TimeEntryResponse, error) {
	return f.listOvertimeRequestsFn(ctx)
}

func (f *fakeEntryService) ApproveOvertime(ctx context.Context, id, approverID string, approved bool) (timeentry.TimeEntryResponse, error) {
	return f.approveOvertimeFn(ctx, id, approverID, approved)
}

func (f *fakeEntryService) LockWeek(ctx context.Context, weekStart time.Time) (int64, error) {
	return f.lockWeekFn(ctx, weekStart)
}

func TestTimeEntryHandler_ClockIn(t *testing.T) {
	userID := uuid.New().String()
	svc := &fakeEntryService{
		clockInFn: func(ctx context.Context, id string) (timeentry.TimeEntryResponse, error) {
			assert.Equal(t, userID, id)
			return timeentry.TimeEntryResponse{ID: uuid.New().String(), UserID: id, EntryDate: "2026-08-26"}, nil
		},
	}

	h := timeentry.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/time-entries/clock-in", nil)
	c.Set("user_id", userID)

	h.ClockIn(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestTimeEntryHandler_ClockIn_Conflict(t *testing.T) {
	svc := &fakeEntryService{
		clockInFn: func(ctx context.Context, id string) (timeentry.TimeEntryResponse, error) {
			return timeentry.TimeEntryResponse{}, entryerrors.ErrAlreadyClockedIn
		},
	}

	h := timeentry.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/time-entries/clock-in", nil)
	c.Set("user_id", uuid.New().String())

	h.ClockIn(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
}

func TestTimeEntryHandler_ClockOut_WithOvertimeNote(t *testing.T) {
	svc := &fakeEntryService{
		clockOutFn: func(ctx context.Context, userID string, req timeentry.ClockOutRequest) (timeentry.TimeEntryResponse, error) {
			assert.NotNil(t, req.OvertimeNote)
			assert.Equal(t, "delivery arrived late", *req.OvertimeNote)
			return timeentry.TimeEntryResponse{ID: uuid.New().String(), OvertimeRequested: true}, nil
		},
	}

	h := timeentry.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/time-entries/clock-out",
		strings.NewReader(`{"overtime_note":"delivery arrived late"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", uuid.New().String())

	h.ClockOut(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeEntryHandler_ApproveOvertime(t *testing.T) {
	entryID := uuid.New().String()
	approverID := uuid.New().String()
	svc := &fakeEntryService{
		approveOvertimeFn: func(ctx context.Context, id, aid string, approved bool) (timeentry.TimeEntryResponse, error) {
			assert.Equal(t, entryID, id)
			assert.Equal(t, approverID, aid)
			assert.True(t, approved)
			return timeentry.TimeEntryResponse{ID: id, OvertimeRequested: true, OvertimeApproved: true}, nil
		},
	}

	h := timeentry.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/time-entries/overtime-requests/"+entryID+"/approve",
		strings.NewReader(`{"approved":true}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: entryID}}
	c.Set("user_id", approverID)

	h.ApproveOvertime(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeEntryHandler_ApproveOvertime_MissingApproved(t *testing.T) {
	svc := &fakeEntryService{}

	h := timeentry.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/time-entries/overtime-requests/x/approve",
		strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ApproveOvertime(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimeEntryHandler_Today_NotFound(t *testing.T) {
	svc := &fakeEntryService{
		todayFn: func(ctx context.Context, userID string) (timeentry.TimeEntryResponse, error) {
			return timeentry.TimeEntryResponse{}, entryerrors.ErrNoOpenEntry
		},
	}

	h := timeentry.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/time-entries/today", nil)
	c.Set("user_id", uuid.New().String())

	h.Today(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
