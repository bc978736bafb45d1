package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"timeclock/internal/payroll"
	payrollerrors "timeclock/internal/payroll/errors"
	"timeclock/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

type fakePayrollService struct {
	calculateWeeklyFn  func(ctx context.Context, userID string, weekStart time.Time) (payroll.BreakdownResponse, error)
	generatePayslipsFn func(ctx context.Context, weekStart time.Time) ([]payroll.PayslipResponse, error)
	reportFn           func(ctx context.Context, weekStart time.Time) ([]payroll.PayslipResponse, error)
}

func (f *fakePayrollService) CalculateWeekly(ctx context.Context, userID string, weekStart time.Time) (payroll.BreakdownResponse, error) {
	return f.calculateWeeklyFn(ctx, userID, weekStart)
}

func (f *fakePayrollService) GeneratePayslips(ctx context.Context, weekStart time.Time) ([]payroll.PayslipResponse, error) {
	return f.generatePayslipsFn(ctx, weekStart)
}

func (f *fakePayrollService) Report(ctx context.Context, weekStart time.Time) ([]payroll.PayslipResponse, error) {
	return f.reportFn(ctx, weekStart)
}

func samplePayslipResponse() payroll.PayslipResponse {
	return payroll.PayslipResponse{
		ID:         uuid.New().String(),
		UserID:     uuid.New().String(),
		Username:   "alice",
		Department: "Kitchen",
		WeekStart:  "2026-08-24",
		WeekEnd:    "2026-08-30",
		BreakdownResponse: payroll.BreakdownResponse{
			TotalHours:  decimal.NewFromInt(8),
			BaseSalary:  decimal.NewFromInt(200),
			TotalSalary: decimal.NewFromInt(200),
		},
	}
}

func TestPayrollHandler_Generate(t *testing.T) {
	svc := &fakePayrollService{
		generatePayslipsFn: func(ctx context.Context, weekStart time.Time) ([]payroll.PayslipResponse, error) {
			assert.Equal(t, "2026-08-24", weekStart.Format("2006-01-02"))
			return []payroll.PayslipResponse{samplePayslipResponse()}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"week_start":"2026-08-24"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll/payslips/generate", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Generate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPayrollHandler_Generate_InvalidWeekStart(t *testing.T) {
	svc := &fakePayrollService{}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"week_start":"24-08-2026"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll/payslips/generate", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
}

func TestPayrollHandler_Report(t *testing.T) {
	svc := &fakePayrollService{
		reportFn: func(ctx context.Context, weekStart time.Time) ([]payroll.PayslipResponse, error) {
			return []payroll.PayslipResponse{samplePayslipResponse()}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll/report?week_start=2026-08-24", nil)

	h.Report(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var rows []payroll.PayslipResponse
	assert.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].Username)
}

func TestPayrollHandler_Report_MissingWeekStart(t *testing.T) {
	svc := &fakePayrollService{}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll/report", nil)

	h.Report(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayrollHandler_Breakdown_UserNotFound(t *testing.T) {
	svc := &fakePayrollService{
		calculateWeeklyFn: func(ctx context.Context, userID string, weekStart time.Time) (payroll.BreakdownResponse, error) {
			return payroll.BreakdownResponse{}, payrollerrors.ErrUserNotFound
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll/users/abc/breakdown?week_start=2026-08-24", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Breakdown(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
}

func TestPayrollHandler_ExportReport_CSV(t *testing.T) {
	svc := &fakePayrollService{
		reportFn: func(ctx context.Context, weekStart time.Time) ([]payroll.PayslipResponse, error) {
			return []payroll.PayslipResponse{samplePayslipResponse()}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll/report/export?week_start=2026-08-24&format=csv", nil)

	h.ExportReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payroll_report_2026-08-24.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t,
		"Employee,Department,Total Hours,Overtime Hours,Undertime Hours,Base Salary,Overtime Pay,Undertime Deduction,Staff House Deduction,Total Salary,Week Start,Week End",
		strings.TrimSpace(lines[0]),
	)
	assert.Contains(t, lines[1], "alice")
	assert.Contains(t, lines[1], "Kitchen")
}

func TestPayrollHandler_ExportReport_UnknownFormat(t *testing.T) {
	svc := &fakePayrollService{
		reportFn: func(ctx context.Context, weekStart time.Time) ([]payroll.PayslipResponse, error) {
			return nil, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll/report/export?week_start=2026-08-24&format=pdf", nil)

	h.ExportReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
