package payroll

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	payrollerrors "timeclock/internal/payroll/errors"
	"timeclock/internal/shared/apperror"
	"timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseWeekStart(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidWeekStart
	}
	return t, nil
}

func (h *Handler) Generate(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req GeneratePayslipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	weekStart, err := parseWeekStart(req.WeekStart)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GeneratePayslips(c.Request.Context(), weekStart)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Report(c *gin.Context) {
	weekStart, err := parseWeekStart(c.Query("week_start"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Report(c.Request.Context(), weekStart)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ExportReport(c *gin.Context) {
	weekStart, err := parseWeekStart(c.Query("week_start"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	rows, err := h.service.Report(c.Request.Context(), weekStart)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	week := weekStart.Format("2006-01-02")
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll_report_%s.csv"`, week))
		c.Status(http.StatusOK)
		if err := writeReportCSV(c.Writer, rows); err != nil {
			_ = c.Error(err)
		}
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll_report_%s.xlsx"`, week))
		c.Status(http.StatusOK)
		if err := writeReportXLSX(c.Writer, rows); err != nil {
			_ = c.Error(err)
		}
	default:
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "format must be csv or xlsx", nil)
	}
}

func (h *Handler) Breakdown(c *gin.Context) {
	weekStart, err := parseWeekStart(c.Query("week_start"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.CalculateWeekly(c.Request.Context(), c.Param("id"), weekStart)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
