package payroll

import (
	"timeclock/internal/middleware"
	"timeclock/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(user.RoleAdmin))
	{
		generate := payroll.Group("")
		if rdb != nil {
			generate.Use(middleware.Idempotency(rdb))
		}
		generate.POST("/payslips/generate", h.Generate)

		payroll.GET("/report", h.Report)
		payroll.GET("/report/export", h.ExportReport)
		payroll.GET("/users/:id/breakdown", h.Breakdown)
	}
}
