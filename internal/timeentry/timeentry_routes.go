package timeentry

import (
	"timeclock/internal/middleware"
	"timeclock/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	entries := r.Group("/time-entries")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.POST("/clock-in", h.ClockIn)
		entries.POST("/clock-out", h.ClockOut)
		entries.GET("/today", h.Today)

		admin := entries.Group("")
		admin.Use(middleware.RoleMiddleware(user.RoleAdmin))
		{
			admin.GET("/overtime-requests", h.ListOvertimeRequests)
			admin.POST("/overtime-requests/:id/approve", h.ApproveOvertime)
		}
	}
}
