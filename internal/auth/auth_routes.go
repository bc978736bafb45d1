package auth

import (
	"timeclock/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	group := r.Group("/auth")
	{
		group.POST("/login", middleware.RateLimitByIP(5, 10), h.Login)
		group.POST("/refresh", h.Refresh)
		group.GET("/me", middleware.AuthMiddleware(), h.GetMe)
	}
}
