package app

import (
	"database/sql"

	"timeclock/internal/auth"
	"timeclock/internal/messaging/kafka"
	"timeclock/internal/middleware"
	"timeclock/internal/payroll"
	"timeclock/internal/timeentry"
	"timeclock/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	policy payroll.Policy,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	entryRepo := timeentry.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	userService := user.NewService(db, userRepo)
	authService := auth.NewService(userRepo)
	entryService := timeentry.NewService(db, entryRepo)
	payrollService := payroll.NewServiceWithInfra(db, payrollRepo, policy, outboxRepo, rdb)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	authHandler := auth.NewHandler(authService)
	entryHandler := timeentry.NewHandler(entryService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler)
		timeentry.RegisterRoutes(api, entryHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
	}

	return nil
}
