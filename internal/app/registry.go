package app

import (
	"database/sql"

	"leavehub/internal/auth"
	"leavehub/internal/authz"
	"leavehub/internal/balance"
	"leavehub/internal/dashboard"
	"leavehub/internal/employee"
	"leavehub/internal/holiday"
	"leavehub/internal/leave"
	"leavehub/internal/leavetype"
	"leavehub/internal/messaging/kafka"
	"leavehub/internal/middleware"
	"leavehub/internal/shared/counter"

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
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Authorization ---
	authorizer, err := authz.NewAuthorizer()
	if err != nil {
		return err
	}

	// --- Services ---
	allocator := balance.NewAllocator(balanceRepo, leaveTypeRepo)
	loginLimiter := auth.NewRedisLoginLimiter(rdb)
	authService := auth.NewService(employeeRepo, loginLimiter)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, allocator, balanceRepo, outboxRepo, rdb)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	holidayService := holiday.NewService(holidayRepo)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, leaveTypeRepo, holidayRepo, balanceRepo, outboxRepo)
	dashboardService := dashboard.NewService(employeeRepo, leaveRepo, holidayRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// --- Global middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.Idempotency(rdb))

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, authorizer)
		leavetype.RegisterRoutes(api, leaveTypeHandler, authorizer)
		holiday.RegisterRoutes(api, holidayHandler, authorizer)
		leave.RegisterRoutes(api, leaveHandler, authorizer)
		dashboard.RegisterRoutes(api, dashboardHandler, authorizer)
	}

	return nil
}
