package app

import (
	"os"

	"leavehub/internal/balance"
	"leavehub/internal/employee"
	"leavehub/internal/holiday"
	"leavehub/internal/leave"
	"leavehub/internal/leavetype"
	"leavehub/internal/messaging/kafka"
	"leavehub/internal/shared/connection"
	"leavehub/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&leavetype.LeaveType{},
		&holiday.PublicHoliday{},
		&balance.LeaveBalance{},
		&leave.LeaveRequest{},
		&kafka.OutboxRecord{},
		&counter.Counter{},
	); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, redisClient)
}
