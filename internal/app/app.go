package app

import (
	"context"
	"fmt"

	"go-hrms/internal/attendance"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/health"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/shared/memstore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const connectRetries = 5

// BuildApp connects the configured backends and returns the router together
// with a cleanup func that releases them.
func BuildApp(cfg config.Config) (*gin.Engine, func(), error) {
	logger := zap.L().Named("app")
	infra := Infra{
		HealthChecks: map[string]health.Check{},
		Logger:       zap.L(),
	}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 1. Store
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := connection.ConnectGORMWithRetry(cfg.DB.Postgres(), cfg.DB.MaxRetries)
		if err != nil {
			return nil, func() {}, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, func() {}, err
		}
		closers = append(closers, func() { _ = sqlDB.Close() })

		// employees first: attendances references it
		if err := db.AutoMigrate(&employee.Employee{}, &attendance.Attendance{}); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("auto migrate: %w", err)
		}

		infra.EmployeeRepo = employee.NewRepository(db)
		infra.AttendanceRepo = attendance.NewRepository(db)
		infra.HealthChecks["postgres"] = sqlDB.PingContext
		logger.Info("store ready", zap.String("driver", config.StorePostgres))
	default:
		store := memstore.New()
		infra.EmployeeRepo = store.Employees()
		infra.AttendanceRepo = store.Attendance()
		logger.Info("store ready", zap.String("driver", config.StoreMemory))
	}

	// 2. Cache
	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		infra.Redis = rdb
		infra.HealthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		logger.Info("REDIS_ADDR not set, employee list cache disabled")
	}

	// 3. Events
	if cfg.KafkaBroker != "" {
		writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, func() { _ = writer.Close() })
		infra.Publisher = kafka.NewPublisher(writer)
	} else {
		logger.Info("KAFKA_BROKER not set, domain events disabled")
	}

	return NewRouter(cfg, infra), cleanup, nil
}
