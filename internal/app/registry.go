package app

import (
	"go-hrms/internal/attendance"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/health"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Infra is everything the modules need from the outside world. Redis,
// Publisher and HealthChecks are optional.
type Infra struct {
	EmployeeRepo   employee.Repository
	AttendanceRepo attendance.Repository
	Redis          *redis.Client
	Publisher      kafka.Publisher
	HealthChecks   map[string]health.Check
	Logger         *zap.Logger
}

func NewRouter(cfg config.Config, infra Infra) *gin.Engine {
	logger := infra.Logger
	if logger == nil {
		logger = zap.L()
	}

	apperror.Init()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	router.NoRoute(func(c *gin.Context) {
		httpErr := apperror.ToHTTP(apperror.ErrNotFound)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
	})

	registerModules(router, cfg, infra, logger)
	return router
}

func registerModules(router *gin.Engine, cfg config.Config, infra Infra, logger *zap.Logger) {
	// --- Services ---
	employeeService := employee.NewService(infra.EmployeeRepo, infra.Redis, infra.Publisher, logger)
	attendanceService := attendance.NewService(infra.AttendanceRepo, employeeService, infra.Publisher, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	healthHandler := health.NewHandler(infra.HealthChecks, logger)

	// --- Routes Registration ---
	health.RegisterRoutes(router, healthHandler)

	api := router.Group(cfg.APIPrefix)
	api.Use(middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))
	{
		employee.RegisterRoutes(api, employeeHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
	}
}
