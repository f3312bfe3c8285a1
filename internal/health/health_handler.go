package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const checkTimeout = 2 * time.Second

// Check pings one dependency. Registered by name with the handler.
type Check func(ctx context.Context) error

type Handler struct {
	checks map[string]Check
	logger *zap.Logger
}

func NewHandler(checks map[string]Check, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("health.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health.handler")
	}
	return &Handler{checks: checks, logger: l}
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "HRMS API is running"})
}

// Health reports healthy when every registered dependency answers. With no
// checks registered, as with the memory store, it is always healthy.
func (h *Handler) Health(c *gin.Context) {
	if len(h.checks) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	deps := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			healthy = false
			deps[name] = "down"
			h.logger.Warn("dependency unhealthy", zap.String("dependency", name), zap.Error(err))
			continue
		}
		deps[name] = "up"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "dependencies": deps})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "dependencies": deps})
}

func RegisterRoutes(r gin.IRoutes, h *Handler) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
}
