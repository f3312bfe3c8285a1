package attendance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendance := r.Group("/attendance")
	{
		attendance.GET("", h.GetAll)
		attendance.GET("/:id", h.GetByID)
		attendance.GET("/employee/:employee_id", h.GetByEmployee)
		attendance.GET("/date/:date", h.GetByDate)
		attendance.POST("", h.Create)
		attendance.PUT("/:id", h.Update)
		attendance.DELETE("/:id", h.Delete)
	}
}
