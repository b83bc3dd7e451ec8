package salarystructure

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	structures := r.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.GET("", handler.GetAll)
		structures.GET("/:id", handler.GetById)
		structures.POST("", handler.Create)
		structures.POST("/:id/approve", handler.Approve)
		structures.POST("/:id/retire", handler.Retire)
	}
}
