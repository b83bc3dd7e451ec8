package attendance

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	summaries := r.Group("/attendance-summaries")
	summaries.Use(middleware.AuthMiddleware())
	{
		summaries.GET("", handler.GetAll)
		summaries.PUT("", handler.Upsert)
	}
}
