package deduction

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	deductions := r.Group("/deductions")
	deductions.Use(middleware.AuthMiddleware())
	{
		deductions.GET("", handler.GetAll)
		deductions.GET("/:id", handler.GetById)
		deductions.GET("/employee/:employeeID", handler.GetByEmployee)
		deductions.POST("", handler.Create)
		deductions.POST("/:id/approve", handler.Approve)
		deductions.POST("/:id/cancel", handler.Cancel)
	}
}
