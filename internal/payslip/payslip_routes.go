package payslip

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.GET("/:id", handler.GetByID)
		payslips.GET("/employee/:employeeId", handler.GetByEmployee)
	}
}
