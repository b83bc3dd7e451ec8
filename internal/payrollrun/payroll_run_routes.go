package payrollrun

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	runs := r.Group("/payroll-runs")
	runs.Use(middleware.AuthMiddleware())
	{
		runs.GET("", handler.GetAll)
		runs.GET("/:id", handler.GetByID)
		runs.GET("/:id/report", handler.GetReport)
		// Starting a run and recomputing a payslip are guarded by the Redis
		// idempotency key so a client retry replays the stored response.
		runs.POST("", middleware.Idempotency(rdb), handler.Create)
		runs.POST("/:id/recompute", middleware.Idempotency(rdb), handler.Recompute)
	}
}
