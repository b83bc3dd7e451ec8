package app

import (
	"database/sql"

	"go-payroll/internal/attendance"
	"go-payroll/internal/config"
	"go-payroll/internal/deduction"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payrollrun"
	"go-payroll/internal/payslip"
	"go-payroll/internal/salarystructure"
	"go-payroll/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg config.Config,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	deductionRepo := deduction.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payslipRepo := payslip.NewRepository(gormDB)
	runRepo := payrollrun.NewRepository(gormDB)
	structureRepo := salarystructure.NewRepository(gormDB)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo)
	deductionService := deduction.NewService(gormDB, deductionRepo, outboxRepo, cfg.Payroll.GraceWindowDays)
	employeeService := employee.NewService(employeeRepo)
	payslipService := payslip.NewService(payslipRepo)
	structureService := salarystructure.NewService(db, structureRepo)
	resolver := salarystructure.NewResolver(structureRepo)

	runService := payrollrun.NewService(
		gormDB,
		runRepo,
		employeeService,
		resolver,
		attendanceService,
		deductionRepo,
		payslipRepo,
		counterRepo,
		outboxRepo,
		logger,
		cfg.Payroll.WorkerPoolSize,
		payrollrun.RetryPolicy{
			Attempts:    cfg.Payroll.LockRetry.Attempts,
			BaseBackoff: cfg.Payroll.LockRetry.BaseBackoff,
		},
	)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	deductionHandler := deduction.NewHandler(deductionService)
	employeeHandler := employee.NewHandler(employeeService)
	payslipHandler := payslip.NewHandler(payslipService)
	runHandler := payrollrun.NewHandlerWithRedis(runService, rdb)
	structureHandler := salarystructure.NewHandler(structureService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		deduction.RegisterRoutes(api, deductionHandler)
		employee.RegisterRoutes(api, employeeHandler)
		payslip.RegisterRoutes(api, payslipHandler)
		payrollrun.RegisterRoutes(api, runHandler, rdb)
		salarystructure.RegisterRoutes(api, structureHandler)
	}

	return nil
}
