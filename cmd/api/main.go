package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	appHTTP "github.com/cmlabs-hris/payroll-engine-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine-go/internal/repository/postgresql"
	deductionService "github.com/cmlabs-hris/payroll-engine-go/internal/service/deduction"
	leaveService "github.com/cmlabs-hris/payroll-engine-go/internal/service/leave"
	overtimeService "github.com/cmlabs-hris/payroll-engine-go/internal/service/overtime"
	payrollService "github.com/cmlabs-hris/payroll-engine-go/internal/service/payroll"
	timesheetService "github.com/cmlabs-hris/payroll-engine-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	periodRepo := postgresql.NewPeriodRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	benefitRepo := postgresql.NewBenefitRepository(db)
	deductionRuleRepo := postgresql.NewDeductionRuleRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	txBoundary := postgresql.NewTransactionBoundary(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	classifier := employee.NewClassifier(cfg.Payroll.RankAndFileDepartment, cfg.Payroll.RankAndFileKeywords)

	timesheetEngine, err := timesheetService.NewEngine(cfg.Payroll, attendanceRepo)
	if err != nil {
		log.Fatal("Failed to initialize timesheet engine:", err)
	}
	overtimeSvc, err := overtimeService.NewService(cfg.Payroll, overtimeRepo, employeeRepo, leaveRepo, classifier)
	if err != nil {
		log.Fatal("Failed to initialize overtime service:", err)
	}
	leaveLedger := leaveService.NewLedger(cfg.Payroll, leaveRepo)
	deductionResolver := deductionService.NewResolver(deductionRuleRepo, cfg.Payroll.MoneyScale)
	aggregator := payrollService.NewAggregator(
		cfg.Payroll,
		payrollRepo,
		txBoundary,
		employeeRepo,
		periodRepo,
		overtimeRepo,
		leaveRepo,
		benefitRepo,
		timesheetEngine,
		deductionResolver,
		classifier,
	)
	verifier := payrollService.NewVerifier(cfg.Verify, aggregator)

	attendanceHandler := appHTTP.NewAttendanceHandler(timesheetEngine)
	overtimeHandler := appHTTP.NewOvertimeHandler(overtimeSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveLedger)
	deductionHandler := appHTTP.NewDeductionHandler(deductionResolver)
	payrollHandler := appHTTP.NewPayrollHandler(aggregator, verifier)
	periodHandler := appHTTP.NewPeriodHandler(periodRepo)

	scheduler := cron.NewScheduler()
	deductionJobs := cron.NewDeductionJobs(deductionResolver)
	scheduler.AddJob("deduction-table-audit", 24*time.Hour, deductionJobs.AuditTables)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		overtimeHandler,
		leaveHandler,
		deductionHandler,
		payrollHandler,
		periodHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
