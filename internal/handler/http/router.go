package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/user"
	appMiddleware "github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	overtimeHandler OvertimeHandler,
	leaveHandler LeaveHandler,
	deductionHandler DeductionHandler,
	payrollHandler PayrollHandler,
	periodHandler PeriodHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(appMiddleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.With(appMiddleware.RequireCapability(user.CapabilityAttendanceRecord)).
					Post("/punches", attendanceHandler.RecordPunches)
				r.Get("/employees/{employeeID}", attendanceHandler.ListByEmployee)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.With(appMiddleware.RequireCapability(user.CapabilityOvertimeSubmit)).
					Post("/", overtimeHandler.Submit)
				r.Get("/{id}", overtimeHandler.Get)
				r.Get("/employees/{employeeID}", overtimeHandler.ListByEmployee)
				r.With(appMiddleware.RequireCapability(user.CapabilityOvertimeDecide)).
					Post("/{id}/approve", overtimeHandler.Approve)
				r.With(appMiddleware.RequireCapability(user.CapabilityOvertimeDecide)).
					Post("/{id}/reject", overtimeHandler.Reject)
				r.With(appMiddleware.RequireCapability(user.CapabilityOvertimeSubmit)).
					Post("/{id}/cancel", overtimeHandler.Cancel)
			})

			r.Route("/leave/balances", func(r chi.Router) {
				r.With(appMiddleware.RequireCapability(user.CapabilityLeaveViewOwn)).
					Get("/employees/{employeeID}", leaveHandler.ListBalances)
				r.With(appMiddleware.RequireCapability(user.CapabilityLeaveViewOwn)).
					Get("/employees/{employeeID}/types/{leaveTypeID}", leaveHandler.GetBalance)
				r.With(appMiddleware.RequireCapability(user.CapabilityLeaveManage)).
					Post("/deduct", leaveHandler.Deduct)
				r.With(appMiddleware.RequireCapability(user.CapabilityLeaveManage)).
					Post("/restore", leaveHandler.Restore)
				r.With(appMiddleware.RequireCapability(user.CapabilityLeaveManage)).
					Post("/sync", leaveHandler.Sync)
				r.With(appMiddleware.RequireCapability(user.CapabilityLeaveManage)).
					Post("/employees/{employeeID}/rollover", leaveHandler.Rollover)
			})

			r.Route("/deductions/rules", func(r chi.Router) {
				r.Use(appMiddleware.RequireCapability(user.CapabilityRulesManage))
				r.Post("/", deductionHandler.CreateRule)
				r.Get("/", deductionHandler.ListRules)
				r.Delete("/{id}", deductionHandler.DeleteRule)
				r.Get("/validate", deductionHandler.ValidateTables)
			})

			r.Route("/periods", func(r chi.Router) {
				r.Get("/{id}", periodHandler.Get)
				r.Get("/", periodHandler.List)
				r.With(appMiddleware.RequireCapability(user.CapabilityPeriodsManage)).
					Post("/", periodHandler.Create)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.With(appMiddleware.RequireCapability(user.CapabilityPayrollGenerate)).
					Post("/generate", payrollHandler.Generate)
				r.With(appMiddleware.RequireCapability(user.CapabilityPayrollViewAll)).
					Get("/periods/{periodID}", payrollHandler.ListByPeriod)
				r.With(appMiddleware.RequireCapability(user.CapabilityPayrollViewAll)).
					Get("/periods/{periodID}/employees/{employeeID}", payrollHandler.GetRecord)
				r.With(appMiddleware.RequireCapability(user.CapabilityPayrollVerify)).
					Get("/periods/{periodID}/verify", payrollHandler.Verify)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"Route not found"}}`))
	})

	return r
}
