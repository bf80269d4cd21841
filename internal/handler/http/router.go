package http

import (
	"io"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workzen/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workzen/hrms-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(
	cfg RouterConfig,
	logger *slog.Logger,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/daily", attendanceHandler.GetDaily)
				r.Get("/monthly", attendanceHandler.GetMonthly)
				r.Get("/summary", attendanceHandler.GetSummary)

				r.With(middleware.RequireRole(jwt.RoleAdmin, jwt.RoleHROfficer)).
					Get("/all", attendanceHandler.ListForDate)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Apply)
				r.Get("/my", leaveHandler.GetMy)
				r.Get("/summary", leaveHandler.GetSummary)

				// HR view
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(jwt.RoleAdmin, jwt.RoleHROfficer))
					r.Get("/user/{employeeID}", leaveHandler.GetForEmployee)
					r.Get("/history", leaveHandler.GetHistory)
				})

				// Approvers
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(jwt.RoleAdmin, jwt.RolePayrollOfficer))
					r.Get("/pending", leaveHandler.GetPending)
					r.Get("/unpaid-days", leaveHandler.GetUnpaidDays)
					r.Patch("/{id}/status", leaveHandler.Decide)
				})

				r.Get("/{id}", leaveHandler.GetByID)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.RequireRole(jwt.RoleAdmin, jwt.RoleHROfficer))
				r.Get("/attendance", dashboardHandler.GetAttendance)
				r.Get("/leaves", dashboardHandler.GetLeaves)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireRole(jwt.RoleAdmin, jwt.RolePayrollOfficer))
				r.Post("/preview", payrollHandler.Preview)
			})
		})
	})

	return r
}

// NewLogger builds the JSON logger shared by the request logger and the services.
func NewLogger(w io.Writer, env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workzen-hrms"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}
