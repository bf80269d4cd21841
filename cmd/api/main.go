package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workzen/hrms-backend-go/internal/config"
	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	appHTTP "github.com/workzen/hrms-backend-go/internal/handler/http"
	"github.com/workzen/hrms-backend-go/internal/pkg/clock"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
	"github.com/workzen/hrms-backend-go/internal/pkg/jwt"
	"github.com/workzen/hrms-backend-go/internal/repository/memory"
	"github.com/workzen/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workzen/hrms-backend-go/internal/service/attendance"
	leaveService "github.com/workzen/hrms-backend-go/internal/service/leave"
	payrollService "github.com/workzen/hrms-backend-go/internal/service/payroll"
	reportService "github.com/workzen/hrms-backend-go/internal/service/report"
)

const (
	accessTokenTTL  = time.Hour
	shutdownTimeout = 15 * time.Second
)

type stores struct {
	tx         database.Transactor
	attendance attendance.AttendanceRepository
	leave      leave.LeaveRequestRepository
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open record store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer st.close()

	clk := clock.NewSystemClock(cfg.App.Timezone)

	reportSvc := reportService.NewReportService(st.attendance, st.leave)
	attendanceSvc := attendanceService.NewAttendanceService(st.attendance, clk)
	leaveSvc := leaveService.NewLeaveService(st.tx, st.leave, st.attendance, clk)
	payrollSvc := payrollService.NewPayrollService(reportSvc)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, accessTokenTTL)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		logger,
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc, reportSvc, clk),
		appHTTP.NewLeaveHandler(leaveSvc, reportSvc, clk),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewDashboardHandler(reportSvc, clk),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Database.Driver, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.Database.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		slog.Warn("Using in-memory record store, data is lost on restart")
		return stores{
			tx:         memory.NewTransactor(store),
			attendance: memory.NewAttendanceRepository(store),
			leave:      memory.NewLeaveRequestRepository(store),
			close:      func() {},
		}, nil

	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return stores{}, fmt.Errorf("connect database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return stores{}, fmt.Errorf("migrate database: %w", err)
		}
		return stores{
			tx:         postgresql.NewTransactor(db),
			attendance: postgresql.NewAttendanceRepository(db),
			leave:      postgresql.NewLeaveRequestRepository(db),
			close:      db.Close,
		}, nil

	default:
		return stores{}, fmt.Errorf("unsupported store driver %q", cfg.Database.Driver)
	}
}
