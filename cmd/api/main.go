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

	"github.com/mesaitak/mesaitak-backend-go/internal/config"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/dashboard"
	appHTTP "github.com/mesaitak/mesaitak-backend-go/internal/handler/http"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/cron"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/jwt"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/sse"
	attendanceService "github.com/mesaitak/mesaitak-backend-go/internal/service/attendance"
	branchService "github.com/mesaitak/mesaitak-backend-go/internal/service/branch"
	companyService "github.com/mesaitak/mesaitak-backend-go/internal/service/company"
	dashboardService "github.com/mesaitak/mesaitak-backend-go/internal/service/dashboard"
	holidayService "github.com/mesaitak/mesaitak-backend-go/internal/service/holiday"
	leaveService "github.com/mesaitak/mesaitak-backend-go/internal/service/leave"
	reportService "github.com/mesaitak/mesaitak-backend-go/internal/service/report"
	shiftService "github.com/mesaitak/mesaitak-backend-go/internal/service/shift"
	userService "github.com/mesaitak/mesaitak-backend-go/internal/service/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()

	// Validate already checked both durations.
	accessTTL, _ := time.ParseDuration(cfg.JWT.AccessExpiration)
	sseTTL, _ := time.ParseDuration(cfg.JWT.SSEExpiration)

	repos, err := openRepositories(ctx, cfg, loc)
	if err != nil {
		return err
	}
	defer repos.close()

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, accessTTL, sseTTL)
	policy := dashboard.Policy{
		Absent:         dashboard.AbsentPolicy(cfg.Dashboard.AbsentPolicy),
		ExcludeOnLeave: cfg.Dashboard.ExcludeOnLeave,
	}

	companySvc := companyService.NewCompanyService(repos.company)
	branchSvc := branchService.NewBranchService(repos.branch, repos.company)
	userSvc := userService.NewUserService(repos.user, repos.company, repos.branch)
	shiftSvc := shiftService.NewShiftService(repos.shift, repos.user, loc)
	leaveSvc := leaveService.NewLeaveService(repos.leave, repos.user, loc)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.user, hub, loc)
	reportSvc := reportService.NewReportService(repos.user, repos.attendance, repos.leave, loc)
	dashboardSvc := dashboardService.NewDashboardService(repos.user, repos.shift, repos.attendance, repos.leave, hub, policy, loc)
	holidaySvc := holidayService.NewHolidayService(loc)

	router := appHTTP.NewRouter(logger, cfg.App.FrontendURL, JWTService, appHTTP.Handlers{
		Company:    appHTTP.NewCompanyHandler(companySvc, branchSvc),
		User:       appHTTP.NewUserHandler(userSvc),
		Shift:      appHTTP.NewShiftHandler(shiftSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc, JWTService),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewDayRollover(hub, loc).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "store", cfg.Store.Driver, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
