package http

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/handler/http/middleware"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/jwt"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Company    CompanyHandler
	User       UserHandler
	Shift      ShiftHandler
	Leave      LeaveHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
	Holiday    HolidayHandler
}

// NewLogger returns the ECS-formatted JSON logger used for both request and application logs.
func NewLogger(env, level string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(level),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "mesaitak"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(logger *slog.Logger, frontendURL string, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// EventSource cannot send an Authorization header; the stream checks its own token.
		r.Get("/dashboard/live/stream", h.Dashboard.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/holidays", h.Holiday.List)

			r.Route("/companies", func(r chi.Router) {
				r.With(middleware.RequireManager).Get("/", h.Company.List)
				r.With(middleware.RequireManager).Get("/{id}", h.Company.GetByID)
				r.With(middleware.RequireManager).Get("/{id}/branches", h.Company.ListBranches)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCompanyManage))
					r.Post("/", h.Company.Create)
					r.Put("/{id}", h.Company.Update)
					r.Delete("/{id}", h.Company.Delete)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionBranchManage))
					r.Post("/{id}/branches", h.Company.CreateBranch)
					r.Put("/{id}/branches/{branchID}", h.Company.UpdateBranch)
					r.Delete("/{id}/branches/{branchID}", h.Company.DeleteBranch)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionUserView)).Get("/", h.User.List)
				r.With(middleware.RequirePermission(user.PermissionUserView)).Get("/{id}", h.User.Get)
				r.With(middleware.RequirePermission(user.PermissionUserManage)).Post("/", h.User.Create)
				r.With(middleware.RequirePermission(user.PermissionUserManage)).Put("/{id}", h.User.Update)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionShiftView))
				r.Get("/", h.Shift.List)
				r.Get("/week", h.Shift.WeekPlan)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftManage))
					r.Post("/", h.Shift.Create)
					r.Put("/{id}", h.Shift.Update)
					r.Delete("/{id}", h.Shift.Delete)
					r.Post("/week/copy", h.Shift.CopyWeek)
					r.Delete("/week", h.Shift.ClearWeek)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLeaveCreate))
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Create)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
					r.Delete("/{id}", h.Leave.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/", h.Attendance.ListDay)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceRecord))
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
					r.Post("/break/start", h.Attendance.StartBreak)
					r.Post("/break/end", h.Attendance.EndBreak)
				})
			})

			r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/reports/monthly", h.Report.MonthlyGrid)

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionDashboardView))
				r.Get("/live", h.Dashboard.Live)
				r.Get("/sse-token", h.Dashboard.GetSSEToken)
			})
		})
	})
	return r
}
