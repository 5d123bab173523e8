package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/watan-hr/fingerprint-attendance/internal/handler/http/middleware"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/jwt"
)

// Handlers bundles every route handler of the API.
type Handlers struct {
	Auth       AuthHandler
	Settings   SettingsHandler
	Attendance AttendanceHandler
	Employee   EmployeeHandler
	Holiday    HolidayHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
	Backup     BackupHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Get("/dashboard", h.Dashboard.GetDashboard)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Settings.Get)
				r.Put("/", h.Settings.Update)
			})

			r.Route("/device", func(r chi.Router) {
				r.Post("/sync", h.Attendance.Sync)
				r.Post("/clear", h.Attendance.ClearDevice)
				r.Get("/sync-runs", h.Attendance.ListSyncRuns)
			})

			r.Get("/attendance", h.Attendance.List)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Post("/", h.Employee.Create)
				r.Route("/{fingerID}", func(r chi.Router) {
					r.Get("/", h.Employee.Get)
					r.Put("/", h.Employee.Update)
					r.Delete("/", h.Employee.Delete)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Post("/", h.Holiday.Create)
				r.Delete("/{date}", h.Holiday.Delete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/individual", h.Report.Individual)
				r.Get("/general", h.Report.General)
			})

			r.Post("/backup", h.Backup.Create)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	return r
}
