package handlers

import (
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"gorm.io/gorm"

	"otconsole/config"
	"otconsole/middleware"
	"otconsole/models"
	"otconsole/notify"
)

// Services are the dependencies shared by every handler.
type Services struct {
	DB     *gorm.DB
	Config *config.Config
	Hub    *notify.Hub
	Logger *slog.Logger
}

const (
	changePasswordPath = "/api/auth/change-password"
	mePath             = "/api/auth/me"
	logoutPath         = "/api/auth/logout"
)

func NewRouter(s Services) *chi.Mux {
	auth := middleware.NewAuth(s.DB, s.Config.JWTSecret, s.Config.JWTExpiration)

	notifications := NewNotificationHandler(s.DB, s.Hub)
	authHandler := NewAuthHandler(s.DB, s.Config, auth)
	employeeHandler := NewEmployeeHandler(s.DB)
	tripleOTHandler := NewTripleOTHandler(s.DB)
	overtimeHandler := NewOvertimeHandler(s.DB, s.Config, notifications)
	reportHandler := NewReportHandler(s.DB, s.Config)
	healthHandler := NewHealthHandler(s.DB)
	scannerHandler := NewScannerHandler()

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.Config.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if s.Logger != nil {
		r.Use(httplog.RequestLogger(s.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	need := middleware.RequireCapability

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Route("/connection", func(r chi.Router) {
			r.Get("/ping", healthHandler.Ping)
			r.Get("/status", healthHandler.Status)
		})

		passwordGate := middleware.RequirePasswordChange(changePasswordPath, mePath, logoutPath)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(passwordGate)
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)

				r.Group(func(r chi.Router) {
					r.Use(need(models.CapManageUsers))
					r.Get("/users", authHandler.ListUsers)
					r.Post("/users", authHandler.CreateUser)
					r.Put("/users/{id}", authHandler.UpdateUser)
					r.Delete("/users/{id}", authHandler.DeleteUser)
					r.Get("/invites", authHandler.ListInvites)
					r.Post("/invites", authHandler.CreateInvite)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(passwordGate)

			r.Route("/employee", func(r chi.Router) {
				r.With(need(models.CapDashboard)).Get("/", employeeHandler.List)
				r.Group(func(r chi.Router) {
					r.Use(need(models.CapManageEmployees))
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Route("/triple-ot", func(r chi.Router) {
				r.With(need(models.CapDashboard)).Get("/", tripleOTHandler.List)
				r.Group(func(r chi.Router) {
					r.Use(need(models.CapManageTripleOT))
					r.Post("/", tripleOTHandler.Create)
					r.Delete("/{date}", tripleOTHandler.Delete)
				})
			})

			r.Route("/overtime", func(r chi.Router) {
				r.With(need(models.CapViewOvertime)).Get("/", overtimeHandler.List)
				r.With(need(models.CapEnterOvertime)).Post("/", overtimeHandler.Create)
				r.With(need(models.CapViewOvertime)).Post("/classify", overtimeHandler.Classify)

				r.With(need(models.CapDashboard)).Get("/monthly-report", reportHandler.Monthly)
				r.With(need(models.CapViewReports)).Get("/monthly-report/export", reportHandler.Export)

				approvers := middleware.RequireAnyCapability(models.CapApproveProduction, models.CapApproveHR)
				r.With(approvers).Put("/approval", overtimeHandler.BulkApproval)

				r.Route("/{id}", func(r chi.Router) {
					r.With(need(models.CapViewOvertime)).Get("/", overtimeHandler.Get)
					r.With(need(models.CapEnterOvertime)).Put("/", overtimeHandler.Update)
					r.With(need(models.CapEnterOvertime)).Delete("/", overtimeHandler.Delete)
					r.With(approvers).Put("/approval", overtimeHandler.SetApproval)
				})
			})

			r.Get("/notifications", notifications.List)
			r.Get("/notifications/ws", notifications.Stream)

			r.With(need(models.CapConvertScans)).Post("/scanner/convert", scannerHandler.Convert)
		})
	})

	return r
}

// NewLogger builds the process logger in ECS format.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "otconsole"),
		slog.String("env", cfg.Env),
	)
}
