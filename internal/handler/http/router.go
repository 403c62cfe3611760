package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(env string, allowedOrigins []string, overtimeHandler OvertimeHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "overtime-analyzer"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
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
		r.Route("/overtime", func(r chi.Router) {
			r.Post("/upload", overtimeHandler.Upload)
			r.Delete("/dataset", overtimeHandler.Reset)

			r.Route("/summary", func(r chi.Router) {
				r.Get("/employees", overtimeHandler.EmployeeSummary)
				r.Get("/months", overtimeHandler.MonthSummary)
				r.Get("/daily", overtimeHandler.DailySummary)
			})

			r.Get("/top", overtimeHandler.TopEmployees)
			r.Get("/employees/{pinCode}", overtimeHandler.EmployeeDetail)
			r.Get("/stats", overtimeHandler.Stats)
			r.Get("/export", overtimeHandler.Export)
		})
	})
	return r
}
