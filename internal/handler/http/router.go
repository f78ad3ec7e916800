package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/handler/http/middleware"
)

func NewRouter(tokenAuth *jwtauth.JWTAuth, env string, timekeepingHandler TimekeepingHandler, cutoffHandler CutoffHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timekeeping-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		// SSE streams authenticate via the job ID rather than a header token;
		// EventSource cannot set Authorization.
		r.Get("/jobs/{jobID}/events", cutoffHandler.StreamJob)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))
			r.Use(middleware.RequireCompany)

			r.Route("/timekeeping", func(r chi.Router) {
				r.Route("/punches", func(r chi.Router) {
					r.Post("/", timekeepingHandler.IngestPunch)
					r.Delete("/{punchID}", timekeepingHandler.DeletePunch)
				})

				r.Route("/days", func(r chi.Router) {
					r.Get("/{accountID}", timekeepingHandler.GetRange)
					r.Get("/{accountID}/{date}", timekeepingHandler.GetDay)
				})

				r.Route("/daily/{dailyID}", func(r chi.Router) {
					r.Put("/override", timekeepingHandler.SetOverride)
					r.Delete("/override", timekeepingHandler.ClearOverride)
					r.Post("/approve", timekeepingHandler.ApproveDay)
					r.Post("/unapprove", timekeepingHandler.UnapproveDay)
					r.Post("/holiday-eligibility", timekeepingHandler.ToggleHolidayEligibility)
				})

				r.Get("/logs/raw", timekeepingHandler.ListRawLogs)
				r.Post("/recompute", timekeepingHandler.Recompute)
			})

			r.Route("/cutoffs/ranges/{rangeID}", func(r chi.Router) {
				r.Get("/totals", cutoffHandler.Totals)
				r.Get("/totals/{accountID}", cutoffHandler.TotalsForAccount)
				r.Post("/recompute", cutoffHandler.StartBulkRecompute)
			})

			r.Route("/jobs/{jobID}", func(r chi.Router) {
				r.Get("/", cutoffHandler.JobStatus)
				r.Delete("/", cutoffHandler.CancelJob)
			})
		})
	})
	return r
}
