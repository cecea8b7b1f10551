package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/scoracle-cricket/internal/api/handler"
	"github.com/albapepper/scoracle-cricket/internal/config"
	"github.com/albapepper/scoracle-cricket/internal/livefeed"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
// feed may be nil when the live feed is disabled.
func NewRouter(h *handler.Handler, feed *livefeed.Handler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins: cfg.CORSAllowOrigins,
		AllowedMethods: []string{"GET", "HEAD", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control",
			HeaderActorRole, HeaderCoachID, HeaderPlayerID,
		},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag", "Retry-After"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	r.Use(ActorMiddleware)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// API v1 routes. Reads are public; writes need an identity.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/batches", h.GetBatches)
		r.Get("/leaderboard", h.GetLeaderboard)

		r.Route("/matches", func(r chi.Router) {
			r.With(RequireActor).Post("/", h.CreateMatch)

			r.Route("/{matchID}", func(r chi.Router) {
				r.Get("/", h.GetMatch)
				r.Get("/players", h.GetAllowedPlayers)
				r.Get("/balls", h.ListBalls)
				r.Get("/next-ball", h.GetNextBall)
				r.Get("/report", h.GetReport)

				r.Group(func(r chi.Router) {
					r.Use(RequireActor)
					r.Post("/innings/start", h.StartInnings)
					r.Post("/innings/end", h.EndInnings)
					r.Put("/result", h.UpdateResult)
					r.Put("/squad", h.SelectSquad)
					r.Post("/manual-score", h.SubmitManualScore)
					r.Post("/balls", h.AppendBall)
					r.Post("/approve", h.ApproveMatch)
				})
			})
		})

		r.Route("/players/{playerID}", func(r chi.Router) {
			r.Get("/career", h.GetCareer)

			r.Group(func(r chi.Router) {
				r.Use(RequireActor)
				r.Put("/profile", h.UpdateProfile)
				r.Post("/approve", h.ApprovePlayer)
			})
		})

		r.Route("/availability", func(r chi.Router) {
			r.Use(RequireActor)
			r.Post("/", h.CreatePoll)
			r.Get("/{pollID}", h.GetPollSummary)
			r.Post("/{pollID}/respond", h.RespondToPoll)
			r.Post("/{pollID}/finalize", h.FinalizePoll)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(RequireActor)
			r.Get("/", h.GetNotifications)
			r.Post("/{notificationID}/read", h.MarkNotificationRead)
		})
	})

	// Live feed
	if feed != nil {
		r.Get("/ws/matches/{matchID}", feed.Watch)
		r.Get("/ws/metrics", feed.Metrics)
	}

	return r
}
