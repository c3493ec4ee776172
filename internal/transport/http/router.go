package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vitalsign-api/internal/application/cache"
	"github.com/vitalsign-api/internal/application/credreset"
	"github.com/vitalsign-api/internal/application/directory"
	"github.com/vitalsign-api/internal/application/user"
	"github.com/vitalsign-api/internal/application/verification"
	"github.com/vitalsign-api/internal/config"
	"github.com/vitalsign-api/internal/transport/http/handler"
	appmiddleware "github.com/vitalsign-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	codeSvc := verification.NewService(deps.KV, cfg.ResetCodeTTL)
	dirSvc := directory.NewService(deps.UserRepo)
	resetSvc := credreset.NewService(codeSvc, dirSvc, deps.Mailer, deps.SMSSender)
	cacheSvc := cache.NewService(deps.KV, cfg.CacheItemKey)
	userSvc := user.NewService(deps.UserRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(resetSvc, dirSvc)
	cacheH := handler.NewCacheHandler(cacheSvc)
	userH := handler.NewUserHandler(userSvc)

	r.Get("/health-check/ping", healthH.Ping)

	r.Route("/auth", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/reset-password", authH.ResetPassword)
		r.With(sensitiveRL.Limit).Post("/request-reset", authH.RequestReset)
		r.Get("/verify", authH.VerifyExists)
	})

	r.Route("/cache", func(r chi.Router) {
		r.Get("/item", cacheH.GetItem)
		r.Post("/item", cacheH.SaveItem)
	})

	r.Route("/users", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/", userH.Register)
		r.Get("/{id}", userH.Get)
	})

	return r
}
