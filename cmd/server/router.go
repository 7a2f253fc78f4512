package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jwhitfield/baseline-api/internal/api"
	apimiddleware "github.com/jwhitfield/baseline-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	production := app.config.Server.IsProduction()

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace(app.logger))
	r.Use(apimiddleware.NewRateLimiter(app.config.RateLimit, production).Limit)

	authHandler := api.NewAuthHandler(app.userService, app.gate, production)
	userHandler := api.NewUserHandler(app.userService, app.gate, production)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.tokenService, production)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Public but personalizable
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuth)
			r.Get("/profile", userHandler.Profile)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)

			r.With(authMiddleware.RequireRole("admin")).Get("/users", userHandler.ListUsers)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireOwnership("id"))
				r.Get("/users/{id}", userHandler.GetUser)
				r.Put("/users/{id}", userHandler.UpdateUser)
				r.Delete("/users/{id}", userHandler.DeleteUser)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
