package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Glavin001/gameplan-htn/internal/auth"
)

// corsMiddleware adds permissive CORS headers for cross-origin dashboards
// polling the control plane.
func corsMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	origin := allowedOrigins
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gameplan-htn",
	})
}

// NewRouter assembles the chi router for the planner control plane. authMW
// may be nil, in which case every route is unauthenticated (the default when
// OIDC_CLIENT_ID is unset).
func NewRouter(handler *Handler, authMW *auth.Middleware, corsAllowedOrigins string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware(corsAllowedOrigins))

	r.Get("/health", healthCheckHandler)

	r.Route("/plan", func(r chi.Router) {
		r.Get("/", handler.GetPlan)
	})
	r.Get("/stats", handler.GetStats)

	r.Route("/world-state", func(r chi.Router) {
		r.Get("/", handler.GetWorldState)
		withAuth(r, authMW).Post("/", handler.PatchWorldState)
	})

	withAuth(r, authMW).Post("/tick", handler.PostTick)
	withAuth(r, authMW).Post("/reset", handler.PostReset)
	withAuth(r, authMW).Put("/slots/{id}", handler.PutSlot)

	return r
}

// withAuth wraps a router group in Authenticate when authMW is non-nil,
// otherwise returns the router unchanged.
func withAuth(r chi.Router, authMW *auth.Middleware) chi.Router {
	if authMW == nil {
		return r
	}
	return r.With(authMW.Authenticate)
}
