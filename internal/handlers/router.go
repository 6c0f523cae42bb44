package handlers

import (
	"net/http"

	"github.com/Varun5711/authcore/internal/logger"
	"github.com/Varun5711/authcore/internal/metrics"
	"github.com/Varun5711/authcore/internal/middleware"
)

type RouterDeps struct {
	Auth        *AuthHandler
	Health      *HealthHandler
	Swagger     *SwaggerHandler
	AuthMW      *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter // nil disables limiting
	CORSOrigins []string
	Log         *logger.Logger
}

// NewRouter wires every route. Rate limiting covers only register and login.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	limited := func(h http.Handler) http.Handler {
		if deps.RateLimiter == nil {
			return h
		}
		return deps.RateLimiter.Middleware(h)
	}

	mux.Handle("POST /api/auth/register",
		metrics.Middleware("/api/auth/register", limited(http.HandlerFunc(deps.Auth.Register))))
	mux.Handle("POST /api/auth/login",
		metrics.Middleware("/api/auth/login", limited(http.HandlerFunc(deps.Auth.Login))))
	mux.Handle("GET /api/auth/profil",
		metrics.Middleware("/api/auth/profil", deps.AuthMW.RequireAuth(http.HandlerFunc(deps.Auth.Profile))))

	if deps.Health != nil {
		mux.HandleFunc("GET /health", deps.Health.Health)
	}
	mux.Handle("GET /metrics", metrics.Handler())

	if deps.Swagger != nil {
		deps.Swagger.RegisterRoutes(mux)
	}

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return middleware.Chain(mux,
		middleware.Recover(deps.Log),
		middleware.RequestLogger(deps.Log),
		middleware.CORS(origins),
	)
}
