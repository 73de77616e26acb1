package api

import (
	"net/http"
	"time"

	"scamdb/internal/api/handler"
	"scamdb/internal/api/middleware"
	"scamdb/internal/app/service"
	"scamdb/internal/common/security"
	"scamdb/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	scammerService *service.ScammerService,
	userRepo repository.UserRepository,
	tokens *security.TokenManager,
	corsOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Verifies a bearer token when one is present and puts claims in context.
	// The Authenticator middleware decides per route group what to do with it.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))

	authenticate := middleware.Authenticator(userRepo)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		api.Route("/auth", func(auth chi.Router) {
			authHandler.RegisterRoutes(auth, authenticate)
		})

		scammerHandler := handler.NewScammerHandler(scammerService)
		api.Route("/scammers", func(scammers chi.Router) {
			scammerHandler.RegisterRoutes(scammers, authenticate)
		})

		// Statistics are public
		api.Get("/statistics", scammerHandler.GetStatistics)
	})

	return r
}
