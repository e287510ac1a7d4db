package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"

	"signup_portal/internal/api/handler"
	"signup_portal/internal/api/middleware"
	"signup_portal/internal/app/service"
	"signup_portal/internal/common/security"
)

type RouterConfig struct {
	LoginURL       string
	RequestTimeout time.Duration
}

func NewRouter(
	registrationService *service.RegistrationService,
	tokenIssuer *security.TokenIssuer,
	cfg RouterConfig,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(cfg.RequestTimeout))
	}

	// Searches "Authorization: Bearer T"; an absent token leaves the caller anonymous.
	r.Use(jwtauth.Verifier(tokenIssuer.Auth()))
	r.Use(middleware.OptionalAuthenticator(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	signupHandler := handler.NewSignupHandler(registrationService, cfg.LoginURL, logger)
	signupHandler.RegisterRoutes(r)

	r.Route("/api/v1", func(v1 chi.Router) {
		signupHandler.RegisterAPIRoutes(v1)
	})

	return r
}
