package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"signup_portal/internal/api"
	"signup_portal/internal/api/middleware"
	"signup_portal/internal/app/service"
	"signup_portal/internal/common/security"
)

const (
	serverWriteTimeout = 10 * time.Second
	// The handler deadline must expire before the server cuts the
	// connection, or the 503 from the timeout middleware never reaches
	// the client.
	requestTimeout = serverWriteTimeout - 2*time.Second
)

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
}

func newServeCmd(rt *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), rt)
		},
	}
}

func serve(ctx context.Context, rt *rootState) error {
	cfg, logger := rt.cfg, rt.logger

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	userRepo, closeRepo, err := openUserRepository(connectCtx, cfg, logger)
	cancel()
	if err != nil {
		return err
	}
	defer closeRepo()

	tokenIssuer := security.NewTokenIssuer(cfg.JWTKey, cfg.JWTExp)
	registrationService := service.NewRegistrationService(
		userRepo,
		security.NewPasswordHasher(cfg.BcryptCost),
		service.NewCallerRolePolicy(middleware.GetUserRoleFromContext),
		cfg.StoreTimeout,
		logger,
	)

	router := api.NewRouter(registrationService, tokenIssuer, api.RouterConfig{
		LoginURL:       cfg.LoginURL,
		RequestTimeout: requestTimeout,
	}, logger)

	server := newHTTPServer(":"+cfg.APIPort, router)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.APIPort), zap.String("store", cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-stop:
	case err := <-serverErr:
		if err != nil {
			logger.Error("could not listen", zap.String("port", cfg.APIPort), zap.Error(err))
			return err
		}
	}

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}
