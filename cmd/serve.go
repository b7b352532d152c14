package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"insurance-chatbot-backend/config"
	"insurance-chatbot-backend/logger"
	"insurance-chatbot-backend/middleware"
	"insurance-chatbot-backend/routes"
	"insurance-chatbot-backend/services"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP, WebSocket and WhatsApp webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	if missing := cfg.MissingWhatsAppSettings(); len(missing) > 0 {
		// Continue running without WhatsApp if not configured
		log.Warn("WhatsApp integration may not work properly", map[string]interface{}{"missing": missing})
	} else {
		log.Info("WhatsApp configuration verified successfully", nil)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.Security.AllowedOrigins))

	whatsapp := routes.SetupRoutes(router, routes.Dependencies{
		ChatbotService:      a.chatbot,
		RegistrationService: a.registration,
		WhatsAppService:     services.NewWhatsAppService(cfg.WhatsApp, log),
		Repository:          a.repo,
		AllowedOrigins:      cfg.Security.AllowedOrigins,
		Logger:              log,
	})
	logAvailableEndpoints(router, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", map[string]interface{}{
			"port":        cfg.Port,
			"environment": cfg.Environment,
			"storage":     cfg.Storage.Type,
			"sessions":    cfg.Sessions.Type,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.WithError(err).Error("Failed to start server", nil)
			return err
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown", nil)
	}
	whatsapp.Wait()

	log.Info("Server exited", nil)
	return nil
}

// logAvailableEndpoints logs all registered routes
func logAvailableEndpoints(router *gin.Engine, log logger.Logger) {
	for _, route := range router.Routes() {
		log.Debug("Route registered", map[string]interface{}{"method": route.Method, "path": route.Path})
	}
}
