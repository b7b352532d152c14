package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"insurance-chatbot-backend/controllers"
	"insurance-chatbot-backend/database"
	"insurance-chatbot-backend/logger"
	"insurance-chatbot-backend/middleware"
	"insurance-chatbot-backend/services"
)

// Dependencies are the services the HTTP surface is built from.
type Dependencies struct {
	ChatbotService      *services.ChatbotService
	RegistrationService *services.RegistrationService
	WhatsAppService     *services.WhatsAppService
	Repository          database.Repository
	AllowedOrigins      []string
	Logger              logger.Logger
}

// SetupRoutes registers every endpoint and returns the WhatsApp controller so callers can
// wait for in-flight webhooks on shutdown.
func SetupRoutes(router *gin.Engine, deps Dependencies) *controllers.WhatsAppController {
	chatbotController := controllers.NewChatbotController(deps.ChatbotService, deps.Logger)
	wsController := controllers.NewWebSocketController(deps.ChatbotService, deps.AllowedOrigins, deps.Logger)
	whatsappController := controllers.NewWhatsAppController(deps.WhatsAppService, deps.ChatbotService, deps.Logger)
	userController := controllers.NewUserController(deps.RegistrationService)

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status":              "ok",
			"timestamp":           time.Now(),
			"whatsapp_configured": deps.WhatsAppService.Enabled(),
		}
		if err := database.HealthCheck(c.Request.Context(), deps.Repository); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["storage_error"] = err.Error()
		}
		c.JSON(status, body)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api/v1")
	{
		public.POST("/chat", chatbotController.HandleChat)
		public.GET("/intents", chatbotController.GetSupportedIntents)
		public.POST("/users", userController.RegisterUser)

		// WebSocket for real-time chat
		public.GET("/ws", wsController.HandleWebSocket)
	}

	whatsapp := router.Group("/api/whatsapp")
	{
		whatsapp.GET("/webhook", whatsappController.VerifyWebhook)
		if secret := deps.WhatsAppService.AppSecret(); secret != "" {
			whatsapp.POST("/webhook", middleware.VerifyWhatsAppSignature(secret), whatsappController.HandleWebhook)
		} else {
			deps.Logger.Warn("WHATSAPP_APP_SECRET not set, webhook signatures are not verified", nil)
			whatsapp.POST("/webhook", whatsappController.HandleWebhook)
		}

		whatsapp.POST("/admin/send", whatsappController.SendMessage)
		whatsapp.GET("/admin/status", whatsappController.GetStatus)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	return whatsappController
}
