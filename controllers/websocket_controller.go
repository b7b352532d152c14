package controllers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"insurance-chatbot-backend/logger"
	"insurance-chatbot-backend/models"
	"insurance-chatbot-backend/services"
)

// wsMessage is one inbound WebSocket frame.
type wsMessage struct {
	Message string `json:"message"`
}

type WebSocketController struct {
	chatbotService *services.ChatbotService
	upgrader       websocket.Upgrader
	logger         logger.Logger
}

// NewWebSocketController accepts upgrades from allowedOrigins only. "*" or an empty list
// allows every origin.
func NewWebSocketController(chatbotService *services.ChatbotService, allowedOrigins []string, log logger.Logger) *WebSocketController {
	return &WebSocketController{
		chatbotService: chatbotService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(allowedOrigins, r.Header.Get("Origin"))
			},
		},
		logger: log,
	}
}

func originAllowed(allowed []string, origin string) bool {
	if len(allowed) == 0 || origin == "" || slices.Contains(allowed, "*") {
		return true
	}
	return slices.Contains(allowed, origin)
}

// HandleWebSocket keeps one chat session per connection.
func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := wc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wc.logger.WithError(err).Warn("WebSocket upgrade error", nil)
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	ctx := c.Request.Context()

	if err := conn.WriteJSON(models.ChatResponse{SessionID: sessionID, Response: wc.chatbotService.Greeting()}); err != nil {
		return
	}

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				wc.logger.WithError(err).Warn("WebSocket read error", map[string]interface{}{"session_id": sessionID})
			}
			return
		}

		response, err := wc.chatbotService.ProcessMessage(ctx, models.ChatRequest{
			Message:   msg.Message,
			SessionID: sessionID,
			Channel:   models.ChannelWebSocket,
		})
		if err != nil {
			wc.logger.WithError(err).Error("Failed to process message", map[string]interface{}{"session_id": sessionID})
			if err := conn.WriteJSON(gin.H{"error": "Failed to process message", "details": err.Error()}); err != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(response); err != nil {
			return
		}
		if response.SessionEnded {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
			return
		}
	}
}
