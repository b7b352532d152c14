package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"insurance-chatbot-backend/config"
	apperrors "insurance-chatbot-backend/errors"
	"insurance-chatbot-backend/logger"
	"insurance-chatbot-backend/models"
)

// brazilCountryCode is prefixed to national numbers (area code plus subscriber).
const brazilCountryCode = "55"

type WhatsAppService struct {
	apiURL        string
	apiVersion    string
	accessToken   string
	phoneNumberID string
	verifyToken   string
	appSecret     string
	httpClient    *http.Client
	logger        logger.Logger

	// Status tracking
	statusMu        sync.RWMutex
	lastMessageTime time.Time
	dailyCount      map[string]int
	now             func() time.Time
}

func NewWhatsAppService(cfg config.WhatsAppConfig, log logger.Logger) *WhatsAppService {
	return &WhatsAppService{
		apiURL:        strings.TrimRight(cfg.APIURL, "/"),
		apiVersion:    cfg.APIVersion,
		accessToken:   cfg.AccessToken,
		phoneNumberID: cfg.PhoneNumberID,
		verifyToken:   cfg.VerifyToken,
		appSecret:     cfg.AppSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:     log,
		dailyCount: make(map[string]int),
		now:        time.Now,
	}
}

// GetVerifyToken returns the webhook verification token
func (ws *WhatsAppService) GetVerifyToken() string {
	return ws.verifyToken
}

// AppSecret is the key webhook payload signatures are checked against. Empty disables the check.
func (ws *WhatsAppService) AppSecret() string {
	return ws.appSecret
}

// Enabled reports whether outbound messages can be sent.
func (ws *WhatsAppService) Enabled() bool {
	return ws.accessToken != "" && ws.phoneNumberID != ""
}

// SendTextMessage sends a simple text message
func (ws *WhatsAppService) SendTextMessage(ctx context.Context, to string, message string) error {
	payload := models.WhatsAppSendMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               ws.CleanPhoneNumber(to),
		Type:             "text",
		Text: &models.WhatsAppText{
			Body: message,
		},
	}
	return ws.sendRequest(ctx, payload)
}

// MarkMessageAsRead marks a message as read
func (ws *WhatsAppService) MarkMessageAsRead(ctx context.Context, messageID string) error {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"status":            "read",
		"message_id":        messageID,
	}
	return ws.sendRequest(ctx, payload)
}

func (ws *WhatsAppService) sendRequest(ctx context.Context, payload interface{}) error {
	if !ws.Enabled() {
		return apperrors.NewWhatsAppSendError(fmt.Errorf("whatsapp integration is not configured"))
	}

	url := fmt.Sprintf("%s/%s/%s/messages", ws.apiURL, ws.apiVersion, ws.phoneNumberID)

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return apperrors.NewWhatsAppSendError(fmt.Errorf("failed to marshal payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return apperrors.NewWhatsAppSendError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+ws.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ws.httpClient.Do(req)
	if err != nil {
		ws.logger.WithError(err).Error("Failed to send WhatsApp request", map[string]interface{}{"url": url})
		return apperrors.NewWhatsAppSendError(fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewWhatsAppSendError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		ws.logger.Error("WhatsApp API error", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return apperrors.NewWhatsAppSendError(fmt.Errorf("whatsapp api returned %d: %s", resp.StatusCode, string(body)))
	}

	ws.logger.Debug("WhatsApp request sent", map[string]interface{}{"status": resp.StatusCode})
	return nil
}

// CleanPhoneNumber keeps only digits and adds the Brazilian country code to national numbers.
func (ws *WhatsAppService) CleanPhoneNumber(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if len(cleaned) == 10 || len(cleaned) == 11 {
		cleaned = brazilCountryCode + cleaned
	}
	return cleaned
}

// RecordIncoming updates the counters reported by GetStatus.
func (ws *WhatsAppService) RecordIncoming() {
	ws.statusMu.Lock()
	defer ws.statusMu.Unlock()

	now := ws.now()
	ws.lastMessageTime = now
	ws.dailyCount[now.Format("2006-01-02")]++
}

// GetStatus returns the service status
func (ws *WhatsAppService) GetStatus(activeSessions int) models.WhatsAppServiceStatus {
	ws.statusMu.RLock()
	defer ws.statusMu.RUnlock()

	today := ws.now().Format("2006-01-02")
	return models.WhatsAppServiceStatus{
		Enabled:             ws.Enabled(),
		LastMessageReceived: ws.lastMessageTime,
		MessageCountToday:   ws.dailyCount[today],
		ActiveSessions:      activeSessions,
	}
}
