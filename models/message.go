package models

import "time"

// MessageChannel represents the communication channel
type MessageChannel string

const (
	ChannelTerminal  MessageChannel = "terminal"
	ChannelWeb       MessageChannel = "web"
	ChannelWebSocket MessageChannel = "websocket"
	ChannelWhatsApp  MessageChannel = "whatsapp"
)

// Message is one conversation turn kept for auditing.
type Message struct {
	ID          string         `bson:"_id" json:"id"`
	SessionID   string         `bson:"session_id" json:"session_id"`
	UserMessage string         `bson:"user_message" json:"user_message"`
	BotResponse string         `bson:"bot_response" json:"bot_response"`
	Entity      string         `bson:"entity,omitempty" json:"entity,omitempty"`
	Intention   string         `bson:"intention,omitempty" json:"intention,omitempty"`
	Channel     MessageChannel `bson:"channel,omitempty" json:"channel,omitempty"`
	Timestamp   time.Time      `bson:"timestamp" json:"timestamp"`
}

type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
	// Set by the controller that received the message, never by the client.
	Channel MessageChannel `json:"-"`
}

type ChatResponse struct {
	SessionID    string          `json:"session_id"`
	Response     string          `json:"response"`
	Entity       Entity          `json:"entity,omitempty"`
	Intention    Intention       `json:"intention,omitempty"`
	FollowUp     *FollowUpPrompt `json:"follow_up,omitempty"`
	SessionEnded bool            `json:"session_ended,omitempty"`
}

// FollowUpPrompt tells a front end which field an active flow is waiting for.
type FollowUpPrompt struct {
	Flow   string `json:"flow"`
	Field  string `json:"field"`
	Prompt string `json:"prompt"`
}

// Text joins the bot reply and the pending prompt the way a plain-text channel shows them.
func (cr ChatResponse) Text() string {
	if cr.FollowUp == nil {
		return cr.Response
	}
	if cr.Response == "" {
		return cr.FollowUp.Prompt
	}
	return cr.Response + "\n" + cr.FollowUp.Prompt
}

// WhatsApp Webhook Models
type WhatsAppWebhookData struct {
	Object string          `json:"object"`
	Entry  []WhatsAppEntry `json:"entry"`
}

type WhatsAppEntry struct {
	ID      string           `json:"id"`
	Changes []WhatsAppChange `json:"changes"`
}

type WhatsAppChange struct {
	Field string        `json:"field"`
	Value WhatsAppValue `json:"value"`
}

type WhatsAppValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         WhatsAppMetadata  `json:"metadata"`
	Messages         []WhatsAppMessage `json:"messages,omitempty"`
	Statuses         []WhatsAppStatus  `json:"statuses,omitempty"`
	Contacts         []WhatsAppContact `json:"contacts,omitempty"`
}

type WhatsAppMetadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type WhatsAppMessage struct {
	From      string        `json:"from"`
	ID        string        `json:"id"`
	Timestamp string        `json:"timestamp"`
	Type      string        `json:"type"`
	Text      *WhatsAppText `json:"text,omitempty"`
}

type WhatsAppText struct {
	Body string `json:"body"`
}

type WhatsAppContact struct {
	Profile WhatsAppProfile `json:"profile"`
	WaID    string          `json:"wa_id"`
}

type WhatsAppProfile struct {
	Name string `json:"name"`
}

type WhatsAppStatus struct {
	ID          string  `json:"id"`
	RecipientID string  `json:"recipient_id"`
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Errors      []Error `json:"errors,omitempty"`
}

type Error struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// WhatsApp Send Message Models
type WhatsAppSendMessage struct {
	MessagingProduct string        `json:"messaging_product"`
	RecipientType    string        `json:"recipient_type"`
	To               string        `json:"to"`
	Type             string        `json:"type"`
	Text             *WhatsAppText `json:"text,omitempty"`
}

// Service Status Model
type WhatsAppServiceStatus struct {
	Enabled             bool      `json:"enabled"`
	LastMessageReceived time.Time `json:"last_message_received"`
	MessageCountToday   int       `json:"message_count_today"`
	ActiveSessions      int       `json:"active_sessions"`
}
