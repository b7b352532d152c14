package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"insurance-chatbot-backend/database"
	apperrors "insurance-chatbot-backend/errors"
	"insurance-chatbot-backend/followup"
	"insurance-chatbot-backend/knowledge"
	"insurance-chatbot-backend/logger"
	"insurance-chatbot-backend/metrics"
	"insurance-chatbot-backend/models"
	"insurance-chatbot-backend/utils"
)

var exitCommands = map[string]bool{
	"sair":     true,
	"exit":     true,
	"encerrar": true,
}

// IsExitCommand reports whether text ends the conversation. Case and surrounding
// whitespace are ignored.
func IsExitCommand(text string) bool {
	return exitCommands[strings.ToLower(strings.TrimSpace(text))]
}

type ChatbotService struct {
	classifier *utils.IntentClassifier
	resolver   *ResponseResolver
	responses  *knowledge.ResponseTable
	repo       database.Repository
	sessions   database.SessionStore
	logger     logger.Logger

	now   func() time.Time
	newID func() string
}

func NewChatbotService(
	classifier *utils.IntentClassifier,
	responses *knowledge.ResponseTable,
	repo database.Repository,
	sessions database.SessionStore,
	log logger.Logger,
) *ChatbotService {
	return &ChatbotService{
		classifier: classifier,
		resolver:   NewResponseResolver(responses),
		responses:  responses,
		repo:       repo,
		sessions:   sessions,
		logger:     log,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (s *ChatbotService) Greeting() string {
	return s.responses.Greeting
}

func (s *ChatbotService) Farewell() string {
	return s.responses.Farewell
}

// ClassifyAndRespond runs normalizer, classifier and resolver over one utterance.
// Unrecognized input is answered with a fallback, never an error.
func (s *ChatbotService) ClassifyAndRespond(utterance string) (models.Classification, string) {
	start := time.Now()
	classification := s.classifier.ClassifyText(utterance)
	metrics.ClassificationDuration.Observe(time.Since(start).Seconds())

	text, resolution := s.resolver.ResolveWithKind(classification)

	metrics.MessagesClassified.WithLabelValues(
		metrics.Label(classification.Entity.String()),
		metrics.Label(classification.Intention.String()),
	).Inc()
	switch resolution {
	case ResolutionFallback:
		metrics.Fallbacks.WithLabelValues(metrics.FallbackUnrecognized).Inc()
	case ResolutionClarification:
		metrics.Fallbacks.WithLabelValues(metrics.FallbackClarification).Inc()
	}

	s.logger.Debug("Message classified", map[string]interface{}{
		"entity":    classification.Entity.String(),
		"intention": classification.Intention.String(),
	})

	return classification, text
}

// RunSchedulingFlow asks the three scheduling questions through prompter and stores the
// resulting appointment.
func (s *ChatbotService) RunSchedulingFlow(ctx context.Context, sessionID string, prompter followup.Prompter) (*models.Appointment, error) {
	flow, err := s.runFlow(ctx, followup.KindScheduling, prompter)
	if err != nil {
		return nil, err
	}
	appointment, err := flow.Appointment()
	if err != nil {
		return nil, err
	}
	if err := s.storeAppointment(ctx, sessionID, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// RunClaimFlow asks the three claim questions through prompter and stores the resulting claim.
func (s *ChatbotService) RunClaimFlow(ctx context.Context, sessionID string, prompter followup.Prompter) (*models.Claim, error) {
	flow, err := s.runFlow(ctx, followup.KindClaim, prompter)
	if err != nil {
		return nil, err
	}
	claim, err := flow.Claim()
	if err != nil {
		return nil, err
	}
	if err := s.storeClaim(ctx, sessionID, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

func (s *ChatbotService) runFlow(ctx context.Context, kind followup.Kind, prompter followup.Prompter) (*followup.Flow, error) {
	flow, err := followup.New(kind)
	if err != nil {
		return nil, err
	}
	metrics.FollowUps.WithLabelValues(string(kind), metrics.FollowUpStarted).Inc()

	if err := followup.Run(ctx, flow, prompter); err != nil {
		return nil, err
	}
	return flow, nil
}

func (s *ChatbotService) storeAppointment(ctx context.Context, sessionID string, appointment *models.Appointment) error {
	appointment.ID = s.newID()
	appointment.SessionID = sessionID
	appointment.CreatedAt = s.now()

	if err := s.repo.AddAppointment(ctx, appointment); err != nil {
		s.logger.WithError(err).Error("Failed to store appointment", map[string]interface{}{"session_id": sessionID})
		return err
	}

	metrics.FollowUps.WithLabelValues(string(followup.KindScheduling), metrics.FollowUpCompleted).Inc()
	s.logger.Info("Appointment scheduled", map[string]interface{}{
		"session_id":     sessionID,
		"appointment_id": appointment.ID,
	})
	return nil
}

func (s *ChatbotService) storeClaim(ctx context.Context, sessionID string, claim *models.Claim) error {
	claim.ID = s.newID()
	claim.SessionID = sessionID
	claim.CreatedAt = s.now()

	if err := s.repo.AddClaim(ctx, claim); err != nil {
		s.logger.WithError(err).Error("Failed to store claim", map[string]interface{}{"session_id": sessionID})
		return err
	}

	metrics.FollowUps.WithLabelValues(string(followup.KindClaim), metrics.FollowUpCompleted).Inc()
	s.logger.Info("Claim registered", map[string]interface{}{
		"session_id": sessionID,
		"claim_id":   claim.ID,
	})
	return nil
}

// ProcessMessage handles one message of a web, WebSocket or WhatsApp session. While the
// session has a follow-up flow in progress the message is the answer to its pending field;
// otherwise an exit command ends the session and anything else is classified.
func (s *ChatbotService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.NewInvalidRequestError("message is required")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.newID()
	}

	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var response *models.ChatResponse
	switch {
	case state != nil:
		response, err = s.continueFlow(ctx, sessionID, *state, req.Message)
	case IsExitCommand(req.Message):
		response = &models.ChatResponse{SessionID: sessionID, Response: s.Farewell(), SessionEnded: true}
	default:
		response, err = s.answer(ctx, sessionID, req.Message)
	}
	if err != nil {
		return nil, err
	}

	s.recordMessage(ctx, req, response)
	return response, nil
}

func (s *ChatbotService) answer(ctx context.Context, sessionID, message string) (*models.ChatResponse, error) {
	classification, text := s.ClassifyAndRespond(message)
	response := &models.ChatResponse{
		SessionID: sessionID,
		Response:  text,
		Entity:    classification.Entity,
		Intention: classification.Intention,
	}

	kind, ok := followup.Trigger(classification)
	if !ok {
		return response, nil
	}

	flow, err := followup.New(kind)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sessionID, flow.State()); err != nil {
		return nil, err
	}
	metrics.FollowUps.WithLabelValues(string(kind), metrics.FollowUpStarted).Inc()

	field, _ := flow.Next()
	response.Response = text + "\n" + flow.Intro()
	response.FollowUp = &models.FollowUpPrompt{Flow: string(kind), Field: field.Name, Prompt: field.Prompt}
	return response, nil
}

func (s *ChatbotService) continueFlow(ctx context.Context, sessionID string, state followup.State, answer string) (*models.ChatResponse, error) {
	flow, err := followup.Restore(state)
	if err != nil {
		s.logger.WithError(err).Warn("Discarding unreadable follow-up state", map[string]interface{}{"session_id": sessionID})
		if delErr := s.sessions.Delete(ctx, sessionID); delErr != nil {
			return nil, delErr
		}
		return nil, err
	}
	if err := flow.Submit(answer); err != nil {
		return nil, err
	}

	if field, ok := flow.Next(); ok {
		if err := s.sessions.Save(ctx, sessionID, flow.State()); err != nil {
			return nil, err
		}
		return &models.ChatResponse{
			SessionID: sessionID,
			FollowUp:  &models.FollowUpPrompt{Flow: string(flow.Kind()), Field: field.Name, Prompt: field.Prompt},
		}, nil
	}

	confirmation, err := s.completeFlow(ctx, sessionID, flow)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	return &models.ChatResponse{SessionID: sessionID, Response: confirmation}, nil
}

func (s *ChatbotService) completeFlow(ctx context.Context, sessionID string, flow *followup.Flow) (string, error) {
	switch flow.Kind() {
	case followup.KindScheduling:
		appointment, err := flow.Appointment()
		if err != nil {
			return "", err
		}
		if err := s.storeAppointment(ctx, sessionID, appointment); err != nil {
			return "", err
		}
		return followup.AppointmentConfirmation(appointment), nil
	default:
		claim, err := flow.Claim()
		if err != nil {
			return "", err
		}
		if err := s.storeClaim(ctx, sessionID, claim); err != nil {
			return "", err
		}
		return followup.ClaimConfirmation(claim), nil
	}
}

// recordMessage appends the turn to the audit log. Failures are logged and do not affect
// the reply.
func (s *ChatbotService) recordMessage(ctx context.Context, req models.ChatRequest, response *models.ChatResponse) {
	channel := req.Channel
	if channel == "" {
		channel = models.ChannelWeb
	}

	message := &models.Message{
		ID:          s.newID(),
		SessionID:   response.SessionID,
		UserMessage: req.Message,
		BotResponse: response.Text(),
		Entity:      response.Entity.String(),
		Intention:   response.Intention.String(),
		Channel:     channel,
		Timestamp:   s.now(),
	}
	if err := s.repo.AddMessage(ctx, message); err != nil {
		s.logger.WithError(err).Warn("Failed to record message", map[string]interface{}{"session_id": response.SessionID})
	}
}

// ActiveSessions counts sessions with a follow-up flow in progress.
func (s *ChatbotService) ActiveSessions(ctx context.Context) int {
	count, err := s.sessions.Count(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to count active sessions", nil)
		return 0
	}
	return count
}

// SupportedIntents lists the keyword tables in their scan order.
func (s *ChatbotService) SupportedIntents() (entities, intentions []knowledge.LabelStems) {
	return s.classifier.EntityKeywords(), s.classifier.IntentionKeywords()
}
