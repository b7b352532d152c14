package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-chatbot-backend/config"
	"insurance-chatbot-backend/database"
	apperrors "insurance-chatbot-backend/errors"
	"insurance-chatbot-backend/followup"
	"insurance-chatbot-backend/knowledge"
	"insurance-chatbot-backend/logger"
	"insurance-chatbot-backend/metrics"
	"insurance-chatbot-backend/models"
	"insurance-chatbot-backend/nlp"
	"insurance-chatbot-backend/utils"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	svc       *ChatbotService
	repo      *database.MemoryRepository
	sessions  *database.MemorySessionStore
	responses *knowledge.ResponseTable
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	normalizer := nlp.NewNormalizer("pt-BR")
	index, err := knowledge.LoadKeywordIndex("")
	require.NoError(t, err)
	responses, err := knowledge.LoadResponseTable("")
	require.NoError(t, err)

	repo := database.NewMemoryRepository()
	sessions := database.NewMemorySessionStore(time.Hour)
	svc := NewChatbotService(utils.NewIntentClassifier(normalizer, index), responses, repo, sessions, logger.NewTestLogger(t))

	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	svc.now = func() time.Time { return fixedNow }

	return &testEnv{svc: svc, repo: repo, sessions: sessions, responses: responses}
}

func TestIsExitCommand(t *testing.T) {
	for _, text := range []string{"sair", "SAIR", " exit ", "Encerrar"} {
		assert.True(t, IsExitCommand(text), text)
	}
	for _, text := range []string{"", "sair agora", "quero sair", "tchau"} {
		assert.False(t, IsExitCommand(text), text)
	}
}

func TestClassifyAndRespond(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name      string
		text      string
		entity    models.Entity
		intention models.Intention
		response  string
	}{
		{
			name:      "coverage query",
			text:      "Quero verificar minha cobertura de incêndio",
			entity:    models.EntityCoverage,
			intention: models.IntentionQuery,
			response:  "A cobertura atual inclui danos contra terceiros, roubo e incêndio.",
		},
		{
			name:      "vehicle schedule",
			text:      "Quero agendar uma revisão do meu seguro do carro",
			entity:    models.EntityVehicleInsurance,
			intention: models.IntentionSchedule,
			response:  "Você gostaria de agendar uma conversa com um de nossos consultores sobre seguro veicular?",
		},
		{
			name:     "no keywords",
			text:     "asdf qwerty zzz",
			response: "Desculpe, não consegui entender sua solicitação. Poderia reformular a pergunta?",
		},
		{
			name:     "entity without intention",
			text:     "Tenho um acidente",
			entity:   models.EntityClaim,
			response: "Entendi que você quer falar sobre sinistro. Como posso ajudar mais especificamente?",
		},
		{
			name:      "intention without entity",
			text:      "Quero saber",
			intention: models.IntentionQuery,
			response:  "Desculpe, não consegui entender sua solicitação. Poderia reformular a pergunta?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classification, response := env.svc.ClassifyAndRespond(tt.text)
			assert.Equal(t, tt.entity, classification.Entity)
			assert.Equal(t, tt.intention, classification.Intention)
			assert.Equal(t, tt.response, response)
		})
	}
}

func TestClassifyAndRespond_Metrics(t *testing.T) {
	env := newTestEnv(t)
	classified := metrics.MessagesClassified.WithLabelValues("cobertura", "consultar")
	unrecognized := metrics.Fallbacks.WithLabelValues(metrics.FallbackUnrecognized)
	clarified := metrics.Fallbacks.WithLabelValues(metrics.FallbackClarification)

	beforeClassified := testutil.ToFloat64(classified)
	beforeUnrecognized := testutil.ToFloat64(unrecognized)
	beforeClarified := testutil.ToFloat64(clarified)

	env.svc.ClassifyAndRespond("Quero verificar minha cobertura de incêndio")
	env.svc.ClassifyAndRespond("asdf qwerty zzz")
	env.svc.ClassifyAndRespond("Meu boleto 123")

	assert.Equal(t, beforeClassified+1, testutil.ToFloat64(classified))
	assert.Equal(t, beforeUnrecognized+1, testutil.ToFloat64(unrecognized))
	assert.Equal(t, beforeClarified+1, testutil.ToFloat64(clarified))
}

func TestResponseResolver_EveryPair(t *testing.T) {
	env := newTestEnv(t)
	resolver := NewResponseResolver(env.responses)

	pairs := env.responses.Pairs()
	require.Len(t, pairs, 16)
	for _, pair := range pairs {
		want, ok := env.responses.Lookup(pair.Entity, pair.Intention)
		require.True(t, ok)

		text, kind := resolver.ResolveWithKind(pair)
		assert.Equal(t, want, text)
		assert.Equal(t, ResolutionCanned, kind)
	}

	_, kind := resolver.ResolveWithKind(models.Classification{})
	assert.Equal(t, ResolutionFallback, kind)
	_, kind = resolver.ResolveWithKind(models.Classification{Entity: models.EntityPayment})
	assert.Equal(t, ResolutionClarification, kind)
}

func TestProcessMessage_SchedulingFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.svc.ProcessMessage(ctx, models.ChatRequest{
		Message:   "Quero agendar uma revisão do meu seguro do carro",
		SessionID: "web-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "web-1", resp.SessionID)
	assert.Equal(t, models.EntityVehicleInsurance, resp.Entity)
	assert.Equal(t, models.IntentionSchedule, resp.Intention)
	assert.Equal(t,
		"Você gostaria de agendar uma conversa com um de nossos consultores sobre seguro veicular?\n"+
			"Por favor, informe os detalhes do agendamento.",
		resp.Response)
	require.NotNil(t, resp.FollowUp)
	assert.Equal(t, string(followup.KindScheduling), resp.FollowUp.Flow)
	assert.Equal(t, followup.FieldDate, resp.FollowUp.Field)
	assert.Equal(t, 1, env.svc.ActiveSessions(ctx))

	resp, err = env.svc.ProcessMessage(ctx, models.ChatRequest{Message: "10/10/2025", SessionID: "web-1"})
	require.NoError(t, err)
	require.NotNil(t, resp.FollowUp)
	assert.Equal(t, followup.FieldTime, resp.FollowUp.Field)
	assert.Empty(t, resp.Response)

	// an active flow takes the exit word as an answer
	resp, err = env.svc.ProcessMessage(ctx, models.ChatRequest{Message: "sair", SessionID: "web-1"})
	require.NoError(t, err)
	assert.False(t, resp.SessionEnded)
	require.NotNil(t, resp.FollowUp)
	assert.Equal(t, followup.FieldReason, resp.FollowUp.Field)

	resp, err = env.svc.ProcessMessage(ctx, models.ChatRequest{Message: "revisão de cobertura", SessionID: "web-1"})
	require.NoError(t, err)
	assert.Nil(t, resp.FollowUp)
	assert.Equal(t, "Agendamento realizado com sucesso! Detalhes:\n  Data: 10/10/2025\n  Hora: sair\n  Motivo: revisão de cobertura", resp.Response)

	appointments, err := env.repo.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "10/10/2025", appointments[0].Date)
	assert.Equal(t, "sair", appointments[0].Time)
	assert.Equal(t, "revisão de cobertura", appointments[0].Reason)
	assert.Equal(t, "web-1", appointments[0].SessionID)
	assert.Equal(t, fixedNow, appointments[0].CreatedAt)
	assert.Equal(t, 0, env.svc.ActiveSessions(ctx))

	messages, err := env.repo.ListMessages(ctx, "web-1")
	require.NoError(t, err)
	assert.Len(t, messages, 4)
	assert.Equal(t, models.ChannelWeb, messages[0].Channel)
}

func TestProcessMessage_ClaimFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.svc.ProcessMessage(ctx, models.ChatRequest{
		Message:   "Quero solicitar um sinistro do carro",
		SessionID: "wa-1",
		Channel:   models.ChannelWhatsApp,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.FollowUp)
	assert.Equal(t, string(followup.KindClaim), resp.FollowUp.Flow)
	assert.Contains(t, resp.Text(), "Vamos registrar seu sinistro. Por favor, informe os detalhes.")

	for _, answer := range []string{"01/02/2025", "colisão", "Bati no poste"} {
		resp, err = env.svc.ProcessMessage(ctx, models.ChatRequest{Message: answer, SessionID: "wa-1", Channel: models.ChannelWhatsApp})
		require.NoError(t, err)
	}
	assert.Equal(t, "Sinistro registrado com sucesso! Detalhes:\n  Data: 01/02/2025\n  Tipo: colisão\n  Descrição: Bati no poste", resp.Response)

	claims, err := env.repo.ListClaims(ctx)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "colisão", claims[0].Type)

	messages, err := env.repo.ListMessages(ctx, "wa-1")
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, models.ChannelWhatsApp, messages[3].Channel)
}

func TestProcessMessage_ExitAndFallback(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.svc.ProcessMessage(ctx, models.ChatRequest{Message: "asdf qwerty zzz"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", resp.SessionID)
	assert.Equal(t, env.responses.Fallback, resp.Response)
	assert.Nil(t, resp.FollowUp)
	assert.Equal(t, 0, env.svc.ActiveSessions(ctx))

	resp, err = env.svc.ProcessMessage(ctx, models.ChatRequest{Message: " SAIR ", SessionID: "id-1"})
	require.NoError(t, err)
	assert.True(t, resp.SessionEnded)
	assert.Equal(t, env.responses.Farewell, resp.Response)
	assert.Empty(t, resp.Entity)
}

func TestProcessMessage_EmptyMessage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ProcessMessage(context.Background(), models.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

type failingRepository struct {
	*database.MemoryRepository
}

func (failingRepository) AddAppointment(ctx context.Context, appointment *models.Appointment) error {
	return apperrors.NewStorageWriteError("appointments", fmt.Errorf("disk full"))
}

func (failingRepository) AddMessage(ctx context.Context, message *models.Message) error {
	return apperrors.NewStorageWriteError("messages", fmt.Errorf("disk full"))
}

func TestProcessMessage_StorageFailureKeepsFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.svc.repo = failingRepository{MemoryRepository: env.repo}

	// message log failures never fail the request
	_, err := env.svc.ProcessMessage(ctx, models.ChatRequest{Message: "Quero agendar uma revisão do meu seguro do carro", SessionID: "s"})
	require.NoError(t, err)
	for _, answer := range []string{"10/10/2025", "14:00"} {
		_, err = env.svc.ProcessMessage(ctx, models.ChatRequest{Message: answer, SessionID: "s"})
		require.NoError(t, err)
	}

	_, err = env.svc.ProcessMessage(ctx, models.ChatRequest{Message: "vistoria", SessionID: "s"})
	assert.ErrorIs(t, err, apperrors.ErrStorageWrite)

	state, err := env.sessions.Get(ctx, "s")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, []string{"10/10/2025", "14:00"}, state.Values)
}

type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompter) Ask(ctx context.Context, prompt string) (string, error) {
	p.asked = append(p.asked, prompt)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func TestRunSchedulingAndClaimFlows(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	appointment, err := env.svc.RunSchedulingFlow(ctx, "term", &scriptedPrompter{answers: []string{"amanhã", "cedo", "vistoria"}})
	require.NoError(t, err)
	assert.Equal(t, "amanhã", appointment.Date)
	assert.NotEmpty(t, appointment.ID)

	claim, err := env.svc.RunClaimFlow(ctx, "term", &scriptedPrompter{answers: []string{"", "furto", "levaram o rádio"}})
	require.NoError(t, err)
	assert.Empty(t, claim.Date)
	assert.Equal(t, "furto", claim.Type)

	_, err = env.svc.RunClaimFlow(ctx, "term", &scriptedPrompter{answers: []string{"ontem"}})
	assert.ErrorIs(t, err, io.EOF)

	claims, err := env.repo.ListClaims(ctx)
	require.NoError(t, err)
	assert.Len(t, claims, 1)
}

func TestRunConversation_Exit(t *testing.T) {
	env := newTestEnv(t)
	var out strings.Builder

	err := env.svc.RunConversation(context.Background(), strings.NewReader("sair\n"), &out)
	require.NoError(t, err)
	assert.Equal(t,
		"Olá! Bem-vindo à Seguradora XYZ. Como posso ajudar você hoje?\n"+
			"Você: Chatbot: Obrigado por usar o serviço da Seguradora XYZ. Até logo!\n",
		out.String())

	messages, err := env.repo.ListMessages(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestRunConversation_Scheduling(t *testing.T) {
	env := newTestEnv(t)
	var out strings.Builder

	input := strings.Join([]string{
		"Quero agendar uma revisão do meu seguro do carro",
		"10/10/2025",
		"14:00",
		"revisão anual",
		"asdf qwerty zzz",
		"exit",
	}, "\n") + "\n"

	err := env.svc.RunConversation(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Chatbot: Você gostaria de agendar uma conversa com um de nossos consultores sobre seguro veicular?\n")
	assert.Contains(t, text, "Chatbot: Por favor, informe os detalhes do agendamento.\n")
	assert.Contains(t, text, "Chatbot: Qual a data desejada para o agendamento? (Formato: DD/MM/AAAA)\nVocê: ")
	assert.Contains(t, text, "Chatbot: Agendamento realizado com sucesso! Detalhes:\n  Data: 10/10/2025\n  Hora: 14:00\n  Motivo: revisão anual\n")
	assert.Contains(t, text, "Chatbot: Desculpe, não consegui entender sua solicitação. Poderia reformular a pergunta?\n")
	assert.True(t, strings.HasSuffix(text, "Chatbot: Obrigado por usar o serviço da Seguradora XYZ. Até logo!\n"))

	appointments, err := env.repo.ListAppointments(context.Background())
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "14:00", appointments[0].Time)
}

func TestRunConversation_EndOfInput(t *testing.T) {
	env := newTestEnv(t)
	var out strings.Builder

	// input ends in the middle of a claim flow
	err := env.svc.RunConversation(context.Background(), strings.NewReader("Quero solicitar um sinistro do carro\nontem\n"), &out)
	require.NoError(t, err)

	claims, err := env.repo.ListClaims(context.Background())
	require.NoError(t, err)
	assert.Empty(t, claims)
}

func TestRunConversation_Cancelled(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := env.svc.RunConversation(ctx, strings.NewReader("oi\n"), io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistrationService_RegisterUser(t *testing.T) {
	ctx := context.Background()
	repo := database.NewMemoryRepository()
	svc := NewRegistrationService(repo, logger.NewNoOpLogger())

	user, err := svc.RegisterUser(ctx, "João", "Carro XYZ", "seguro_veicular")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.ClaimReported)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Carro XYZ", users[0].Vehicle)

	_, err = svc.RegisterUser(ctx, " ", "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestWhatsAppService_SendTextMessage(t *testing.T) {
	var received models.WhatsAppSendMessage
	var path, auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer server.Close()

	ws := NewWhatsAppService(config.WhatsAppConfig{
		APIURL:        server.URL + "/",
		APIVersion:    "v18.0",
		AccessToken:   "token",
		PhoneNumberID: "12345",
	}, logger.NewNoOpLogger())

	err := ws.SendTextMessage(context.Background(), "+55 (11) 98765-4321", "Olá")
	require.NoError(t, err)
	assert.Equal(t, "/v18.0/12345/messages", path)
	assert.Equal(t, "Bearer token", auth)
	assert.Equal(t, "5511987654321", received.To)
	assert.Equal(t, "Olá", received.Text.Body)
}

func TestWhatsAppService_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":100}}`))
	}))
	defer server.Close()

	ws := NewWhatsAppService(config.WhatsAppConfig{APIURL: server.URL, APIVersion: "v18.0", AccessToken: "t", PhoneNumberID: "1"}, logger.NewNoOpLogger())
	err := ws.SendTextMessage(context.Background(), "5511987654321", "oi")
	assert.ErrorIs(t, err, apperrors.ErrWhatsAppSend)

	disabled := NewWhatsAppService(config.WhatsAppConfig{}, logger.NewNoOpLogger())
	assert.False(t, disabled.Enabled())
	err = disabled.MarkMessageAsRead(context.Background(), "wamid.1")
	assert.ErrorIs(t, err, apperrors.ErrWhatsAppSend)
}

func TestWhatsAppService_Status(t *testing.T) {
	ws := NewWhatsAppService(config.WhatsAppConfig{AccessToken: "t", PhoneNumberID: "1", VerifyToken: "v"}, logger.NewNoOpLogger())
	ws.now = func() time.Time { return fixedNow }

	assert.Equal(t, "v", ws.GetVerifyToken())
	assert.Equal(t, "5511987654321", ws.CleanPhoneNumber("11987654321"))
	assert.Equal(t, "5511987654321", ws.CleanPhoneNumber("5511987654321"))

	ws.RecordIncoming()
	ws.RecordIncoming()
	status := ws.GetStatus(3)
	assert.True(t, status.Enabled)
	assert.Equal(t, 2, status.MessageCountToday)
	assert.Equal(t, 3, status.ActiveSessions)
	assert.Equal(t, fixedNow, status.LastMessageReceived)
}
