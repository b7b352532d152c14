package cmd

import (
	"context"
	"fmt"

	"insurance-chatbot-backend/config"
	"insurance-chatbot-backend/database"
	"insurance-chatbot-backend/knowledge"
	"insurance-chatbot-backend/logger"
	"insurance-chatbot-backend/nlp"
	"insurance-chatbot-backend/services"
	"insurance-chatbot-backend/utils"
)

// app holds the wired components shared by every front end.
type app struct {
	cfg          *config.Config
	logger       logger.Logger
	repo         database.Repository
	sessions     database.SessionStore
	chatbot      *services.ChatbotService
	registration *services.RegistrationService
}

// newApp loads the knowledge tables and opens the stores selected by cfg.
func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	normalizer := nlp.NewNormalizer(cfg.Language)

	keywords, err := knowledge.LoadKeywordIndex(cfg.Knowledge.KeywordsFile)
	if err != nil {
		return nil, err
	}
	responses, err := knowledge.LoadResponseTable(cfg.Knowledge.ResponsesFile)
	if err != nil {
		return nil, err
	}

	repo, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	sessions, err := database.NewSessionStore(ctx, cfg, log)
	if err != nil {
		_ = repo.Close(ctx)
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	classifier := utils.NewIntentClassifier(normalizer, keywords)
	return &app{
		cfg:          cfg,
		logger:       log,
		repo:         repo,
		sessions:     sessions,
		chatbot:      services.NewChatbotService(classifier, responses, repo, sessions, log),
		registration: services.NewRegistrationService(repo, log),
	}, nil
}

func (a *app) Close(ctx context.Context) {
	if err := a.sessions.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close session store", nil)
	}
	if err := a.repo.Close(ctx); err != nil {
		a.logger.WithError(err).Warn("Failed to close storage", nil)
	}
}

// loadConfig reads configuration and builds the matching logger.
func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format), nil
}
