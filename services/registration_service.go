package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"insurance-chatbot-backend/database"
	apperrors "insurance-chatbot-backend/errors"
	"insurance-chatbot-backend/logger"
	"insurance-chatbot-backend/models"
)

type RegistrationService struct {
	repo   database.Repository
	logger logger.Logger

	now   func() time.Time
	newID func() string
}

func NewRegistrationService(repo database.Repository, log logger.Logger) *RegistrationService {
	return &RegistrationService{
		repo:   repo,
		logger: log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// RegisterUser stores a new policy holder. New users never have a claim reported.
func (s *RegistrationService) RegisterUser(ctx context.Context, name, vehicle, insuranceType string) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewInvalidRequestError("name is required")
	}

	user := &models.User{
		ID:            s.newID(),
		Name:          name,
		Vehicle:       vehicle,
		InsuranceType: insuranceType,
		ClaimReported: false,
		CreatedAt:     s.now(),
	}
	if err := s.repo.AddUser(ctx, user); err != nil {
		s.logger.WithError(err).Error("Failed to register user", map[string]interface{}{"name": name})
		return nil, err
	}

	s.logger.Info("User registered", map[string]interface{}{"user_id": user.ID})
	return user, nil
}
