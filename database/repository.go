package database

import (
	"context"
	"sync"

	"insurance-chatbot-backend/models"
)

// Repository is the append-only record store the services write to.
type Repository interface {
	AddUser(ctx context.Context, user *models.User) error
	AddAppointment(ctx context.Context, appointment *models.Appointment) error
	AddClaim(ctx context.Context, claim *models.Claim) error
	AddMessage(ctx context.Context, message *models.Message) error

	ListUsers(ctx context.Context) ([]models.User, error)
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	ListClaims(ctx context.Context) ([]models.Claim, error)
	ListMessages(ctx context.Context, sessionID string) ([]models.Message, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// MemoryRepository keeps records for the lifetime of the process.
type MemoryRepository struct {
	mu           sync.RWMutex
	users        []models.User
	appointments []models.Appointment
	claims       []models.Claim
	messages     []models.Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) AddUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, *user)
	return nil
}

func (r *MemoryRepository) AddAppointment(ctx context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments = append(r.appointments, *appointment)
	return nil
}

func (r *MemoryRepository) AddClaim(ctx context.Context, claim *models.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claims = append(r.claims, *claim)
	return nil
}

func (r *MemoryRepository) AddMessage(ctx context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *MemoryRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.User(nil), r.users...), nil
}

func (r *MemoryRepository) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Appointment(nil), r.appointments...), nil
}

func (r *MemoryRepository) ListClaims(ctx context.Context) ([]models.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Claim(nil), r.claims...), nil
}

// ListMessages returns the messages of one session, or of every session when sessionID is empty.
func (r *MemoryRepository) ListMessages(ctx context.Context, sessionID string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Message
	for _, message := range r.messages {
		if sessionID == "" || message.SessionID == sessionID {
			out = append(out, message)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

func (r *MemoryRepository) Close(ctx context.Context) error {
	return nil
}
