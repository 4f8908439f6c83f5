package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/repository"
	"github.com/rs/zerolog/log"
)

var ErrInvalidInput = errors.New("message is required")

type ContactUseCase interface {
	Submit(ctx context.Context, input ContactInput) (*domain.ContactMessage, error)
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactService struct {
	repo repository.ContactRepository
	now  func() time.Time
}

func NewContactService(repo repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo, now: time.Now}
}

// Submit appends the message. Messages are never read back through the API.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*domain.ContactMessage, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, ErrInvalidInput
	}

	msg := &domain.ContactMessage{
		ID:        domain.NewContactID(),
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	log.Info().Str("contact_id", msg.ID).Msg("contact message received")
	return msg, nil
}

var _ ContactUseCase = (*ContactService)(nil)
