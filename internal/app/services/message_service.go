package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/auth"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/repositories"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

const messageIDPrefix = "msg_"

// MessageNotifier pushes a stored message to a connected recipient
type MessageNotifier interface {
	NotifyMessage(recipient string, message *models.Message)
}

// MessageService defines direct messaging operations
type MessageService interface {
	List(actor *auth.Principal, with string) []*models.Message
	Send(ctx context.Context, actor *auth.Principal, to, text string) (*models.Message, error)
	MarkRead(ctx context.Context, actor *auth.Principal, id string) (*models.Message, error)
}

type messageServiceImpl struct {
	repo     *repositories.MessageRepository
	notifier MessageNotifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewMessageService creates a new message service. notifier may be nil.
func NewMessageService(repo *repositories.MessageRepository, notifier MessageNotifier, logger zerolog.Logger) MessageService {
	return &messageServiceImpl{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns the actor's messages, or only the thread with another identity
func (s *messageServiceImpl) List(actor *auth.Principal, with string) []*models.Message {
	return s.repo.GetMessages(actor.Identity(), strings.TrimSpace(with))
}

func (s *messageServiceImpl) Send(ctx context.Context, actor *auth.Principal, to, text string) (*models.Message, error) {
	to = strings.TrimSpace(to)
	if to == "" || strings.TrimSpace(text) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "Recipient and message are required")
	}

	message, err := s.repo.Create(ctx, &models.Message{
		From:      actor.Identity(),
		To:        to,
		Message:   text,
		Timestamp: s.now().UTC(),
		Read:      false,
	}, repositories.SequentialIDs(messageIDPrefix, shortIDWidth))
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyMessage(to, message)
	}
	return message, nil
}

func (s *messageServiceImpl) MarkRead(ctx context.Context, actor *auth.Principal, id string) (*models.Message, error) {
	return s.repo.MarkRead(ctx, id, actor.Identity())
}
