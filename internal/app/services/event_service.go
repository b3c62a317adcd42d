package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/auth"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/repositories"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

const eventIDPrefix = "ev_"

// EventService defines event and RSVP operations
type EventService interface {
	List() []*models.Event
	Get(id string) (*models.Event, error)
	Create(ctx context.Context, actor *auth.Principal, event *models.Event) (*models.Event, error)
	Update(ctx context.Context, actor *auth.Principal, id string, patch models.Patch) (*models.Event, error)
	Delete(ctx context.Context, actor *auth.Principal, id string) error
	RSVP(ctx context.Context, actor *auth.Principal, id string) error
}

type eventServiceImpl struct {
	repo   *repositories.EventRepository
	audit  AuditRecorder
	logger zerolog.Logger
	now    func() time.Time
}

// NewEventService creates a new event service instance
func NewEventService(repo *repositories.EventRepository, audit AuditRecorder, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		repo:   repo,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

func (s *eventServiceImpl) List() []*models.Event {
	return s.repo.GetAll()
}

func (s *eventServiceImpl) Get(id string) (*models.Event, error) {
	return s.repo.GetByID(id)
}

// Create stores a new event organized by the actor
func (s *eventServiceImpl) Create(ctx context.Context, actor *auth.Principal, event *models.Event) (*models.Event, error) {
	if event == nil {
		return nil, apperrors.NewValidationError("event data is required")
	}
	record := event.Clone()
	record.Organizer = actor.Identity()
	record.CreatedAt = s.now().UTC()
	record.Normalize()

	record, err := s.repo.Create(ctx, record, repositories.SequentialIDs(eventIDPrefix, shortIDWidth))
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.ActionCreateEvent,
		TargetType: "event",
		TargetID:   record.ID,
		Details:    fmt.Sprintf("Created event %q", record.Title),
	})
	return record, nil
}

// Update lets the organizer or an admin edit the event
func (s *eventServiceImpl) Update(ctx context.Context, actor *auth.Principal, id string, patch models.Patch) (*models.Event, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(actor, existing.Organizer); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, patch.Without("organizer"))
}

func (s *eventServiceImpl) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := auth.RequireOwnerOrAdmin(actor, existing.Organizer); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.ActionDeleteEvent,
		TargetType: "event",
		TargetID:   id,
		Details:    fmt.Sprintf("Deleted event %q", existing.Title),
	})
	return nil
}

// RSVP registers the actor as an attendee
func (s *eventServiceImpl) RSVP(ctx context.Context, actor *auth.Principal, id string) error {
	return s.repo.RSVP(ctx, id, actor.Identity())
}
