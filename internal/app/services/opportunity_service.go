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

const (
	opportunityIDPrefix = "op_"
	shortIDWidth        = 3
)

// OpportunityService defines the posting and application operations
type OpportunityService interface {
	List() []*models.Opportunity
	Get(id string) (*models.Opportunity, error)
	Create(ctx context.Context, actor *auth.Principal, opportunity *models.Opportunity) (*models.Opportunity, error)
	Update(ctx context.Context, actor *auth.Principal, id string, patch models.Patch) (*models.Opportunity, error)
	Delete(ctx context.Context, actor *auth.Principal, id string) error
	Apply(ctx context.Context, actor *auth.Principal, id string) error
	SetApplicationStatus(ctx context.Context, actor *auth.Principal, id, userID string, status models.ApplicationStatus) (*models.Opportunity, error)
}

type opportunityServiceImpl struct {
	repo   *repositories.OpportunityRepository
	audit  AuditRecorder
	logger zerolog.Logger
	now    func() time.Time
}

// NewOpportunityService creates a new opportunity service instance
func NewOpportunityService(repo *repositories.OpportunityRepository, audit AuditRecorder, logger zerolog.Logger) OpportunityService {
	return &opportunityServiceImpl{
		repo:   repo,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

func (s *opportunityServiceImpl) List() []*models.Opportunity {
	return s.repo.GetAll()
}

func (s *opportunityServiceImpl) Get(id string) (*models.Opportunity, error) {
	return s.repo.GetByID(id)
}

// Create stores a new posting owned by the actor with no applications
func (s *opportunityServiceImpl) Create(ctx context.Context, actor *auth.Principal, opportunity *models.Opportunity) (*models.Opportunity, error) {
	if opportunity == nil {
		return nil, apperrors.NewValidationError("opportunity data is required")
	}
	record := opportunity.Clone()
	record.PostedBy = actor.Identity()
	record.CreatedAt = s.now().UTC()
	record.Applications = []models.Application{}
	record.Normalize()

	record, err := s.repo.Create(ctx, record, repositories.SequentialIDs(opportunityIDPrefix, shortIDWidth))
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.ActionCreateOpportunity,
		TargetType: "opportunity",
		TargetID:   record.ID,
		Details:    fmt.Sprintf("Posted %s opportunity %q", record.Type, record.Title),
	})
	return record, nil
}

// Update lets the poster or an admin edit the posting. Ownership and the
// application list are managed elsewhere and cannot be patched.
func (s *opportunityServiceImpl) Update(ctx context.Context, actor *auth.Principal, id string, patch models.Patch) (*models.Opportunity, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(actor, existing.PostedBy); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, patch.Without("posted_by", "applications"))
}

func (s *opportunityServiceImpl) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := auth.RequireOwnerOrAdmin(actor, existing.PostedBy); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:      actor,
		Action:     models.ActionDeleteOpportunity,
		TargetType: "opportunity",
		TargetID:   id,
		Details:    fmt.Sprintf("Deleted opportunity %q", existing.Title),
	})
	return nil
}

// Apply submits a pending application from the actor
func (s *opportunityServiceImpl) Apply(ctx context.Context, actor *auth.Principal, id string) error {
	if err := s.repo.Apply(ctx, id, actor.Identity()); err != nil {
		return err
	}
	s.logger.Info().Str("opportunityId", id).Str("applicant", actor.Identity()).Msg("Application submitted")
	return nil
}

// SetApplicationStatus lets the poster or an admin accept or reject an application
func (s *opportunityServiceImpl) SetApplicationStatus(ctx context.Context, actor *auth.Principal, id, userID string, status models.ApplicationStatus) (*models.Opportunity, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnerOrAdmin(actor, existing.PostedBy); err != nil {
		return nil, err
	}
	return s.repo.SetApplicationStatus(ctx, id, userID, status)
}
