package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/db"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

// OpportunityRepository handles opportunity postings and their applications
type OpportunityRepository struct {
	database *db.Database
}

// NewOpportunityRepository creates a new opportunity repository
func NewOpportunityRepository(database *db.Database) *OpportunityRepository {
	return &OpportunityRepository{database: database}
}

func byOpportunityID(id string) func(*models.Opportunity) bool {
	return func(o *models.Opportunity) bool { return o.ID == id }
}

// GetAll returns every opportunity in storage order
func (r *OpportunityRepository) GetAll() []*models.Opportunity {
	var out []*models.Opportunity
	r.database.View(func(data *models.DatabaseData) {
		out = make([]*models.Opportunity, 0, len(data.Opportunities))
		for _, o := range data.Opportunities {
			out = append(out, o.Clone())
		}
	})
	return out
}

// GetByID retrieves an opportunity by id
func (r *OpportunityRepository) GetByID(id string) (*models.Opportunity, error) {
	var found *models.Opportunity
	r.database.View(func(data *models.DatabaseData) {
		if i := indexOf(data.Opportunities, byOpportunityID(id)); i >= 0 {
			found = data.Opportunities[i].Clone()
		}
	})
	if found == nil {
		return nil, notFound("opportunity", id)
	}
	return found, nil
}

// Create validates and appends an opportunity
func (r *OpportunityRepository) Create(ctx context.Context, opportunity *models.Opportunity, allocate IDAllocator) (*models.Opportunity, error) {
	record := opportunity.Clone()
	record.Normalize()
	err := r.database.Update(ctx, func(data *models.DatabaseData) error {
		assignID(&record.ID, data.Opportunities, func(o *models.Opportunity) string { return o.ID }, allocate)
		if err := validateRecord("opportunity", record); err != nil {
			return err
		}
		if indexOf(data.Opportunities, byOpportunityID(record.ID)) >= 0 {
			return alreadyExists("opportunity", record.ID)
		}
		data.Opportunities = append(data.Opportunities, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record.Clone(), nil
}

// Update merge-patches the opportunity
func (r *OpportunityRepository) Update(ctx context.Context, id string, patch models.Patch) (*models.Opportunity, error) {
	return r.mutate(ctx, id, func(current *models.Opportunity) (*models.Opportunity, error) {
		next, err := mergePatch("opportunity", current, patch)
		if err != nil {
			return nil, err
		}
		next.ID, next.CreatedAt = current.ID, current.CreatedAt
		next.Normalize()
		if err := validateRecord("opportunity", next); err != nil {
			return nil, err
		}
		return next, nil
	})
}

// Delete removes the opportunity with the given id
func (r *OpportunityRepository) Delete(ctx context.Context, id string) error {
	return r.database.Update(ctx, func(data *models.DatabaseData) error {
		i := indexOf(data.Opportunities, byOpportunityID(id))
		if i < 0 {
			return notFound("opportunity", id)
		}
		data.Opportunities = remove(data.Opportunities, i)
		return nil
	})
}

// Apply records a pending application from userID. A second application
// by the same user changes nothing and returns ErrAlreadyApplied.
func (r *OpportunityRepository) Apply(ctx context.Context, opportunityID, userID string) error {
	_, err := r.mutate(ctx, opportunityID, func(current *models.Opportunity) (*models.Opportunity, error) {
		if current.HasApplicant(userID) {
			return nil, apperrors.ErrAlreadyApplied
		}
		current.Applications = append(current.Applications, models.Application{
			UserID:    userID,
			AppliedAt: time.Now().UTC(),
			Status:    models.ApplicationPending,
		})
		return current, nil
	})
	return err
}

// SetApplicationStatus moves userID's application to status
func (r *OpportunityRepository) SetApplicationStatus(ctx context.Context, opportunityID, userID string, status models.ApplicationStatus) (*models.Opportunity, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown application status %q", status))
	}
	return r.mutate(ctx, opportunityID, func(current *models.Opportunity) (*models.Opportunity, error) {
		if !current.SetStatus(userID, status) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no application from %s", userID))
		}
		return current, nil
	})
}

// mutate replaces the stored opportunity with the result of fn, which works on
// the working copy held inside the update.
func (r *OpportunityRepository) mutate(ctx context.Context, id string, fn func(*models.Opportunity) (*models.Opportunity, error)) (*models.Opportunity, error) {
	var updated *models.Opportunity
	err := r.database.Update(ctx, func(data *models.DatabaseData) error {
		i := indexOf(data.Opportunities, byOpportunityID(id))
		if i < 0 {
			return notFound("opportunity", id)
		}
		next, err := fn(data.Opportunities[i])
		if err != nil {
			return err
		}
		data.Opportunities[i] = next
		updated = next.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
