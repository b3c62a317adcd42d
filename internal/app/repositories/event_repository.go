package repositories

import (
	"context"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/db"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

// EventRepository handles events and their attendee lists
type EventRepository struct {
	database *db.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(database *db.Database) *EventRepository {
	return &EventRepository{database: database}
}

func byEventID(id string) func(*models.Event) bool {
	return func(e *models.Event) bool { return e.ID == id }
}

// GetAll returns every event in storage order
func (r *EventRepository) GetAll() []*models.Event {
	var out []*models.Event
	r.database.View(func(data *models.DatabaseData) {
		out = make([]*models.Event, 0, len(data.Events))
		for _, e := range data.Events {
			out = append(out, e.Clone())
		}
	})
	return out
}

// GetByID retrieves an event by id
func (r *EventRepository) GetByID(id string) (*models.Event, error) {
	var found *models.Event
	r.database.View(func(data *models.DatabaseData) {
		if i := indexOf(data.Events, byEventID(id)); i >= 0 {
			found = data.Events[i].Clone()
		}
	})
	if found == nil {
		return nil, notFound("event", id)
	}
	return found, nil
}

// Create validates and appends an event
func (r *EventRepository) Create(ctx context.Context, event *models.Event, allocate IDAllocator) (*models.Event, error) {
	record := event.Clone()
	record.Normalize()
	err := r.database.Update(ctx, func(data *models.DatabaseData) error {
		assignID(&record.ID, data.Events, func(e *models.Event) string { return e.ID }, allocate)
		if err := validateRecord("event", record); err != nil {
			return err
		}
		if indexOf(data.Events, byEventID(record.ID)) >= 0 {
			return alreadyExists("event", record.ID)
		}
		data.Events = append(data.Events, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record.Clone(), nil
}

// Update merge-patches the event
func (r *EventRepository) Update(ctx context.Context, id string, patch models.Patch) (*models.Event, error) {
	var updated *models.Event
	err := r.database.Update(ctx, func(data *models.DatabaseData) error {
		i := indexOf(data.Events, byEventID(id))
		if i < 0 {
			return notFound("event", id)
		}
		current := data.Events[i]
		next, err := mergePatch("event", current, patch)
		if err != nil {
			return err
		}
		next.ID, next.CreatedAt = current.ID, current.CreatedAt
		next.Normalize()
		if err := validateRecord("event", next); err != nil {
			return err
		}
		data.Events[i] = next
		updated = next.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the event with the given id
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	return r.database.Update(ctx, func(data *models.DatabaseData) error {
		i := indexOf(data.Events, byEventID(id))
		if i < 0 {
			return notFound("event", id)
		}
		data.Events = remove(data.Events, i)
		return nil
	})
}

// RSVP adds userID to the attendee list. A repeat RSVP changes nothing and
// returns ErrAlreadyRSVPed.
func (r *EventRepository) RSVP(ctx context.Context, eventID, userID string) error {
	return r.database.Update(ctx, func(data *models.DatabaseData) error {
		i := indexOf(data.Events, byEventID(eventID))
		if i < 0 {
			return notFound("event", eventID)
		}
		event := data.Events[i]
		if event.IsAttending(userID) {
			return apperrors.ErrAlreadyRSVPed
		}
		event.Attendees = append(event.Attendees, userID)
		return nil
	})
}
