package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

func TestEventService(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	audit := new(MockAuditRecorder)
	svc := NewEventService(repos.Events, audit, zerolog.Nop())

	expectAudit(audit, models.ActionCreateEvent, "ev_001").Once()
	created, err := svc.Create(ctx, collegeActor, &models.Event{Title: "Alumni Meet 2025", Organizer: "students"})
	require.NoError(t, err)
	assert.Equal(t, "ev_001", created.ID)
	assert.Equal(t, "collage", created.Organizer)
	assert.Equal(t, []string{}, created.Attendees)

	require.NoError(t, svc.RSVP(ctx, alumniActor, "ev_001"))
	assert.ErrorIs(t, svc.RSVP(ctx, alumniActor, "ev_001"), apperrors.ErrAlreadyRSVPed)
	require.NoError(t, svc.RSVP(ctx, studentActor, "ev_001"))

	ev, err := svc.Get("ev_001")
	require.NoError(t, err)
	assert.Equal(t, []string{"alumni", "students"}, ev.Attendees)

	_, err = svc.Update(ctx, alumniActor, "ev_001", models.Patch{"title": json.RawMessage(`"x"`)})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.Update(ctx, collegeActor, "ev_001", models.Patch{
		"location":  json.RawMessage(`"Chandigarh"`),
		"organizer": json.RawMessage(`"alumni"`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Chandigarh", updated.Location)
	assert.Equal(t, "collage", updated.Organizer)

	expectAudit(audit, models.ActionDeleteEvent, "ev_001").Once()
	require.NoError(t, svc.Delete(ctx, adminActor, "ev_001"))
	assert.Empty(t, svc.List())
	audit.AssertExpectations(t)
}
