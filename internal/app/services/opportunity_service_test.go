package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

func TestOpportunityService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	audit := new(MockAuditRecorder)
	svc := NewOpportunityService(repos.Opportunities, audit, zerolog.Nop())

	expectAudit(audit, models.ActionCreateOpportunity, "op_001").Once()
	created, err := svc.Create(ctx, alumniActor, &models.Opportunity{
		Title:        "Frontend Intern",
		Type:         models.OpportunityInternship,
		PostedBy:     "admin",
		Applications: []models.Application{{UserID: "students", Status: models.ApplicationAccepted}},
	})
	require.NoError(t, err)
	assert.Equal(t, "op_001", created.ID)
	assert.Equal(t, "alumni", created.PostedBy, "poster is always the caller")
	assert.Empty(t, created.Applications)
	assert.False(t, created.CreatedAt.IsZero())

	require.NoError(t, svc.Apply(ctx, studentActor, "op_001"))
	err = svc.Apply(ctx, studentActor, "op_001")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	op, err := svc.Get("op_001")
	require.NoError(t, err)
	require.Len(t, op.Applications, 1)
	assert.Equal(t, "students", op.Applications[0].UserID)

	_, err = svc.SetApplicationStatus(ctx, studentActor, "op_001", "students", models.ApplicationAccepted)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	op, err = svc.SetApplicationStatus(ctx, alumniActor, "op_001", "students", models.ApplicationAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, op.Applications[0].Status)

	audit.AssertExpectations(t)
}

func TestOpportunityService_UpdateGuardsOwnership(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	audit := new(MockAuditRecorder)
	audit.On("Record", mock.Anything, mock.Anything)
	svc := NewOpportunityService(repos.Opportunities, audit, zerolog.Nop())

	_, err := svc.Create(ctx, alumniActor, &models.Opportunity{Title: "Job", Type: models.OpportunityJob})
	require.NoError(t, err)

	_, err = svc.Update(ctx, studentActor, "op_001", models.Patch{"title": json.RawMessage(`"Hijacked"`)})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.Update(ctx, alumniActor, "op_001", models.Patch{
		"title":        json.RawMessage(`"Backend Job"`),
		"posted_by":    json.RawMessage(`"students"`),
		"applications": json.RawMessage(`[{"userId":"x","status":"accepted"}]`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Job", updated.Title)
	assert.Equal(t, "alumni", updated.PostedBy)
	assert.Empty(t, updated.Applications)

	assert.ErrorIs(t, svc.Delete(ctx, collegeActor, "op_001"), apperrors.ErrPermissionDenied)
	require.NoError(t, svc.Delete(ctx, adminActor, "op_001"))
	assert.ErrorIs(t, svc.Delete(ctx, adminActor, "op_001"), apperrors.ErrNotFound)
}
