package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/auth"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/repositories"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/helpers"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/metrics"
)

// AuditEntry describes one sensitive action before it is recorded
type AuditEntry struct {
	Actor      *auth.Principal
	Action     models.AuditAction
	TargetType string
	TargetID   string
	Details    string
}

// AuditRecorder appends entries to the audit trail. Recording never fails the
// action being audited; errors are logged.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

type auditRecorderImpl struct {
	repo   *repositories.AuditLogRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewAuditRecorder creates a recorder writing to repo
func NewAuditRecorder(repo *repositories.AuditLogRepository, logger zerolog.Logger) AuditRecorder {
	return &auditRecorderImpl{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (r *auditRecorderImpl) Record(ctx context.Context, entry AuditEntry) {
	now := r.now().UTC()
	log := &models.AuditLog{
		ID:         helpers.NewAuditID(now),
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Timestamp:  now,
		Details:    entry.Details,
	}
	if entry.Actor != nil {
		log.ActorID = entry.Actor.Identity()
		log.ActorRole = string(entry.Actor.Role)
	}

	if err := r.repo.Create(ctx, log); err != nil {
		r.logger.Error().Err(err).
			Str("action", string(entry.Action)).
			Str("targetId", entry.TargetID).
			Msg("Failed to record audit entry")
		return
	}
	metrics.AuditEntries.WithLabelValues(string(entry.Action)).Inc()
}
