package repositories

import (
	"context"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/db"
)

// AuditLogRepository is the append-only audit trail
type AuditLogRepository struct {
	database *db.Database
}

func NewAuditLogRepository(database *db.Database) *AuditLogRepository {
	return &AuditLogRepository{database: database}
}

// GetAll returns every entry in the order it was recorded
func (r *AuditLogRepository) GetAll() []*models.AuditLog {
	var out []*models.AuditLog
	r.database.View(func(data *models.DatabaseData) {
		out = make([]*models.AuditLog, 0, len(data.AuditLogs))
		for _, l := range data.AuditLogs {
			out = append(out, l.Clone())
		}
	})
	return out
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	record := entry.Clone()
	if err := validateRecord("audit log", record); err != nil {
		return err
	}
	return r.database.Update(ctx, func(data *models.DatabaseData) error {
		if indexOf(data.AuditLogs, func(l *models.AuditLog) bool { return l.ID == record.ID }) >= 0 {
			return alreadyExists("audit log", record.ID)
		}
		data.AuditLogs = append(data.AuditLogs, record)
		return nil
	})
}
