package repositories

import (
	"context"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/db"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/apperrors"
)

// MessageRepository handles direct messages
type MessageRepository struct {
	database *db.Database
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(database *db.Database) *MessageRepository {
	return &MessageRepository{database: database}
}

// GetAll returns every message in storage order
func (r *MessageRepository) GetAll() []*models.Message {
	return r.collect(func(*models.Message) bool { return true })
}

// GetMessages returns the messages user sent or received. When other is set
// only the thread between the two is returned.
func (r *MessageRepository) GetMessages(user, other string) []*models.Message {
	if other != "" {
		return r.collect(func(m *models.Message) bool { return m.Between(user, other) })
	}
	return r.collect(func(m *models.Message) bool { return m.Involves(user) })
}

func (r *MessageRepository) collect(keep func(*models.Message) bool) []*models.Message {
	out := []*models.Message{}
	r.database.View(func(data *models.DatabaseData) {
		for _, m := range data.Messages {
			if keep(m) {
				out = append(out, m.Clone())
			}
		}
	})
	return out
}

// Create validates and appends a message
func (r *MessageRepository) Create(ctx context.Context, message *models.Message, allocate IDAllocator) (*models.Message, error) {
	record := message.Clone()
	err := r.database.Update(ctx, func(data *models.DatabaseData) error {
		assignID(&record.ID, data.Messages, func(m *models.Message) string { return m.ID }, allocate)
		if err := validateRecord("message", record); err != nil {
			return err
		}
		if indexOf(data.Messages, func(m *models.Message) bool { return m.ID == record.ID }) >= 0 {
			return alreadyExists("message", record.ID)
		}
		data.Messages = append(data.Messages, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record.Clone(), nil
}

// MarkRead flags the message as read. Only the recipient may do so.
func (r *MessageRepository) MarkRead(ctx context.Context, id, reader string) (*models.Message, error) {
	var updated *models.Message
	err := r.database.Update(ctx, func(data *models.DatabaseData) error {
		i := indexOf(data.Messages, func(m *models.Message) bool { return m.ID == id })
		if i < 0 {
			return notFound("message", id)
		}
		m := data.Messages[i]
		if m.To != reader {
			return apperrors.NewForbiddenError("only the recipient can mark a message as read")
		}
		m.Read = true
		updated = m.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
