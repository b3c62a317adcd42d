package repositories

import (
	"github.com/Atharvasurya/punjab-alumni-sih/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	Users         *UserRepository
	Opportunities *OpportunityRepository
	Events        *EventRepository
	Messages      *MessageRepository
	AuditLogs     *AuditLogRepository
	Analytics     *AnalyticsRepository
}

// NewRepositories initializes all repositories over one database
func NewRepositories(database *db.Database) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Opportunities: NewOpportunityRepository(database),
		Events:        NewEventRepository(database),
		Messages:      NewMessageRepository(database),
		AuditLogs:     NewAuditLogRepository(database),
		Analytics:     NewAnalyticsRepository(database),
	}
}
