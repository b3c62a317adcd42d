package models

import "time"

// AuditAction is a verb+noun code describing a sensitive action.
type AuditAction string

const (
	ActionCreateUser        AuditAction = "CREATE_USER"
	ActionUpdateUser        AuditAction = "UPDATE_USER"
	ActionDeleteUser        AuditAction = "DELETE_USER"
	ActionExportData        AuditAction = "EXPORT_DATA"
	ActionCreateOpportunity AuditAction = "CREATE_OPPORTUNITY"
	ActionDeleteOpportunity AuditAction = "DELETE_OPPORTUNITY"
	ActionCreateEvent       AuditAction = "CREATE_EVENT"
	ActionDeleteEvent       AuditAction = "DELETE_EVENT"
)

// AuditLog is an append-only record of a sensitive action.
type AuditLog struct {
	ID         string      `json:"id" validate:"required"`
	ActorID    string      `json:"actorId" validate:"required"`
	ActorRole  string      `json:"actorRole"`
	Action     AuditAction `json:"action" validate:"required"`
	TargetType string      `json:"targetType"`
	TargetID   string      `json:"targetId"`
	Timestamp  time.Time   `json:"timestamp"`
	Details    string      `json:"details"`
}

func (a *AuditLog) Clone() *AuditLog {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
