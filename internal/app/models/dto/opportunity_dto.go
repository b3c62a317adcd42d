package dto

import "github.com/Atharvasurya/punjab-alumni-sih/internal/app/models"

// ApplicationStatusRequest changes the status of one application
type ApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=pending accepted rejected" example:"accepted"`
}
