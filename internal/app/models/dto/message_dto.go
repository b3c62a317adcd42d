package dto

// SendMessageRequest is the body of a new direct message
type SendMessageRequest struct {
	To      string `json:"to" example:"students"`
	Message string `json:"message" example:"Happy to review your resume"`
}
