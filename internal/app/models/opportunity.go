package models

import "time"

// OpportunityType classifies a posting.
type OpportunityType string

const (
	OpportunityInternship    OpportunityType = "internship"
	OpportunityJob           OpportunityType = "job"
	OpportunityCollaboration OpportunityType = "collaboration"
	OpportunityFunding       OpportunityType = "funding"
)

// ApplicationStatus tracks where an application stands.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	return s == ApplicationPending || s == ApplicationAccepted || s == ApplicationRejected
}

// Opportunity is a job, internship, collaboration or funding posting.
type Opportunity struct {
	ID           string          `json:"id" validate:"required"`
	Title        string          `json:"title" validate:"required"`
	PostedBy     string          `json:"posted_by" validate:"required"`
	Type         OpportunityType `json:"type" validate:"required,oneof=internship job collaboration funding"`
	Description  string          `json:"description"`
	Location     string          `json:"location"`
	Starts       string          `json:"starts"`
	Deadline     string          `json:"deadline"`
	Requirements []string        `json:"requirements"`
	Applications []Application   `json:"applications" validate:"dive"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Application is one user's application to an opportunity.
type Application struct {
	UserID    string            `json:"userId" validate:"required"`
	AppliedAt time.Time         `json:"applied_at"`
	Status    ApplicationStatus `json:"status" validate:"required,oneof=pending accepted rejected"`
}

// HasApplicant reports whether userID already applied.
func (o *Opportunity) HasApplicant(userID string) bool {
	return o.applicationIndex(userID) >= 0
}

func (o *Opportunity) applicationIndex(userID string) int {
	for i, a := range o.Applications {
		if a.UserID == userID {
			return i
		}
	}
	return -1
}

// SetStatus updates the status of userID's application.
func (o *Opportunity) SetStatus(userID string, status ApplicationStatus) bool {
	i := o.applicationIndex(userID)
	if i < 0 {
		return false
	}
	o.Applications[i].Status = status
	return true
}

func (o *Opportunity) Normalize() {
	if o.Requirements == nil {
		o.Requirements = []string{}
	}
	if o.Applications == nil {
		o.Applications = []Application{}
	}
}

func (o *Opportunity) Clone() *Opportunity {
	if o == nil {
		return nil
	}
	c := *o
	c.Requirements = cloneStrings(o.Requirements)
	c.Applications = append([]Application{}, o.Applications...)
	return &c
}
