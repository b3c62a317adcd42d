package models

import (
	"slices"
	"time"
)

// Event is a gathering users can RSVP to. Organizer and attendees are user
// ids or role names.
type Event struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Location    string    `json:"location"`
	Organizer   string    `json:"organizer" validate:"required"`
	Attendees   []string  `json:"attendees"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *Event) IsAttending(identity string) bool {
	return slices.Contains(e.Attendees, identity)
}

func (e *Event) Normalize() {
	if e.Attendees == nil {
		e.Attendees = []string{}
	}
}

func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.Attendees = cloneStrings(e.Attendees)
	return &c
}
