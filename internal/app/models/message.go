package models

import "time"

// Message is a direct message between two identities (user ids or roles).
type Message struct {
	ID        string    `json:"id" validate:"required"`
	From      string    `json:"from" validate:"required"`
	To        string    `json:"to" validate:"required"`
	Message   string    `json:"message" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Involves reports whether identity sent or received the message.
func (m *Message) Involves(identity string) bool {
	return m.From == identity || m.To == identity
}

// Between reports whether the message belongs to the a<->b thread.
func (m *Message) Between(a, b string) bool {
	return (m.From == a && m.To == b) || (m.From == b && m.To == a)
}

func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
