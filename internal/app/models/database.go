package models

// DatabaseData is the root aggregate persisted as one document.
type DatabaseData struct {
	Users         []*User        `json:"users"`
	Opportunities []*Opportunity `json:"opportunities"`
	Events        []*Event       `json:"events"`
	Messages      []*Message     `json:"messages"`
	AuditLogs     []*AuditLog    `json:"auditLogs"`
}

// NewDatabaseData returns an aggregate with every collection empty.
func NewDatabaseData() *DatabaseData {
	d := &DatabaseData{}
	d.Normalize()
	return d
}

// Normalize replaces missing collections with empty ones, drops null entries
// and normalizes each record.
func (d *DatabaseData) Normalize() {
	d.Users = compact(d.Users)
	d.Opportunities = compact(d.Opportunities)
	d.Events = compact(d.Events)
	d.Messages = compact(d.Messages)
	d.AuditLogs = compact(d.AuditLogs)
	for _, u := range d.Users {
		u.Normalize()
	}
	for _, o := range d.Opportunities {
		o.Normalize()
	}
	for _, e := range d.Events {
		e.Normalize()
	}
}

// Clone deep-copies the aggregate.
func (d *DatabaseData) Clone() *DatabaseData {
	return &DatabaseData{
		Users:         cloneAll(d.Users, (*User).Clone),
		Opportunities: cloneAll(d.Opportunities, (*Opportunity).Clone),
		Events:        cloneAll(d.Events, (*Event).Clone),
		Messages:      cloneAll(d.Messages, (*Message).Clone),
		AuditLogs:     cloneAll(d.AuditLogs, (*AuditLog).Clone),
	}
}

func compact[T any](in []*T) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func cloneAll[T any](in []*T, clone func(*T) *T) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		out = append(out, clone(v))
	}
	return out
}
