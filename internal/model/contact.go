package model

import "time"

// ContactMessage represents a message submitted via the contact form.
// Records are write-once: nothing in this service reads them back.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Subject is one of the categories offered by the contact form.
type Subject struct {
	Value string
	Label string
}

// Subjects lists the contact form categories in display order.
var Subjects = []Subject{
	{Value: "project", Label: "New Project"},
	{Value: "collaboration", Label: "Collaboration"},
	{Value: "consultation", Label: "Consultation"},
	{Value: "other", Label: "Other"},
}

// IsKnownSubject reports whether v is one of Subjects.
func IsKnownSubject(v string) bool {
	for _, s := range Subjects {
		if s.Value == v {
			return true
		}
	}
	return false
}
