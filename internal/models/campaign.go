package models

import "time"

// Campaign represents a time-boxed campaign published by an institution
type Campaign struct {
	ID              string      `json:"id"`
	InstitutionID   string      `json:"institution_id,omitempty"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	IsActive        bool        `json:"is_active"`
	StartsAt        *time.Time  `json:"starts_at,omitempty"`
	EndsAt          *time.Time  `json:"ends_at,omitempty"`
	FormSchema      []FormField `json:"form_schema,omitempty"`
	EmailSubject    string      `json:"email_subject,omitempty"`
	EmailBody       string      `json:"email_body,omitempty"`
	EmailSenderName string      `json:"email_sender_name,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// IsCurrentlyActive reports whether the campaign accepts applications at the
// given instant. A campaign without start/end bounds is open whenever its
// active flag is set.
func (c *Campaign) IsCurrentlyActive(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return false
	}
	if c.EndsAt != nil && now.After(*c.EndsAt) {
		return false
	}
	return true
}
