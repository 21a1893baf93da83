package models

// Constants for application status
const (
	ApplicationStatusPending  = "PENDING"
	ApplicationStatusApproved = "APPROVED"
	ApplicationStatusRejected = "REJECTED"
)

// ApplicationMetadata is the consent block recorded with every submission
type ApplicationMetadata struct {
	IP             string `json:"ip"`
	UserAgent      string `json:"user_agent"`
	Timestamp      string `json:"timestamp"`
	ConsentVersion string `json:"consent_version"`
}

// Application represents a committed campaign application
type Application struct {
	ID             string              `json:"id,omitempty"`
	CampaignID     string              `json:"campaign_id"`
	IdentityNumber string              `json:"identity_number"`
	FormData       map[string]any      `json:"form_data"`
	Status         string              `json:"status"`
	Metadata       ApplicationMetadata `json:"metadata"`
}

// EmailTemplate is the notification configuration resolved for a campaign
type EmailTemplate struct {
	Subject    string `json:"subject"`
	HTML       string `json:"html"`
	SenderName string `json:"sender_name"`
}
