package models

// Constants for eligibility status
const (
	EligibilityStatusInvalid   = "INVALID"
	EligibilityStatusError     = "ERROR"
	EligibilityStatusNotFound  = "NOT_FOUND"
	EligibilityStatusExists    = "EXISTS"
	EligibilityStatusNewMember = "NEW_MEMBER"
)

// EligibilityRequest represents the request body for an eligibility check
type EligibilityRequest struct {
	IdentityNumber string `json:"identityNumber" binding:"required"`
	CampaignID     string `json:"campaignId"`
}

// EligibilityResult is the outcome of an eligibility check
type EligibilityResult struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	SessionToken string `json:"sessionToken,omitempty"`
}

// SubmissionResult is the outcome of an application submission
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
