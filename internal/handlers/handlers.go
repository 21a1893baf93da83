package handlers

import (
	"github.com/uyeplus/app-campaign/internal/services"
)

// ErrorResponse is the generic error body returned to clients
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the generic success body returned to clients
type SuccessResponse struct {
	Message string `json:"message"`
}

// Handler carries the services the HTTP layer dispatches to
type Handler struct {
	eligibility *services.EligibilityService
	submission  *services.SubmissionService
}

// New creates the handler set
func New(eligibility *services.EligibilityService, submission *services.SubmissionService) *Handler {
	return &Handler{
		eligibility: eligibility,
		submission:  submission,
	}
}
