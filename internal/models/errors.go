package models

import "errors"

// Error constants for eligibility and submission operations
var (
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrCampaignInactive   = errors.New("campaign is not active")
	ErrNoActiveCampaign   = errors.New("no active campaign available")
	ErrMemberNotFound     = errors.New("membership record not found")
	ErrApplicationExists  = errors.New("application already exists for this campaign")
	ErrSessionInvalid     = errors.New("session credential is invalid or expired")
	ErrIdentityMismatch   = errors.New("identity does not match session credential")
	ErrFormInvalid        = errors.New("form payload failed validation")
	ErrNotificationFailed = errors.New("notification delivery failed")
	ErrSubmissionRejected = errors.New("backend rejected the submission")
)
