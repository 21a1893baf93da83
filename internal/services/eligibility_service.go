package services

import (
	"context"
	"errors"

	"github.com/uyeplus/app-campaign/internal/models"
	"github.com/uyeplus/app-campaign/internal/observability"
	"github.com/uyeplus/app-campaign/internal/session"
	"github.com/uyeplus/app-campaign/internal/utils"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// PurposeCampaignApplication scopes session credentials to the application flow
const PurposeCampaignApplication = "campaign-application"

// MembershipChecker is the slice of the backend client eligibility needs
type MembershipChecker interface {
	VerifyMembership(ctx context.Context, identityNumber string) (bool, error)
	CheckExistingApplication(ctx context.Context, identityNumber, campaignID string) (bool, error)
}

// CampaignResolver resolves the campaign a request targets
type CampaignResolver interface {
	ResolveTarget(ctx context.Context, campaignID string) (*models.Campaign, error)
}

// EligibilityService verifies an identity against the membership whitelist
// and issues the session credential that authorizes one submission.
type EligibilityService struct {
	backend   MembershipChecker
	campaigns CampaignResolver
	codec     *session.Codec
	logger    *zap.Logger
}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService(backend MembershipChecker, campaigns CampaignResolver, codec *session.Codec, logger *zap.Logger) *EligibilityService {
	return &EligibilityService{
		backend:   backend,
		campaigns: campaigns,
		codec:     codec,
		logger:    logger,
	}
}

// CheckEligibility runs the verification sequence: checksum, target campaign,
// membership, duplicate application, credential issue. It short-circuits on
// the first failure and never exposes backend detail in its messages.
func (s *EligibilityService) CheckEligibility(ctx context.Context, identityNumber, campaignID string) *models.EligibilityResult {
	ctx, span := otel.Tracer("services").Start(ctx, "eligibility.check")
	defer span.End()

	result := s.check(ctx, identityNumber, campaignID)
	observability.EligibilityChecks.WithLabelValues(result.Status).Inc()
	return result
}

func (s *EligibilityService) check(ctx context.Context, identityNumber, campaignID string) *models.EligibilityResult {
	logger := s.logger.With(zap.String("identity", observability.MaskIdentity(identityNumber)))

	if !utils.ValidateIdentityNumber(identityNumber) {
		return &models.EligibilityResult{
			Status:  models.EligibilityStatusInvalid,
			Message: "The identity number is not valid.",
		}
	}

	campaign, err := s.campaigns.ResolveTarget(ctx, campaignID)
	if err != nil {
		if isBusinessError(err) {
			logger.Warn("no open target campaign",
				zap.String("campaign_id", campaignID),
				zap.Error(err))
			return businessResult(err)
		}
		logger.Error("failed to resolve target campaign",
			zap.String("campaign_id", campaignID),
			zap.Error(err))
		return &models.EligibilityResult{
			Status:  models.EligibilityStatusError,
			Message: "The service is temporarily unavailable. Please try again later.",
		}
	}
	logger = logger.With(zap.String("campaign_id", campaign.ID))

	found, err := s.backend.VerifyMembership(ctx, identityNumber)
	if err != nil {
		logger.Error("membership verification failed", zap.Error(err))
		return &models.EligibilityResult{
			Status:  models.EligibilityStatusError,
			Message: "The service is temporarily unavailable. Please try again later.",
		}
	}
	if !found {
		return businessResult(models.ErrMemberNotFound)
	}

	exists, err := s.backend.CheckExistingApplication(ctx, identityNumber, campaign.ID)
	if err != nil {
		logger.Error("duplicate application check failed", zap.Error(err))
		return &models.EligibilityResult{
			Status:  models.EligibilityStatusError,
			Message: "The service is temporarily unavailable. Please try again later.",
		}
	}
	if exists {
		return businessResult(models.ErrApplicationExists)
	}

	token, err := s.codec.Issue(identityNumber, session.Scope{
		CampaignID: campaign.ID,
		Purpose:    PurposeCampaignApplication,
	})
	if err != nil {
		logger.Error("failed to issue session credential", zap.Error(err))
		return &models.EligibilityResult{
			Status:  models.EligibilityStatusError,
			Message: "The service is temporarily unavailable. Please try again later.",
		}
	}

	logger.Info("eligibility confirmed, credential issued")
	return &models.EligibilityResult{
		Status:       models.EligibilityStatusNewMember,
		Message:      "Verification successful. You can continue with your application.",
		SessionToken: token,
	}
}

// isBusinessError reports whether the error is an expected business-state
// condition rather than an integration failure.
func isBusinessError(err error) bool {
	return errors.Is(err, models.ErrCampaignNotFound) ||
		errors.Is(err, models.ErrCampaignInactive) ||
		errors.Is(err, models.ErrNoActiveCampaign)
}

// businessResult maps an expected business condition to the client-facing
// eligibility result
func businessResult(err error) *models.EligibilityResult {
	switch {
	case errors.Is(err, models.ErrMemberNotFound):
		return &models.EligibilityResult{
			Status:  models.EligibilityStatusNotFound,
			Message: "No membership record was found for this identity number.",
		}
	case errors.Is(err, models.ErrApplicationExists):
		return &models.EligibilityResult{
			Status:  models.EligibilityStatusExists,
			Message: "An application for this campaign already exists.",
		}
	}
	return &models.EligibilityResult{
		Status:  models.EligibilityStatusError,
		Message: "Applications are not open at the moment. Please try again later.",
	}
}
