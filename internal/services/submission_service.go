package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uyeplus/app-campaign/internal/backend"
	"github.com/uyeplus/app-campaign/internal/mailer"
	"github.com/uyeplus/app-campaign/internal/models"
	"github.com/uyeplus/app-campaign/internal/observability"
	"github.com/uyeplus/app-campaign/internal/session"
	"github.com/uyeplus/app-campaign/internal/utils"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// Default notification template used when a campaign has none configured
const (
	defaultEmailSubject = "New campaign application - {{campaignName}}"
	defaultEmailBody    = `<h2>New campaign application</h2>
<p>A new application was submitted to <strong>{{campaignName}}</strong>.</p>
<p>Identity number: {{identityNumber}}<br>
Submitted at: {{submittedAt}}</p>`
)

// Payload keys the portal itself consumes; they are not form fields
const (
	payloadKeyIdentity = "identityNumber"
	payloadKeyToken    = "sessionToken"
	payloadKeyCampaign = "campaignId"
)

// ApplicationSubmitter is the slice of the backend client submissions need
type ApplicationSubmitter interface {
	SubmitApplication(ctx context.Context, app *models.Application, clientIP string) (*backend.SubmitResult, error)
}

// Notifier delivers the operator notification for a submission
type Notifier interface {
	Send(ctx context.Context, msg mailer.Message) (string, error)
}

// SubmissionInput wraps the flat form payload with request metadata
type SubmissionInput struct {
	Payload   map[string]any
	ClientIP  string
	UserAgent string
}

// SubmissionService validates a filled application form against the
// campaign's schema, re-verifies the session credential and commits the
// application through the backend's secure-submit procedure.
type SubmissionService struct {
	backend        ApplicationSubmitter
	campaigns      CampaignResolver
	codec          *session.Codec
	notifier       Notifier
	notifyEmail    string
	consentVersion string
	logger         *zap.Logger
	now            func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(backend ApplicationSubmitter, campaigns CampaignResolver, codec *session.Codec, notifier Notifier, notifyEmail, consentVersion string, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		backend:        backend,
		campaigns:      campaigns,
		codec:          codec,
		notifier:       notifier,
		notifyEmail:    notifyEmail,
		consentVersion: consentVersion,
		logger:         logger,
		now:            time.Now,
	}
}

// rejectionError carries the backend's client-safe rejection text
type rejectionError struct {
	message string
}

func (e *rejectionError) Error() string { return e.message }
func (e *rejectionError) Unwrap() error { return models.ErrSubmissionRejected }

// Submit runs the submission sequence. The notification is sent before the
// commit and a terminal delivery failure aborts the submission: the operator
// must never stay unaware of an accepted application.
func (s *SubmissionService) Submit(ctx context.Context, input SubmissionInput) *models.SubmissionResult {
	ctx, span := otel.Tracer("services").Start(ctx, "submission.submit")
	defer span.End()

	if err := s.submit(ctx, input); err != nil {
		observability.ApplicationSubmissions.WithLabelValues("failure").Inc()
		return &models.SubmissionResult{Message: clientMessage(err)}
	}
	observability.ApplicationSubmissions.WithLabelValues("success").Inc()
	return &models.SubmissionResult{Success: true, Message: "Your application has been received."}
}

// clientMessage maps a submission failure to the message shown to the end
// user. Only a backend rejection carries its own text through; everything
// else collapses to a fixed message for its class.
func clientMessage(err error) string {
	var rejection *rejectionError
	switch {
	case errors.Is(err, models.ErrSessionInvalid), errors.Is(err, models.ErrIdentityMismatch):
		return "Your session is invalid or has expired. Please verify your identity again."
	case errors.Is(err, models.ErrFormInvalid):
		return "The form contains missing or invalid fields. Please review your input."
	case errors.As(err, &rejection):
		return rejection.message
	}
	return "The application could not be processed. Please try again later."
}

func (s *SubmissionService) submit(ctx context.Context, input SubmissionInput) error {
	payload := utils.CoerceFormPayload(input.Payload)

	identityNumber, _ := payload[payloadKeyIdentity].(string)
	token, _ := payload[payloadKeyToken].(string)
	campaignHint, _ := payload[payloadKeyCampaign].(string)
	logger := s.logger.With(zap.String("identity", observability.MaskIdentity(identityNumber)))

	if token == "" {
		return models.ErrSessionInvalid
	}

	campaign, err := s.campaigns.ResolveTarget(ctx, campaignHint)
	if err != nil {
		logger.Error("failed to resolve target campaign for submission",
			zap.String("campaign_id", campaignHint),
			zap.Error(err))
		return err
	}
	logger = logger.With(zap.String("campaign_id", campaign.ID))

	verifiedIdentity, err := s.codec.Verify(token, session.Scope{
		CampaignID: campaign.ID,
		Purpose:    PurposeCampaignApplication,
	})
	if err != nil {
		logger.Warn("session credential rejected", zap.Error(err))
		return err
	}
	if identityNumber != verifiedIdentity {
		logger.Warn("payload identity does not match verified identity")
		return models.ErrIdentityMismatch
	}

	schema := campaign.FormSchema
	if len(schema) == 0 {
		schema = models.DefaultFormSchema()
	}
	formData := formFields(payload)
	if validation := utils.ValidateFormPayload(formData, schema); !validation.IsValid {
		logger.Info("form payload failed validation",
			zap.Any("errors", validation.Errors),
			zap.Any("payload", observability.MaskSensitiveData(formData)))
		return models.ErrFormInvalid
	}

	app := &models.Application{
		CampaignID:     campaign.ID,
		IdentityNumber: verifiedIdentity,
		FormData:       formData,
		Status:         models.ApplicationStatusPending,
		Metadata: models.ApplicationMetadata{
			IP:             input.ClientIP,
			UserAgent:      input.UserAgent,
			Timestamp:      s.now().UTC().Format(time.RFC3339),
			ConsentVersion: s.consentVersion,
		},
	}

	if err := s.notify(ctx, campaign, app); err != nil {
		logger.Error("notification delivery failed, aborting submission", zap.Error(err))
		return fmt.Errorf("%w: %v", models.ErrNotificationFailed, err)
	}

	submitResult, err := s.backend.SubmitApplication(ctx, app, input.ClientIP)
	if err != nil {
		logger.Error("secure submit failed", zap.Error(err))
		return err
	}
	if !submitResult.Success {
		logger.Warn("backend rejected submission", zap.String("message", submitResult.Message))
		if submitResult.Message == "" {
			return models.ErrSubmissionRejected
		}
		return &rejectionError{message: submitResult.Message}
	}

	logger.Info("application submitted",
		zap.String("application_id", submitResult.ApplicationID))
	return nil
}

// notify renders and sends the operator notification for the submission
func (s *SubmissionService) notify(ctx context.Context, campaign *models.Campaign, app *models.Application) error {
	tpl := emailTemplate(campaign)

	data := map[string]string{
		"campaignId":     campaign.ID,
		"campaignName":   campaign.Name,
		"identityNumber": app.IdentityNumber,
		"submittedAt":    app.Metadata.Timestamp,
	}
	for key, value := range app.FormData {
		data[key] = fmt.Sprintf("%v", value)
	}

	_, err := s.notifier.Send(ctx, mailer.Message{
		To:         s.notifyEmail,
		Subject:    tpl.Subject,
		HTML:       tpl.HTML,
		SenderName: tpl.SenderName,
		Data:       data,
	})
	return err
}

// emailTemplate resolves the campaign's notification template, falling back
// to the system defaults field by field
func emailTemplate(campaign *models.Campaign) models.EmailTemplate {
	tpl := models.EmailTemplate{
		Subject:    campaign.EmailSubject,
		HTML:       campaign.EmailBody,
		SenderName: campaign.EmailSenderName,
	}
	if tpl.Subject == "" {
		tpl.Subject = defaultEmailSubject
	}
	if tpl.HTML == "" {
		tpl.HTML = defaultEmailBody
	}
	return tpl
}

// formFields strips the portal-consumed keys, leaving only form fields
func formFields(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		switch key {
		case payloadKeyIdentity, payloadKeyToken, payloadKeyCampaign:
			continue
		}
		out[key] = value
	}
	return out
}
