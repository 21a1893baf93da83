package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/uyeplus/app-campaign/internal/config"
	"github.com/uyeplus/app-campaign/internal/models"
	"github.com/uyeplus/app-campaign/internal/observability"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// Client talks to the relational backend's REST query surface and stored
// procedures. All durable portal state lives behind it; this module treats
// every call as an opaque remote operation.
type Client struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	logger      *zap.Logger
	retryConfig RetryConfig
	sleep       func(time.Duration)
}

// RetryConfig defines retry behavior for backend read operations
type RetryConfig struct {
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig returns sensible defaults for backend retries
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		BaseDelay:     500 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
	}
}

// rpcSubmitResult is the secure-submit procedure's response envelope
type rpcSubmitResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ApplicationID string `json:"application_id"`
}

// SubmitResult is the outcome of the secure-submit procedure
type SubmitResult struct {
	Success       bool
	Message       string
	ApplicationID string
}

// NewClient creates a new backend client instance
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BackendURL,
		apiKey:  cfg.BackendAPIKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:      logger,
		retryConfig: DefaultRetryConfig(),
		sleep:       time.Sleep,
	}
}

// ListActiveCampaigns fetches all campaigns flagged active, newest first
func (c *Client) ListActiveCampaigns(ctx context.Context) ([]models.Campaign, error) {
	ctx, span := otel.Tracer("backend").Start(ctx, "backend.list_active_campaigns")
	defer span.End()

	var campaigns []models.Campaign
	query := url.Values{}
	query.Set("is_active", "eq.true")
	query.Set("order", "created_at.desc")

	err := c.withRetry(ctx, "list_active_campaigns", func() error {
		return c.get(ctx, "list_active_campaigns", "/rest/v1/campaigns", query, &campaigns)
	})
	c.countOperation("list_active_campaigns", err)
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

// GetCampaign fetches a single campaign by id
func (c *Client) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	ctx, span := otel.Tracer("backend").Start(ctx, "backend.get_campaign")
	defer span.End()

	var campaigns []models.Campaign
	query := url.Values{}
	query.Set("id", "eq."+id)
	query.Set("limit", "1")

	err := c.withRetry(ctx, "get_campaign", func() error {
		return c.get(ctx, "get_campaign", "/rest/v1/campaigns", query, &campaigns)
	})
	c.countOperation("get_campaign", err)
	if err != nil {
		return nil, err
	}
	if len(campaigns) == 0 {
		return nil, models.ErrCampaignNotFound
	}
	return &campaigns[0], nil
}

// VerifyMembership calls the membership stored procedure and reports whether
// the identity number is on the whitelist.
func (c *Client) VerifyMembership(ctx context.Context, identityNumber string) (bool, error) {
	ctx, span := otel.Tracer("backend").Start(ctx, "backend.verify_membership")
	defer span.End()

	var found bool
	err := c.withRetry(ctx, "verify_membership", func() error {
		return c.rpc(ctx, "verify_membership", map[string]any{
			"identity_number": identityNumber,
		}, &found)
	})
	c.countOperation("verify_membership", err)
	if err != nil {
		return false, err
	}
	return found, nil
}

// CheckExistingApplication calls the duplicate-check stored procedure and
// reports whether the identity already applied to the campaign.
func (c *Client) CheckExistingApplication(ctx context.Context, identityNumber, campaignID string) (bool, error) {
	ctx, span := otel.Tracer("backend").Start(ctx, "backend.check_existing_application")
	defer span.End()

	var exists bool
	err := c.withRetry(ctx, "check_existing_application", func() error {
		return c.rpc(ctx, "check_existing_application", map[string]any{
			"identity_number": identityNumber,
			"campaign_id":     campaignID,
		}, &exists)
	})
	c.countOperation("check_existing_application", err)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// SubmitApplication calls the secure-submit stored procedure. It is never
// retried here: the backend's uniqueness constraint on identity+campaign is
// the only exactly-once guard, and a blind retry could fire its side effects
// twice.
func (c *Client) SubmitApplication(ctx context.Context, app *models.Application, clientIP string) (*SubmitResult, error) {
	ctx, span := otel.Tracer("backend").Start(ctx, "backend.submit_application")
	defer span.End()

	var raw rpcSubmitResult
	err := c.rpc(ctx, "secure_submit_application", map[string]any{
		"campaign_id":     app.CampaignID,
		"identity_number": app.IdentityNumber,
		"form_data":       app.FormData,
		"metadata":        app.Metadata,
		"client_ip":       clientIP,
	}, &raw)
	c.countOperation("secure_submit_application", err)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		Success:       raw.Success,
		Message:       raw.Message,
		ApplicationID: raw.ApplicationID,
	}, nil
}

// get performs an authenticated GET against the REST query surface
func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Detail: "failed to create request", Err: err}
	}
	c.setHeaders(req)

	return c.do(req, op, out)
}

// rpc performs an authenticated POST to a stored procedure endpoint
func (c *Client) rpc(ctx context.Context, procedure string, params map[string]any, out any) error {
	jsonData, err := json.Marshal(params)
	if err != nil {
		return &Error{Op: procedure, Kind: KindDecode, Detail: "failed to marshal params", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/rpc/"+procedure, bytes.NewBuffer(jsonData))
	if err != nil {
		return &Error{Op: procedure, Kind: KindTransport, Detail: "failed to create request", Err: err}
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	err = c.do(req, procedure, out)

	// PostgREST reports procedure-level failures (unknown procedure, bad
	// arguments) as 4xx; tag them so logs separate a broken call from
	// transport trouble. 5xx stays KindHTTP and keeps its retry behavior.
	var be *Error
	if errors.As(err, &be) && be.Kind == KindHTTP && be.Status < 500 {
		be.Kind = KindRPC
	}
	return err
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		kind := KindTransport
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return &Error{Op: op, Kind: kind, Detail: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Detail: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Op:     op,
			Kind:   KindHTTP,
			Status: resp.StatusCode,
			Detail: truncate(string(body), 512),
		}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return &Error{Op: op, Kind: KindDecode, Detail: "failed to decode response", Err: err}
		}
	}
	return nil
}

// withRetry executes a function with exponential backoff retry logic
func (c *Client) withRetry(ctx context.Context, operation string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(c.retryConfig.BaseDelay) * math.Pow(c.retryConfig.BackoffFactor, float64(attempt-1)))
			if delay > c.retryConfig.MaxDelay {
				delay = c.retryConfig.MaxDelay
			}

			c.logger.Debug("retrying backend operation",
				zap.String("operation", operation),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				c.sleep(delay)
			}
		}

		lastErr = fn()
		if lastErr == nil {
			if attempt > 0 {
				c.logger.Info("backend operation succeeded after retry",
					zap.String("operation", operation),
					zap.Int("attempts", attempt+1))
			}
			return nil
		}

		if !c.isRetryableError(lastErr) {
			c.logger.Debug("non-retryable error, aborting",
				zap.String("operation", operation),
				zap.Error(lastErr))
			return lastErr
		}

		c.logger.Warn("backend operation failed, will retry",
			zap.String("operation", operation),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", c.retryConfig.MaxRetries),
			zap.Error(lastErr))
	}

	c.logger.Error("backend operation failed after all retries",
		zap.String("operation", operation),
		zap.Int("total_attempts", c.retryConfig.MaxRetries+1),
		zap.Error(lastErr))

	return fmt.Errorf("operation %s failed after %d attempts: %w", operation, c.retryConfig.MaxRetries+1, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (c *Client) isRetryableError(err error) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.retryable()
	}
	return false
}

func (c *Client) countOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	observability.BackendOperations.WithLabelValues(operation, status).Inc()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
