package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/uyeplus/app-campaign/internal/models"
	"github.com/uyeplus/app-campaign/internal/observability"
	"github.com/uyeplus/app-campaign/internal/redisclient"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// CampaignFetcher is the slice of the backend client campaign resolution needs
type CampaignFetcher interface {
	ListActiveCampaigns(ctx context.Context) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*models.Campaign, error)
}

// CampaignService resolves the target campaign for eligibility checks and
// submissions, with a redis cache in front of the backend queries.
type CampaignService struct {
	fetcher     CampaignFetcher
	cache       *redisclient.Client
	cacheTTL    time.Duration
	defaultCode string
	logger      *zap.Logger
	now         func() time.Time
}

// NewCampaignService creates a new campaign service. The cache may be nil,
// in which case every resolution hits the backend.
func NewCampaignService(fetcher CampaignFetcher, cache *redisclient.Client, cacheTTL time.Duration, defaultCode string, logger *zap.Logger) *CampaignService {
	return &CampaignService{
		fetcher:     fetcher,
		cache:       cache,
		cacheTTL:    cacheTTL,
		defaultCode: defaultCode,
		logger:      logger,
		now:         time.Now,
	}
}

// ResolveTarget returns the campaign a request targets. With an explicit id
// the campaign must exist and be currently active. Without one, the newest
// active campaign matching the configured default code wins, then the newest
// whose name contains the code, then the newest active campaign overall.
func (s *CampaignService) ResolveTarget(ctx context.Context, campaignID string) (*models.Campaign, error) {
	ctx, span := otel.Tracer("services").Start(ctx, "campaign.resolve_target")
	defer span.End()

	if campaignID != "" {
		return s.resolveByID(ctx, campaignID)
	}
	return s.resolveDefault(ctx)
}

func (s *CampaignService) resolveByID(ctx context.Context, campaignID string) (*models.Campaign, error) {
	cacheKey := "campaign:id:" + campaignID
	if campaign := s.cached(ctx, cacheKey); campaign != nil {
		if !campaign.IsCurrentlyActive(s.now()) {
			return nil, models.ErrCampaignInactive
		}
		return campaign, nil
	}

	campaign, err := s.fetcher.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !campaign.IsCurrentlyActive(s.now()) {
		return nil, models.ErrCampaignInactive
	}

	s.store(ctx, cacheKey, campaign)
	return campaign, nil
}

func (s *CampaignService) resolveDefault(ctx context.Context) (*models.Campaign, error) {
	cacheKey := "campaign:resolved:" + s.defaultCode
	if campaign := s.cached(ctx, cacheKey); campaign != nil {
		if campaign.IsCurrentlyActive(s.now()) {
			return campaign, nil
		}
		// Stale entry, fall through to the backend
		s.invalidate(ctx, cacheKey)
	}

	campaigns, err := s.fetcher.ListActiveCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	// Listing is newest-first; keep only campaigns open right now
	now := s.now()
	open := campaigns[:0:0]
	for _, c := range campaigns {
		if c.IsCurrentlyActive(now) {
			open = append(open, c)
		}
	}
	if len(open) == 0 {
		return nil, models.ErrNoActiveCampaign
	}

	target := &open[0]
	for i := range open {
		if open[i].Code == s.defaultCode {
			target = &open[i]
			break
		}
	}
	if target.Code != s.defaultCode {
		for i := range open {
			if strings.Contains(strings.ToLower(open[i].Name), strings.ToLower(s.defaultCode)) {
				target = &open[i]
				break
			}
		}
	}

	s.store(ctx, cacheKey, target)
	return target, nil
}

// cached returns a cached campaign, or nil on miss or cache failure
func (s *CampaignService) cached(ctx context.Context, key string) *models.Campaign {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		observability.CacheHits.WithLabelValues("campaign_miss").Inc()
		return nil
	}

	var campaign models.Campaign
	if err := json.Unmarshal([]byte(data), &campaign); err != nil {
		s.logger.Warn("failed to decode cached campaign", zap.String("key", key), zap.Error(err))
		return nil
	}
	observability.CacheHits.WithLabelValues("campaign_hit").Inc()
	return &campaign
}

func (s *CampaignService) store(ctx context.Context, key string, campaign *models.Campaign) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(campaign)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache campaign", zap.String("key", key), zap.Error(err))
	}
}

func (s *CampaignService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("failed to invalidate campaign cache", zap.String("key", key), zap.Error(err))
	}
}
