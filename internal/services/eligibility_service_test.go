package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyeplus/app-campaign/internal/models"
	"github.com/uyeplus/app-campaign/internal/session"
	"go.uber.org/zap"
)

const validIdentity = "16049008266"

// fakeBackend implements MembershipChecker with scripted answers and call
// recording
type fakeBackend struct {
	memberFound    bool
	memberErr      error
	appExists      bool
	appExistsErr   error
	membershipCall int
	duplicateCalls []string
}

func (f *fakeBackend) VerifyMembership(_ context.Context, identityNumber string) (bool, error) {
	f.membershipCall++
	return f.memberFound, f.memberErr
}

func (f *fakeBackend) CheckExistingApplication(_ context.Context, identityNumber, campaignID string) (bool, error) {
	f.duplicateCalls = append(f.duplicateCalls, campaignID)
	return f.appExists, f.appExistsErr
}

// fakeResolver implements CampaignResolver
type fakeResolver struct {
	campaign *models.Campaign
	err      error
	lastHint string
}

func (f *fakeResolver) ResolveTarget(_ context.Context, campaignID string) (*models.Campaign, error) {
	f.lastHint = campaignID
	if f.err != nil {
		return nil, f.err
	}
	return f.campaign, nil
}

func testCampaign() *models.Campaign {
	return &models.Campaign{
		ID:       "camp-1",
		Code:     "uyeplus",
		Name:     "Spring Campaign",
		IsActive: true,
	}
}

func newEligibilityFixture(backend *fakeBackend, resolver *fakeResolver) (*EligibilityService, *session.Codec) {
	codec := session.NewCodec("test-secret", 15*time.Minute)
	svc := NewEligibilityService(backend, resolver, codec, zap.NewNop())
	return svc, codec
}

func TestCheckEligibility_InvalidChecksum(t *testing.T) {
	backend := &fakeBackend{}
	svc, _ := newEligibilityFixture(backend, &fakeResolver{campaign: testCampaign()})

	result := svc.CheckEligibility(context.Background(), "06049008266", "")

	assert.Equal(t, models.EligibilityStatusInvalid, result.Status)
	assert.Empty(t, result.SessionToken)
	// The backend is never consulted for an invalid number
	assert.Zero(t, backend.membershipCall)
}

func TestCheckEligibility_NoActiveCampaign(t *testing.T) {
	backend := &fakeBackend{}
	svc, _ := newEligibilityFixture(backend, &fakeResolver{err: models.ErrNoActiveCampaign})

	result := svc.CheckEligibility(context.Background(), validIdentity, "")

	assert.Equal(t, models.EligibilityStatusError, result.Status)
	assert.Empty(t, result.SessionToken)
	assert.Zero(t, backend.membershipCall)
}

func TestCheckEligibility_MemberNotFound(t *testing.T) {
	backend := &fakeBackend{memberFound: false}
	svc, _ := newEligibilityFixture(backend, &fakeResolver{campaign: testCampaign()})

	result := svc.CheckEligibility(context.Background(), validIdentity, "")

	assert.Equal(t, models.EligibilityStatusNotFound, result.Status)
	assert.Empty(t, result.SessionToken)
	// The duplicate check is skipped for non-members
	assert.Empty(t, backend.duplicateCalls)
}

func TestCheckEligibility_ExistingApplication(t *testing.T) {
	backend := &fakeBackend{memberFound: true, appExists: true}
	svc, _ := newEligibilityFixture(backend, &fakeResolver{campaign: testCampaign()})

	result := svc.CheckEligibility(context.Background(), validIdentity, "")

	assert.Equal(t, models.EligibilityStatusExists, result.Status)
	assert.Empty(t, result.SessionToken)
	assert.Equal(t, []string{"camp-1"}, backend.duplicateCalls)
}

func TestCheckEligibility_NewMember(t *testing.T) {
	backend := &fakeBackend{memberFound: true, appExists: false}
	resolver := &fakeResolver{campaign: testCampaign()}
	svc, codec := newEligibilityFixture(backend, resolver)

	result := svc.CheckEligibility(context.Background(), validIdentity, "camp-1")

	require.Equal(t, models.EligibilityStatusNewMember, result.Status)
	require.NotEmpty(t, result.SessionToken)
	assert.Equal(t, "camp-1", resolver.lastHint)

	// The issued credential is scoped to the resolved campaign and purpose
	identity, err := codec.Verify(result.SessionToken, session.Scope{
		CampaignID: "camp-1",
		Purpose:    PurposeCampaignApplication,
	})
	require.NoError(t, err)
	assert.Equal(t, validIdentity, identity)

	// And rejects a different campaign scope
	_, err = codec.Verify(result.SessionToken, session.Scope{
		CampaignID: "camp-2",
		Purpose:    PurposeCampaignApplication,
	})
	assert.Error(t, err)
}

func TestCheckEligibility_BackendErrorsMapToGenericStatus(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
	}{
		{
			name:    "Membership check fails",
			backend: &fakeBackend{memberErr: errors.New("rpc: connection reset")},
		},
		{
			name:    "Duplicate check fails",
			backend: &fakeBackend{memberFound: true, appExistsErr: errors.New("rpc: timeout")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newEligibilityFixture(tt.backend, &fakeResolver{campaign: testCampaign()})

			result := svc.CheckEligibility(context.Background(), validIdentity, "")

			assert.Equal(t, models.EligibilityStatusError, result.Status)
			assert.Empty(t, result.SessionToken)
			// The generic message never leaks backend detail
			assert.NotContains(t, result.Message, "rpc")
		})
	}
}
