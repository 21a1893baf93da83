package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyeplus/app-campaign/internal/models"
)

const testSecret = "unit-test-signing-secret"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	return NewCodec(testSecret, 15*time.Minute)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	scope := Scope{CampaignID: "camp-1", Purpose: "campaign-application"}

	token, err := codec.Issue("16049008266", scope)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := codec.Verify(token, scope)
	require.NoError(t, err)
	assert.Equal(t, "16049008266", identity)
}

func TestCodec_RoundTripWithoutScope(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("16049008266", Scope{})
	require.NoError(t, err)

	identity, err := codec.Verify(token, Scope{})
	require.NoError(t, err)
	assert.Equal(t, "16049008266", identity)
}

func TestCodec_Expiry(t *testing.T) {
	codec := newTestCodec(t)
	codec.now = func() time.Time { return time.Now().Add(-30 * time.Minute) }

	token, err := codec.Issue("16049008266", Scope{})
	require.NoError(t, err)

	// Signature is valid but exp is 15 minutes in the past
	codec.now = time.Now
	_, err = codec.Verify(token, Scope{})
	assert.ErrorIs(t, err, models.ErrSessionInvalid)
}

func TestCodec_TamperedSignature(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("16049008266", Scope{CampaignID: "camp-1"})
	require.NoError(t, err)

	parts := strings.SplitN(token, ".", 2)
	require.Len(t, parts, 2)

	// Flip every hex character of the signature in turn
	sig := parts[1]
	for i := 0; i < len(sig); i++ {
		flipped := []byte(sig)
		if flipped[i] == '0' {
			flipped[i] = '1'
		} else {
			flipped[i] = '0'
		}
		tampered := parts[0] + "." + string(flipped)
		_, err := codec.Verify(tampered, Scope{CampaignID: "camp-1"})
		assert.ErrorIs(t, err, models.ErrSessionInvalid, "flipping signature byte %d must invalidate the credential", i)
	}
}

func TestCodec_TamperedPayload(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("16049008266", Scope{})
	require.NoError(t, err)

	other, err := codec.Issue("10000000078", Scope{})
	require.NoError(t, err)

	// Splice the payload of one credential onto the signature of another
	tampered := strings.SplitN(other, ".", 2)[0] + "." + strings.SplitN(token, ".", 2)[1]
	_, err = codec.Verify(tampered, Scope{})
	assert.ErrorIs(t, err, models.ErrSessionInvalid)
}

func TestCodec_ScopeMismatch(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("16049008266", Scope{CampaignID: "A"})
	require.NoError(t, err)

	_, err = codec.Verify(token, Scope{CampaignID: "B"})
	assert.ErrorIs(t, err, models.ErrSessionInvalid)
}

func TestCodec_PurposeMismatch(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("16049008266", Scope{CampaignID: "A", Purpose: "campaign-application"})
	require.NoError(t, err)

	_, err = codec.Verify(token, Scope{CampaignID: "A", Purpose: "other"})
	assert.ErrorIs(t, err, models.ErrSessionInvalid)
}

func TestCodec_MissingScopeInPayloadIsRejected(t *testing.T) {
	codec := newTestCodec(t)

	// Issued without a campaign scope; a caller demanding one must fail
	token, err := codec.Issue("16049008266", Scope{})
	require.NoError(t, err)

	_, err = codec.Verify(token, Scope{CampaignID: "A"})
	assert.ErrorIs(t, err, models.ErrSessionInvalid)
}

func TestCodec_MalformedCredentials(t *testing.T) {
	codec := newTestCodec(t)

	malformed := []string{
		"",
		"justonepart",
		".onlysignature",
		"onlypayload.",
		"a.b.c",
		"not-base64!!.deadbeef",
	}
	for _, credential := range malformed {
		_, err := codec.Verify(credential, Scope{})
		assert.ErrorIs(t, err, models.ErrSessionInvalid, "credential %q must be rejected", credential)
	}
}

func TestCodec_DifferentSecretsDoNotVerify(t *testing.T) {
	issuer := NewCodec("secret-a", 15*time.Minute)
	verifier := NewCodec("secret-b", 15*time.Minute)

	token, err := issuer.Issue("16049008266", Scope{})
	require.NoError(t, err)

	_, err = verifier.Verify(token, Scope{})
	assert.ErrorIs(t, err, models.ErrSessionInvalid)
}
