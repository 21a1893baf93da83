package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/uyeplus/app-campaign/internal/models"
)

// Scope binds a credential to one campaign and one purpose. Empty fields in
// an expected scope are not checked; non-empty fields must match the payload
// exactly, and a payload that omits an expected field fails verification.
type Scope struct {
	CampaignID string
	Purpose    string
}

// payload is the signed credential body. Exp is epoch milliseconds.
type payload struct {
	Identity   string `json:"identity"`
	Exp        int64  `json:"exp"`
	CampaignID string `json:"campaignId,omitempty"`
	Purpose    string `json:"purpose,omitempty"`
}

// Codec issues and verifies signed, expiring, scope-bound session
// credentials. The wire format is base64(JSON payload) + "." + hex(HMAC-SHA256).
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a codec with the process signing secret and credential TTL
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a credential for a verified identity, scoped to the given
// campaign and purpose, expiring after the codec TTL.
func (c *Codec) Issue(identity string, scope Scope) (string, error) {
	body := payload{
		Identity:   identity,
		Exp:        c.now().Add(c.ttl).UnixMilli(),
		CampaignID: scope.CampaignID,
		Purpose:    scope.Purpose,
	}

	serialized, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to serialize credential payload: %w", err)
	}

	return base64.StdEncoding.EncodeToString(serialized) + "." + c.sign(serialized), nil
}

// Verify checks the credential's signature, expiry and scope and returns the
// embedded identity. Any failure returns models.ErrSessionInvalid; callers
// surface nothing more specific to the client.
func (c *Codec) Verify(credential string, expected Scope) (string, error) {
	parts := strings.Split(credential, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", models.ErrSessionInvalid
	}

	serialized, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return "", models.ErrSessionInvalid
	}

	if !hmac.Equal([]byte(c.sign(serialized)), []byte(parts[1])) {
		return "", models.ErrSessionInvalid
	}

	var body payload
	if err := json.Unmarshal(serialized, &body); err != nil {
		return "", models.ErrSessionInvalid
	}

	if body.Identity == "" || c.now().UnixMilli() > body.Exp {
		return "", models.ErrSessionInvalid
	}

	if expected.CampaignID != "" && body.CampaignID != expected.CampaignID {
		return "", models.ErrSessionInvalid
	}
	if expected.Purpose != "" && body.Purpose != expected.Purpose {
		return "", models.ErrSessionInvalid
	}

	return body.Identity, nil
}

// sign computes the hex-encoded HMAC-SHA256 of the serialized payload
func (c *Codec) sign(serialized []byte) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(serialized)
	return hex.EncodeToString(mac.Sum(nil))
}
