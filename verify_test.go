package whatsapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	secret := "app-secret"
	body := []byte(`{"object":"whatsapp_business_account","entry":[]}`)
	digest := signBody(secret, body)

	tests := []struct {
		name      string
		secret    string
		body      []byte
		signature string
		expected  bool
	}{
		{"valid with prefix", secret, body, "sha256=" + digest, true},
		{"valid without prefix", secret, body, digest, true},
		{"wrong secret", "other-secret", body, "sha256=" + digest, false},
		{"tampered body", secret, []byte(`{"object":"tampered"}`), "sha256=" + digest, false},
		{"empty header", secret, body, "", false},
		{"garbage header", secret, body, "sha256=nothex", false},
		{"empty body", secret, nil, "sha256=" + signBody(secret, nil), true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, VerifySignature(tt.secret, tt.body, tt.signature))
		})
	}
}

func TestVerifySignature_ExactBytesMatter(t *testing.T) {
	t.Parallel()

	secret := "app-secret"
	body := []byte(`{"a": 1}`)
	digest := signBody(secret, body)

	// Re-serialized JSON with different spacing must fail: the raw bytes
	// are the signed message, not their parsed meaning.
	assert.True(t, VerifySignature(secret, body, "sha256="+digest))
	assert.False(t, VerifySignature(secret, []byte(`{"a":1}`), "sha256="+digest))
}
