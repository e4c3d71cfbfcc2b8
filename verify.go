package whatsapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature checks the X-Hub-Signature-256 header of an inbound
// webhook request against the exact raw request body. The header may carry
// a "sha256=" prefix; a bare hex digest is also accepted. The comparison is
// constant-time. An absent or empty header fails verification.
func VerifySignature(appSecret string, rawBody []byte, signatureHeader string) bool {
	if signatureHeader == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	received := strings.TrimPrefix(signatureHeader, "sha256=")

	return hmac.Equal([]byte(expected), []byte(received))
}
