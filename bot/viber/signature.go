package viber

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns lowercase hex HMAC-SHA256 of the callback body keyed by the account token.
func Sign(token string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(token))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature of the callback body,
// as given in the X-Viber-Content-Signature header.
func VerifySignature(token string, body []byte, signature string) bool {
	return hmac.Equal(
		[]byte(Sign(token, body)),
		[]byte(signature),
	)
}
