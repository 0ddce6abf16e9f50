package chatwork

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

const signatureHeader = "X-ChatWorkWebhookSignature"

// VerifySignature checks a Chatwork webhook signature: BASE64 of the
// HMAC-SHA256 digest of the raw request body, keyed with the BASE64-decoded
// webhook token.
func VerifySignature(webhookToken, signature string, body []byte) bool {
	key, err := base64.StdEncoding.DecodeString(webhookToken)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
