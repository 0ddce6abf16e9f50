package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"
)

const (
	signatureHeader = "X-Slack-Signature"
	timestampHeader = "X-Slack-Request-Timestamp"

	signatureVersion = "v0"
	maxTimestampSkew = 5 * time.Minute
)

// VerifySignature checks a Slack request signature: HMAC-SHA256 over
// "v0:<timestamp>:<body>" with the signing secret, hex encoded. Requests
// with a timestamp outside the allowed skew are rejected to block replays.
func VerifySignature(signingSecret string, header http.Header, body []byte, now time.Time) bool {
	ts := header.Get(timestampHeader)
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}

	skew := now.Sub(time.Unix(unix, 0))
	if skew < -maxTimestampSkew || skew > maxTimestampSkew {
		return false
	}

	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte(signatureVersion + ":" + ts + ":"))
	mac.Write(body)
	expected := signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(header.Get(signatureHeader)))
}
