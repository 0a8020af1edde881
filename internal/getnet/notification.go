package getnet

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Notification is what the gateway POSTs once a session changes state.
type Notification struct {
	Status    Status    `json:"status"`
	RequestID RequestID `json:"requestId"`
	Reference string    `json:"reference"`
	Signature string    `json:"signature"`
}

// ParseNotification decodes a notification body.
func ParseNotification(body []byte) (Notification, error) {
	var n Notification
	err := json.Unmarshal(body, &n)
	return n, err
}

// StatusOther stands in for any status outside the gateway's documented set.
const StatusOther = "other"

// MetricStatus maps a gateway-supplied status onto a closed set, so it can be
// used as a metric label or dimension.
func MetricStatus(status string) string {
	switch status {
	case StatusOK, StatusFailed, StatusApproved, StatusRejected, StatusPending:
		return status
	}
	return StatusOther
}

const sha256Prefix = "sha256:"

// ExpectedSignature computes the signature for n under secret, using SHA-256
// when n's own signature is prefixed "sha256:" and SHA-1 otherwise.
func (n Notification) ExpectedSignature(secret string) string {
	payload := n.RequestID.String() + n.Status.Status + n.Status.Date + secret
	if strings.HasPrefix(n.Signature, sha256Prefix) {
		sum := sha256.Sum256([]byte(payload))
		return sha256Prefix + hex.EncodeToString(sum[:])
	}
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the signature matches secret.
func (n Notification) Verify(secret string) bool {
	if n.Signature == "" || secret == "" {
		return false
	}
	want := n.ExpectedSignature(secret)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(n.Signature)), []byte(want)) == 1
}
