package getnet

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notifyBody = `{
  "status": {"status": "APPROVED", "reason": "00", "message": "Aprobada", "date": "2025-11-20T15:04:05-03:00"},
  "requestId": 1234,
  "reference": "EAR-1A2B3C4D",
  "signature": "%s"
}`

func sign(payload string) string {
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

func TestParseNotification(t *testing.T) {
	n, err := ParseNotification([]byte(strings.Replace(notifyBody, "%s", "abc", 1)))
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, n.Status.Status)
	assert.Equal(t, Reason("00"), n.Status.Reason)
	assert.Equal(t, "1234", n.RequestID.String())
	assert.Equal(t, "EAR-1A2B3C4D", n.Reference)
	assert.Equal(t, "abc", n.Signature)
}

func TestParseNotification_Invalid(t *testing.T) {
	_, err := ParseNotification([]byte("requestId=1"))
	assert.Error(t, err)
}

func TestVerify_SHA1(t *testing.T) {
	sig := sign("1234" + "APPROVED" + "2025-11-20T15:04:05-03:00" + "secret")
	n, err := ParseNotification([]byte(strings.Replace(notifyBody, "%s", sig, 1)))
	require.NoError(t, err)

	assert.True(t, n.Verify("secret"))
	assert.False(t, n.Verify("other"))
	assert.False(t, n.Verify(""))
}

func TestVerify_UppercaseHex(t *testing.T) {
	sig := strings.ToUpper(sign("1234" + "APPROVED" + "2025-11-20T15:04:05-03:00" + "secret"))
	n, err := ParseNotification([]byte(strings.Replace(notifyBody, "%s", sig, 1)))
	require.NoError(t, err)
	assert.True(t, n.Verify("secret"))
}

func TestVerify_SHA256Prefixed(t *testing.T) {
	sum := sha256.Sum256([]byte("1234" + "APPROVED" + "2025-11-20T15:04:05-03:00" + "secret"))
	sig := "sha256:" + hex.EncodeToString(sum[:])
	n, err := ParseNotification([]byte(strings.Replace(notifyBody, "%s", sig, 1)))
	require.NoError(t, err)

	assert.Equal(t, sig, n.ExpectedSignature("secret"))
	assert.True(t, n.Verify("secret"))
}

func TestVerify_TamperedStatus(t *testing.T) {
	sig := sign("1234" + "APPROVED" + "2025-11-20T15:04:05-03:00" + "secret")
	n, err := ParseNotification([]byte(strings.Replace(notifyBody, "%s", sig, 1)))
	require.NoError(t, err)

	n.Status.Status = StatusRejected
	assert.False(t, n.Verify("secret"))
}

func TestVerify_MissingSignature(t *testing.T) {
	n := Notification{Status: Status{Status: StatusApproved}, RequestID: "1"}
	assert.False(t, n.Verify("secret"))
}

func TestParseNotification_StringRequestID(t *testing.T) {
	sig := sign("a1b2" + "APPROVED" + "2025-11-20T15:04:05-03:00" + "secret")
	body := strings.Replace(strings.Replace(notifyBody, "1234", `"a1b2"`, 1), "%s", sig, 1)

	n, err := ParseNotification([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "a1b2", n.RequestID.String())
	assert.True(t, n.Verify("secret"))
}

func TestMetricStatus(t *testing.T) {
	for _, s := range []string{StatusOK, StatusFailed, StatusApproved, StatusRejected, StatusPending} {
		assert.Equal(t, s, MetricStatus(s))
	}
	for _, s := range []string{"", "approved", "junk-1", "junk-2", strings.Repeat("x", 4096)} {
		assert.Equal(t, StatusOther, MetricStatus(s))
	}
}
