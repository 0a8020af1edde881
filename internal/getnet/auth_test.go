package getnet

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedSeed = time.Date(2025, 11, 20, 15, 4, 5, 0, time.FixedZone("CLT", -3*3600))

func TestNewAuth_Deterministic(t *testing.T) {
	nonce := []byte{0x01, 0x02, 0x03, 0xfe, 0xff}

	a := NewAuth("merchant", "s3cret", nonce, fixedSeed)
	b := NewAuth("merchant", "s3cret", nonce, fixedSeed)

	assert.Equal(t, a, b)
	assert.Equal(t, "merchant", a.Login)
	assert.Equal(t, "2025-11-20T15:04:05-03:00", a.Seed)
	assert.Equal(t, base64.StdEncoding.EncodeToString(nonce), a.Nonce)
}

func TestNewAuth_DigestOverRawNonceBytes(t *testing.T) {
	nonce := []byte("raw-nonce-bytes!")
	seed := fixedSeed.Format(time.RFC3339)

	sum := sha256.Sum256(append(append(append([]byte{}, nonce...), seed...), "s3cret"...))
	want := base64.StdEncoding.EncodeToString(sum[:])

	a := NewAuth("merchant", "s3cret", nonce, fixedSeed)
	assert.Equal(t, want, a.TranKey)

	// Hashing the encoded nonce instead must not reproduce the key.
	encoded := []byte(base64.StdEncoding.EncodeToString(nonce))
	assert.NotEqual(t, want, TranKey(encoded, seed, "s3cret"))

	// Re-deriving from the transmitted nonce after decoding it does.
	decoded, err := base64.StdEncoding.DecodeString(a.Nonce)
	require.NoError(t, err)
	assert.Equal(t, a.TranKey, TranKey(decoded, a.Seed, "s3cret"))
}

func TestNewAuth_ChangesWithEveryInput(t *testing.T) {
	nonce := []byte("0123456789abcdef")
	base := NewAuth("m", "secret", nonce, fixedSeed).TranKey

	assert.NotEqual(t, base, NewAuth("m", "secret", []byte("0123456789abcdeF"), fixedSeed).TranKey)
	assert.NotEqual(t, base, NewAuth("m", "secret", nonce, fixedSeed.Add(time.Second)).TranKey)
	assert.NotEqual(t, base, NewAuth("m", "Secret", nonce, fixedSeed).TranKey)
}

func TestGenerateAuth_FreshNonce(t *testing.T) {
	a, err := GenerateAuth("m", "secret", fixedSeed)
	require.NoError(t, err)
	b, err := GenerateAuth("m", "secret", fixedSeed)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(a.Nonce)
	require.NoError(t, err)
	assert.Len(t, raw, NonceSize)
	assert.NotEqual(t, a.Nonce, b.Nonce)
	assert.NotEqual(t, a.TranKey, b.TranKey)
}
