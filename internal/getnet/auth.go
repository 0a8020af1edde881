package getnet

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"
)

// NonceSize is the number of random bytes drawn per request.
const NonceSize = 16

// Auth is the per-request credential block the gateway expects.
type Auth struct {
	Login   string `json:"login"`
	TranKey string `json:"tranKey"`
	Nonce   string `json:"nonce"`
	Seed    string `json:"seed"`
}

// NewAuth derives the credential block from raw nonce bytes.
//
//	tranKey = Base64(SHA-256(nonce || seed || secret))
//
// The digest is taken over the raw nonce bytes; only the transmitted Nonce
// field is Base64 encoded.
func NewAuth(login, secret string, nonce []byte, seed time.Time) Auth {
	seedText := seed.Format(time.RFC3339)
	return Auth{
		Login:   login,
		TranKey: TranKey(nonce, seedText, secret),
		Nonce:   base64.StdEncoding.EncodeToString(nonce),
		Seed:    seedText,
	}
}

// TranKey computes the digest for already formatted inputs.
func TranKey(nonce []byte, seed, secret string) string {
	h := sha256.New()
	h.Write(nonce)
	h.Write([]byte(seed))
	h.Write([]byte(secret))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// GenerateAuth draws a fresh nonce and seeds it with now.
func GenerateAuth(login, secret string, now time.Time) (Auth, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return Auth{}, fmt.Errorf("generate nonce: %w", err)
	}
	return NewAuth(login, secret, nonce, now), nil
}
