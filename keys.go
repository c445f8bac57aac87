package authkit

import "crypto/sha512"

// minKeySize is the minimum signing key length for HS512. Keys shorter than
// the hash output weaken the MAC, so a short secret is rejected at startup.
const minKeySize = sha512.Size

// DeriveKey turns the configured secret into raw HMAC key bytes. It is
// called once at startup; an empty or short secret is a fatal
// misconfiguration, not a runtime error.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySigningSecret
	}

	key := []byte(secret)
	if len(key) < minKeySize {
		return nil, ErrSigningKeyTooShort
	}

	return key, nil
}
