package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignaturePrefix is prepended to the hex-encoded HMAC in the
// X-Gateway-Signature header.
const SignaturePrefix = "sha256="

// Sign computes the authentication tag for a webhook body: an HMAC-SHA256
// over the exact byte sequence of body keyed by secret, formatted as
// "sha256=<hex>". Deterministic: identical (secret, body) always yields an
// identical tag. Receivers recompute the tag over the raw request bytes and
// compare exactly.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return SignaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether tag is a valid signature for body under secret.
// Comparison is constant-time.
func Verify(secret string, body []byte, tag string) bool {
	expected := Sign(secret, body)
	return hmac.Equal([]byte(expected), []byte(tag))
}
