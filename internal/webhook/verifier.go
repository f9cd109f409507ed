// Package webhook receives QuickBooks change notifications, verifies their
// signatures, and hands per-entity sync tasks to a background dispatcher.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the raw request body.
const SignatureHeader = "intuit-signature"

var ErrInvalidSignature = errors.New("webhook: invalid signature")

// Verifier checks webhook payload signatures against the shared token.
type Verifier struct {
	token []byte
}

func NewVerifier(token string) *Verifier {
	return &Verifier{token: []byte(token)}
}

// Verify recomputes the body's HMAC and compares it in constant time against
// the header value. An unset token rejects everything; the empty key must
// never validate a payload.
func (v *Verifier) Verify(body []byte, signature string) error {
	if signature == "" || len(v.token) == 0 {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, v.token)
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
