package invoicing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// publicTokenBytes is the entropy of a public token (hex-encoded to 64 chars)
const publicTokenBytes = 32

// NewInvoiceNumberCandidate produces a display number of the form
// INV-<year>-<4 digits>. The suffix is random, so the repository must
// check for collisions and redraw before assigning it to an invoice.
func NewInvoiceNumberCandidate(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%d-%04d", now.Year(), n.Int64()), nil
}

// NewPublicToken generates an unguessable token for unauthenticated
// public access. It is a separate namespace from the invoice ID:
// knowing one must never grant access through the other.
func NewPublicToken() (string, error) {
	buf := make([]byte, publicTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate public token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
