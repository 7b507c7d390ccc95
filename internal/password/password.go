package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes post passwords with bcrypt. A server-side secret (pepper) is
// appended to the plaintext before hashing, so stored hashes are useless
// without the deployment's secret. Cost and secret come from configuration
// and are required at startup.
type Hasher struct {
	cost   int
	secret string
}

// NewHasher creates a Hasher with the given bcrypt cost and secret.
func NewHasher(cost int, secret string) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if secret == "" {
		return nil, fmt.Errorf("password secret must not be empty")
	}
	return &Hasher{cost: cost, secret: secret}, nil
}

// maxBcryptInput is bcrypt's hard input limit. Longer material is truncated
// rather than rejected, so passwords near the 255-char field limit still
// hash; the secret only contributes when the plaintext leaves room for it.
const maxBcryptInput = 72

func (h *Hasher) material(plaintext string) []byte {
	b := []byte(plaintext + h.secret)
	if len(b) > maxBcryptInput {
		b = b[:maxBcryptInput]
	}
	return b
}

// Hash returns the bcrypt hash of plaintext+secret.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(h.material(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), h.material(plaintext)) == nil
}
