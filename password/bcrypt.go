package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const maxPassBytes = 72 // bcrypt truncates beyond 72 bytes; reject instead

// Config carries the bcrypt cost factor.
type Config struct {
	Cost int
}

// Bcrypt computes and verifies salted bcrypt digests at a fixed cost.
// Instances are immutable and safe for concurrent use.
type Bcrypt struct {
	config Config
}

// NewBcrypt validates the cost factor and returns a hasher.
func NewBcrypt(cfg Config) (*Bcrypt, error) {
	if cfg.Cost < bcrypt.MinCost || cfg.Cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	return &Bcrypt{config: cfg}, nil
}

// Hash computes a salted digest of password. The salt is generated internally
// per call, so equal passwords never share a digest.
func (b *Bcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	if len(password) > maxPassBytes {
		return "", errors.New("password exceeds 72 bytes")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), b.config.Cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches the stored digest. A malformed
// digest is an error; a clean mismatch is (false, nil).
func (b *Bcrypt) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
