// Package jwt implements the newsdeck token service: HS256-signed access and
// refresh tokens with distinct secrets, uuid token ids, and bounded lifetimes
// (20 minutes / 30 days by default).
//
// # Verification contract
//
// Parse failures collapse into a single [ErrTokenInvalid]. Callers must not be
// able to distinguish an expired token from a tampered or malformed one.
package jwt
