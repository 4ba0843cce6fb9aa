package newsdeck

import "errors"

var (
	// ErrDuplicateEmail is returned by Register when the email already has an account.
	ErrDuplicateEmail = errors.New("duplicated email")
	// ErrUnknownEmail is returned by Authenticate when no account matches the email.
	ErrUnknownEmail = errors.New("no email found")
	// ErrInvalidCredentials is returned by Authenticate when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by account lookups and updates for a missing user id.
	ErrUserNotFound = errors.New("user not found")
	// ErrRoleNotFound is returned when a role reference does not resolve to a seeded role.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleInvalid is returned when a request names a role outside the fixed registry.
	ErrRoleInvalid = errors.New("invalid role")
	// ErrEmailInvalid is returned when a registration email is not well formed.
	ErrEmailInvalid = errors.New("invalid email")
	// ErrPasswordPolicy is returned when a password is outside the configured length bounds.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrQueryInvalid is returned when a collection query is empty or too long.
	ErrQueryInvalid = errors.New("invalid collection query")
	// ErrCollectionNotFound is returned by collection patch/delete for a missing id.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrNotOwner is returned when the caller does not own the collection it is mutating.
	ErrNotOwner = errors.New("caller does not own collection")
	// ErrTokenInvalid is the generic verification failure for access and refresh
	// tokens. It deliberately does not distinguish expiry from tamper or malformed
	// input.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrRegistrationRateLimited is returned when registration throttling denies a request.
	ErrRegistrationRateLimited = errors.New("registration rate limited")
	// ErrLoginRateLimited is returned when login throttling denies a request.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrStoreUnavailable wraps Redis transport failures surfaced by the stores.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrEngineNotReady is returned when an Engine method is called on a nil engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
