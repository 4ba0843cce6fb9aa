package newsdeck

import (
	"strings"
	"time"
)

// Role is the fixed role enumeration of the deployment. The registry is
// seeded with exactly two roles; any other value is rejected at the boundary.
type Role string

const (
	// RoleAdmin grants access to the admin-gated account routes.
	RoleAdmin Role = "admin"
	// RoleUser is the default capability for registered accounts.
	RoleUser Role = "user"
)

// ParseRole resolves a request-supplied role string. The empty string maps to
// [RoleUser]; anything outside the registry fails with [ErrRoleInvalid].
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", ErrRoleInvalid
	}
}

// UserRecord is the durable account document. Hash is the bcrypt digest of the
// password and never leaves the engine through the HTTP surface.
type UserRecord struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Hash        string    `json:"hash"`
	RoleID      string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	Collections []string  `json:"smartCollections"`
}

// UserView is a UserRecord with the role reference resolved to its name and
// the credential hash stripped. Returned by [Engine.ListAccounts].
type UserView struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	Collections []string  `json:"smartCollections"`
}

// RoleRecord is a seeded role registry document. Immutable after seeding.
type RoleRecord struct {
	ID   string `json:"id"`
	Name Role   `json:"role"`
}

// CollectionRecord is a per-user smart-collection document: a short topic
// query plus the search parameters the frontend feeds to the news vendor API.
type CollectionRecord struct {
	ID             string    `json:"id"`
	Query          string    `json:"q"`
	From           time.Time `json:"from"`
	MinClusterSize int       `json:"minClusterSize"`
	SortBy         string    `json:"sortBy"`
	OwnerID        string    `json:"auth"`
	CreatedAt      time.Time `json:"created_at"`
}

// AuthResult is returned by [Engine.Authenticate]: the matched account's
// identity and unresolved role reference.
type AuthResult struct {
	UserID string
	Email  string
	RoleID string
}

// TokenPair is returned by [Engine.Login].
type TokenPair struct {
	Access  string
	Refresh string
	UserID  string
}

// RegisterRequest is the input for [Engine.Register]. Role must already be
// resolved through [ParseRole]; the zero value defaults to [RoleUser].
type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      Role
}

// UpdateAccountRequest is the input for [Engine.UpdateAccount]. All mutable
// fields are replaced, including the password hash.
type UpdateAccountRequest struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Role        Role
	Collections []string
}
