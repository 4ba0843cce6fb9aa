package newsdeck

import (
	"context"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	opRegister = "register"
	opLogin    = "login"
)

// Register creates a new account. The email must be well formed and unused,
// the password inside the configured length bounds, and the role a registry
// role (the zero value defaults per Config.Account.DefaultRole).
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (UserRecord, error) {
	if e == nil {
		return UserRecord{}, ErrEngineNotReady
	}

	email := strings.TrimSpace(req.Email)
	if err := validateEmail(email); err != nil {
		return UserRecord{}, err
	}
	if err := e.validatePassword(req.Password); err != nil {
		return UserRecord{}, err
	}

	role := req.Role
	if role == "" {
		role = e.config.Account.DefaultRole
	}
	if role != RoleUser && role != RoleAdmin {
		return UserRecord{}, ErrRoleInvalid
	}

	limited, err := e.throttle.Enforce(ctx, opRegister, email, clientIPFromContext(ctx))
	if err != nil {
		return UserRecord{}, err
	}
	if limited {
		e.metricInc(MetricRegisterRateLimited)
		return UserRecord{}, ErrRegistrationRateLimited
	}

	roleRecord, err := e.roles.GetByName(ctx, role)
	if err != nil {
		return UserRecord{}, err
	}

	hash, err := e.hasher.Hash(req.Password)
	if err != nil {
		return UserRecord{}, err
	}

	record := UserRecord{
		ID:          uuid.NewString(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       email,
		Hash:        hash,
		RoleID:      roleRecord.ID,
		CreatedAt:   time.Now().UTC(),
		Collections: []string{},
	}

	if err := e.users.Create(ctx, record); err != nil {
		if err == ErrDuplicateEmail {
			e.metricInc(MetricRegisterDuplicate)
			e.auditEmit(ctx, AuditEvent{EventType: AuditRegister, Email: email, Error: err.Error()})
		}
		return UserRecord{}, err
	}

	e.metricInc(MetricRegisterSuccess)
	e.auditEmit(ctx, AuditEvent{EventType: AuditRegister, UserID: record.ID, Email: email, Success: true})
	return record, nil
}

// Authenticate checks credentials and returns the matched identity. Unknown
// email and bad password are distinct failures, mirroring the HTTP surface
// (400 vs 401).
func (e *Engine) Authenticate(ctx context.Context, email, pass string) (AuthResult, error) {
	if e == nil {
		return AuthResult{}, ErrEngineNotReady
	}

	record, err := e.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return AuthResult{}, err
	}

	ok, err := e.hasher.Verify(pass, record.Hash)
	if err != nil {
		return AuthResult{}, err
	}
	if !ok {
		return AuthResult{}, ErrInvalidCredentials
	}

	return AuthResult{
		UserID: record.ID,
		Email:  record.Email,
		RoleID: record.RoleID,
	}, nil
}

// UpdateAccount replaces every mutable field of the account, recomputing the
// password hash. A missing id fails with [ErrUserNotFound]. A nil Collections
// slice keeps the stored reference list.
func (e *Engine) UpdateAccount(ctx context.Context, id string, req UpdateAccountRequest) error {
	if e == nil {
		return ErrEngineNotReady
	}

	email := strings.TrimSpace(req.Email)
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := e.validatePassword(req.Password); err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = e.config.Account.DefaultRole
	}
	if role != RoleUser && role != RoleAdmin {
		return ErrRoleInvalid
	}

	roleRecord, err := e.roles.GetByName(ctx, role)
	if err != nil {
		return err
	}

	existing, err := e.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := e.hasher.Hash(req.Password)
	if err != nil {
		return err
	}

	collections := req.Collections
	if collections == nil {
		collections = existing.Collections
	}

	record := UserRecord{
		ID:          existing.ID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       email,
		Hash:        hash,
		RoleID:      roleRecord.ID,
		CreatedAt:   existing.CreatedAt,
		Collections: collections,
	}

	if err := e.users.Replace(ctx, record); err != nil {
		return err
	}

	e.metricInc(MetricAccountUpdated)
	e.auditEmit(ctx, AuditEvent{EventType: AuditAccountUpdate, UserID: id, Email: email, Success: true})
	return nil
}

// ListAccounts returns every account with its role reference resolved to the
// role name and the credential hash stripped. Output is ordered by creation
// time, then email.
func (e *Engine) ListAccounts(ctx context.Context) ([]UserView, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	records, err := e.users.All(ctx)
	if err != nil {
		return nil, err
	}

	roleNames := make(map[string]Role, 2)
	views := make([]UserView, 0, len(records))
	for _, record := range records {
		name, ok := roleNames[record.RoleID]
		if !ok {
			roleRecord, err := e.roles.GetByID(ctx, record.RoleID)
			if err != nil {
				return nil, err
			}
			name = roleRecord.Name
			roleNames[record.RoleID] = name
		}

		views = append(views, UserView{
			ID:          record.ID,
			FirstName:   record.FirstName,
			LastName:    record.LastName,
			Email:       record.Email,
			Role:        name,
			CreatedAt:   record.CreatedAt,
			Collections: record.Collections,
		})
	}

	sort.Slice(views, func(i, j int) bool {
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.Before(views[j].CreatedAt)
		}
		return views[i].Email < views[j].Email
	})
	return views, nil
}

func (e *Engine) validatePassword(pass string) error {
	if len(pass) < e.config.Password.MinLength || len(pass) > e.config.Password.MaxLength {
		return ErrPasswordPolicy
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return ErrEmailInvalid
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrEmailInvalid
	}
	return nil
}
