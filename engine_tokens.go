package newsdeck

import (
	"context"
	"errors"

	"github.com/MrEthical07/newsdeck/jwt"
)

// Login authenticates the credentials and issues a fresh access/refresh token
// pair carrying the account's id, email, and role reference.
func (e *Engine) Login(ctx context.Context, email, pass string) (TokenPair, error) {
	if e == nil {
		return TokenPair{}, ErrEngineNotReady
	}

	limited, err := e.throttle.Enforce(ctx, opLogin, email, clientIPFromContext(ctx))
	if err != nil {
		return TokenPair{}, err
	}
	if limited {
		e.metricInc(MetricLoginRateLimited)
		return TokenPair{}, ErrLoginRateLimited
	}

	result, err := e.Authenticate(ctx, email, pass)
	if err != nil {
		if errors.Is(err, ErrUnknownEmail) || errors.Is(err, ErrInvalidCredentials) {
			e.metricInc(MetricLoginFailure)
			e.auditEmit(ctx, AuditEvent{EventType: AuditLogin, Email: email, Error: err.Error()})
		}
		return TokenPair{}, err
	}

	access, err := e.tokens.CreateAccess(result.UserID, result.Email, result.RoleID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := e.tokens.CreateRefresh(result.UserID, result.Email, result.RoleID)
	if err != nil {
		return TokenPair{}, err
	}

	e.metricInc(MetricLoginSuccess)
	e.auditEmit(ctx, AuditEvent{EventType: AuditLogin, UserID: result.UserID, Email: result.Email, Success: true})

	return TokenPair{
		Access:  access,
		Refresh: refresh,
		UserID:  result.UserID,
	}, nil
}

// Refresh verifies a refresh token and re-issues an access token carrying the
// same subject id, email, and role claims. Verification failure is the
// generic [ErrTokenInvalid] regardless of cause.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}

	claims, err := e.tokens.ParseRefresh(refreshToken)
	if err != nil {
		e.metricInc(MetricRefreshFailure)
		e.auditEmit(ctx, AuditEvent{EventType: AuditRefresh, Error: ErrTokenInvalid.Error()})
		return "", ErrTokenInvalid
	}

	access, err := e.tokens.CreateAccess(claims.UID, claims.Email, claims.RoleID)
	if err != nil {
		return "", err
	}

	e.metricInc(MetricRefreshSuccess)
	e.auditEmit(ctx, AuditEvent{EventType: AuditRefresh, UserID: claims.UID, Email: claims.Email, Success: true})
	return access, nil
}

// VerifyAccess verifies an access token and returns its claims. Used by the
// middleware gates; failures collapse into [ErrTokenInvalid].
func (e *Engine) VerifyAccess(token string) (*jwt.Claims, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	claims, err := e.tokens.ParseAccess(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
