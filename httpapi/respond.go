package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	newsdeck "github.com/MrEthical07/newsdeck"
	"github.com/MrEthical07/newsdeck/jwt"
	"github.com/MrEthical07/newsdeck/middleware"
)

type envelope struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, envelope{Status: "ok", Msg: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Status: "error", Msg: msg})
}

func claimsFrom(r *http.Request) (*jwt.Claims, bool) {
	return middleware.ClaimsFromContext(r.Context())
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// rejectedErrs are the engine failures a client caused; everything else is a
// server fault.
var rejectedErrs = []error{
	newsdeck.ErrDuplicateEmail,
	newsdeck.ErrUnknownEmail,
	newsdeck.ErrUserNotFound,
	newsdeck.ErrRoleNotFound,
	newsdeck.ErrRoleInvalid,
	newsdeck.ErrEmailInvalid,
	newsdeck.ErrPasswordPolicy,
	newsdeck.ErrQueryInvalid,
	newsdeck.ErrCollectionNotFound,
	newsdeck.ErrTokenInvalid,
}

// writeEngineError maps an engine failure to its response. Ownership and
// credential failures are 401s, throttling is a 429, client mistakes are 400s
// with the engine's message, and anything else is an opaque 500.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, newsdeck.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "login failed")
		return
	case errors.Is(err, newsdeck.ErrNotOwner):
		writeError(w, http.StatusUnauthorized, "unauthorised")
		return
	case errors.Is(err, newsdeck.ErrRegistrationRateLimited), errors.Is(err, newsdeck.ErrLoginRateLimited):
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	for _, rejected := range rejectedErrs {
		if errors.Is(err, rejected) {
			writeError(w, http.StatusBadRequest, rejected.Error())
			return
		}
	}

	s.log.WithError(err).Error("request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}
