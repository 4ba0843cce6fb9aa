package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	newsdeck "github.com/MrEthical07/newsdeck"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}

	role, err := newsdeck.ParseRole(req.Role)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	if _, err := s.engine.Register(r.Context(), newsdeck.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
	}); err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeOK(w, "user created")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	ID      string `json:"id"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	pair, err := s.engine.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		ID:      pair.UserID,
	})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decode(w, r, &req) {
		return
	}

	access, err := s.engine.Refresh(r.Context(), req.Refresh)
	if err != nil {
		writeError(w, http.StatusBadRequest, "refreshing token failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (s *Server) handleAllUsers(w http.ResponseWriter, r *http.Request) {
	views, err := s.engine.ListAccounts(r.Context())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

type updateAccountRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Collections []string `json:"smartCollections"`
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req updateAccountRequest
	if !decode(w, r, &req) {
		return
	}

	role, err := newsdeck.ParseRole(req.Role)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	if err := s.engine.UpdateAccount(r.Context(), chi.URLParam(r, "id"), newsdeck.UpdateAccountRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		Role:        role,
		Collections: req.Collections,
	}); err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeOK(w, "user updated")
}

func (s *Server) handleSeedAccounts(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.SeedAccounts(r.Context()); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeOK(w, "accounts seeded")
}
