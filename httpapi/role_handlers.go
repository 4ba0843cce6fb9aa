package httpapi

import (
	"net/http"
)

func (s *Server) handleRoleNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.engine.RoleNames(r.Context())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleSeedRoles(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.SeedRoles(r.Context()); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeOK(w, "roles seeded")
}
