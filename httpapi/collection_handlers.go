package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type collectionRequest struct {
	Query string `json:"q"`
}

func (s *Server) handleAddCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if !decode(w, r, &req) {
		return
	}

	record, err := s.engine.AddCollection(r.Context(), chi.URLParam(r, "id"), req.Query)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handlePatchCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if !decode(w, r, &req) {
		return
	}

	callerID := ""
	if claims, ok := claimsFrom(r); ok {
		callerID = claims.UID
	}

	if err := s.engine.PatchCollection(r.Context(), callerID, chi.URLParam(r, "id"), req.Query); err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeOK(w, "smart collection updated")
}

func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	callerID := ""
	if claims, ok := claimsFrom(r); ok {
		callerID = claims.UID
	}

	if err := s.engine.DeleteCollection(r.Context(), callerID, chi.URLParam(r, "id")); err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeOK(w, "smart collection deleted")
}

func (s *Server) handleOwnerCollections(w http.ResponseWriter, r *http.Request) {
	records, err := s.engine.CollectionsByOwner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleAllCollections(w http.ResponseWriter, r *http.Request) {
	records, err := s.engine.ListCollections(r.Context())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSeedCollections(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.SeedCollections(r.Context()); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeOK(w, "smart collections seeded")
}
