package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/mgarcia/jobscout/internal/server/middleware"
	"github.com/mgarcia/jobscout/internal/types"
)

// BlacklistStore is the blacklist collaborator as the HTTP layer sees it:
// owner-scoped reads for the core filter plus the CRUD the settings UI
// needs.
type BlacklistStore interface {
	ListBlacklist(ctx context.Context, ownerID uuid.UUID) ([]types.BlacklistEntry, error)
	AddBlacklistEntry(ctx context.Context, ownerID uuid.UUID, companyName string, reason *string) (*types.BlacklistEntry, error)
	DeleteBlacklistEntry(ctx context.Context, ownerID, entryID uuid.UUID) error
}

type addBlacklistRequest struct {
	CompanyName string  `json:"company_name" validate:"required,min=1"`
	Reason      *string `json:"reason,omitempty"`
}

// handleListBlacklist returns the authenticated user's blacklist.
func (s *Server) handleListBlacklist(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := s.blacklist.ListBlacklist(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if entries == nil {
		entries = []types.BlacklistEntry{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"blacklist": entries,
		"count":     len(entries),
	})
}

// handleAddBlacklistEntry records a company on the user's blacklist.
func (s *Server) handleAddBlacklistEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req addBlacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	entry, err := s.blacklist.AddBlacklistEntry(r.Context(), userID, req.CompanyName, req.Reason)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, entry)
}

// handleDeleteBlacklistEntry removes one entry owned by the user.
func (s *Server) handleDeleteBlacklistEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid blacklist entry ID")
		return
	}

	if err := s.blacklist.DeleteBlacklistEntry(r.Context(), userID, entryID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
