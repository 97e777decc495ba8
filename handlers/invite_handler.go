package handlers

import (
	"net/http"

	"github.com/Dosada05/hockey-club-system/middleware"
	"github.com/Dosada05/hockey-club-system/services"
	"github.com/go-chi/chi/v5"
)

type InviteHandler struct {
	inviteService services.InviteService
}

func NewInviteHandler(is services.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: is}
}

func (h *InviteHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	invite, err := h.inviteService.CreateInvite(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// The token is returned once, on creation, for the manager to share.
	response := jsonResponse{
		"invite": invite,
		"token":  invite.Token,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InviteHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		unauthorizedResponse(w, r, "missing invite token")
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	player, err := h.inviteService.AcceptInvite(r.Context(), token, currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InviteHandler) DeleteInvite(w http.ResponseWriter, r *http.Request) {
	inviteID, err := getIDFromURL(r, "inviteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.inviteService.DeleteInvite(r.Context(), inviteID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
