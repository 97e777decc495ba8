package handlers

import (
	"net/http"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/services"
)

type VariableHandler struct {
	variableService services.VariableService
}

func NewVariableHandler(vs services.VariableService) *VariableHandler {
	return &VariableHandler{variableService: vs}
}

func (h *VariableHandler) CreateVariable(w http.ResponseWriter, r *http.Request) {
	var variable models.Variable
	if err := readJSON(w, r, &variable); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.variableService.CreateVariable(r.Context(), &variable); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"variable": variable}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VariableHandler) UpdateVariable(w http.ResponseWriter, r *http.Request) {
	var variable models.Variable
	if err := readJSON(w, r, &variable); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.variableService.UpdateVariable(r.Context(), &variable); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"variable": variable}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VariableHandler) DeleteVariable(w http.ResponseWriter, r *http.Request) {
	variableID, err := getIDFromURL(r, "variableID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.variableService.DeleteVariable(r.Context(), variableID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VariableHandler) ListVariables(w http.ResponseWriter, r *http.Request) {
	variables, err := h.variableService.ListVariables(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"variables": variables}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
