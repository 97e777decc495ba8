package handlers

import (
	"net/http"

	"github.com/Dosada05/hockey-club-system/services"
)

type RuleHandler struct {
	rulesService services.RulesService
}

func NewRuleHandler(rs services.RulesService) *RuleHandler {
	return &RuleHandler{rulesService: rs}
}

func (h *RuleHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var input services.CreateRuleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rule, err := h.rulesService.CreateRule(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"rule": rule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RuleHandler) GetRuleByID(w http.ResponseWriter, r *http.Request) {
	ruleID, err := getIDFromURL(r, "ruleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rule, err := h.rulesService.GetRuleByID(r.Context(), ruleID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rule": rule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RuleHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := getIDFromURL(r, "ruleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateRuleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rule, err := h.rulesService.UpdateRule(r.Context(), ruleID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rule": rule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RuleHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := getIDFromURL(r, "ruleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rulesService.DeleteRule(r.Context(), ruleID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RuleHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.rulesService.ListRules(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rules": rules}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
