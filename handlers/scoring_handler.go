package handlers

import (
	"net/http"

	"github.com/Dosada05/hockey-club-system/live"
	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/services"
)

type ScoringHandler struct {
	scoringService services.ScoringService
	hub            *live.Hub
}

func NewScoringHandler(ss services.ScoringService, hub *live.Hub) *ScoringHandler {
	return &ScoringHandler{scoringService: ss, hub: hub}
}

// ScoreGame triggers the scoring pass for a completed game and pushes
// the summary to the club's live subscribers.
func (h *ScoringHandler) ScoreGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.scoringService.ScoreGame(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToRoom(live.ClubRoom(summary.ClubID), live.Event{
			Type:    live.EventGameScored,
			Payload: summary,
		})
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetEffectiveRules exposes the resolved rule set for a team, including
// which precedence tier it came from.
func (h *ScoringHandler) GetEffectiveRules(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ruleSet, err := h.scoringService.ResolveEffectiveRules(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"effective_rules": ruleSet}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoringHandler) AddManualPoints(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		PlayerID  int              `json:"player_id"`
		PointType models.PointType `json:"point_type"`
		Points    float64          `json:"points"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	award := &models.PlayerGameRulePoints{
		PlayerID:  input.PlayerID,
		GameID:    gameID,
		PointType: input.PointType,
		Points:    input.Points,
		IsManual:  true,
	}
	if err := h.scoringService.AddManualPoints(r.Context(), award); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"award": award}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoringHandler) ListGamePoints(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	points, err := h.scoringService.ListGamePoints(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"points": points}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
