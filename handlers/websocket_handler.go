package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/hockey-club-system/live"
	"github.com/Dosada05/hockey-club-system/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict Origin once the frontend domain is fixed.
		return true
	},
}

type WebSocketHandler struct {
	hub         *live.Hub
	clubService services.ClubService
	logger      *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, cs services.ClubService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, clubService: cs, logger: logger}
}

// ServeClub subscribes the caller to a club's live event room at
// /ws/clubs/{clubID}.
func (h *WebSocketHandler) ServeClub(w http.ResponseWriter, r *http.Request) {
	clubID, err := getIDFromURL(r, "clubID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if _, err := h.clubService.GetClubByID(r.Context(), clubID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client.
		h.logger.Warn("websocket upgrade failed", slog.Int("club_id", clubID), slog.Any("error", err))
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: live.ClubRoom(clubID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
