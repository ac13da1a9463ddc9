package realtime

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SeasonChecker reports whether a season name is known.
type SeasonChecker interface {
	HasSeason(name string) bool
}

type Handler struct {
	hub     *Hub
	seasons SeasonChecker
}

func NewHandler(hub *Hub, seasons SeasonChecker) *Handler {
	return &Handler{hub: hub, seasons: seasons}
}

// ServeWs upgrades /ws/seasons/{season} and subscribes the connection to that
// season's room.
func (h *Handler) ServeWs(w http.ResponseWriter, r *http.Request) {
	season := chi.URLParam(r, "season")
	if season == "" {
		http.Error(w, "missing season", http.StatusBadRequest)
		return
	}
	if !h.seasons.HasSeason(season) {
		http.Error(w, "unknown season", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.hub.logger.Warn().Err(err).Str("season", season).Msg("failed to upgrade websocket")
		return
	}

	h.hub.Attach(conn, season)
	h.hub.logger.Debug().Str("season", season).Msg("websocket subscribed")
}
