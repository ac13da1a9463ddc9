package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"protocol-tracker/internal/constants"
	"protocol-tracker/internal/csvio"
	"protocol-tracker/internal/middleware"
	"protocol-tracker/internal/realtime"
	"protocol-tracker/internal/server"
	"protocol-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Router struct {
	tracker   *server.TrackerServer
	matchSvc  *service.MatchService
	ws        *realtime.Handler
	logger    zerolog.Logger
	maxImport int64
}

func New(tracker *server.TrackerServer, matchSvc *service.MatchService, ws *realtime.Handler, logger zerolog.Logger) *Router {
	return &Router{tracker: tracker, matchSvc: matchSvc, ws: ws, logger: logger, maxImport: constants.MaxImportBytes}
}

// Handler wires the RPC service, the CSV file routes and the websocket
// endpoint behind CORS and request id middleware.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	r.Use(c.Handler)
	r.Use(middleware.RequestID(rt.logger))

	path, handler := rt.tracker.Handler()
	r.Mount(path, handler)

	r.Route("/seasons/{season}", func(r chi.Router) {
		r.Get("/export.csv", rt.exportCSV)
		r.Post("/import.csv", rt.importCSV)
	})

	r.Get("/ws/seasons/{season}", rt.ws.ServeWs)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func (rt *Router) exportCSV(w http.ResponseWriter, r *http.Request) {
	season := chi.URLParam(r, "season")

	var buf bytes.Buffer
	if _, err := rt.matchSvc.Export(r.Context(), season, &buf); err != nil {
		rt.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+csvio.Filename(season, time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (rt *Router) importCSV(w http.ResponseWriter, r *http.Request) {
	season := chi.URLParam(r, "season")

	body := http.MaxBytesReader(w, r.Body, rt.maxImport)
	rep, err := rt.matchSvc.Import(r.Context(), season, body)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	rejected := rep.Rejected
	if rejected == nil {
		rejected = []csvio.RowError{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"imported": rep.Imported,
		"rejected": rejected,
	})
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrUnknownSeason):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrRegistrationClosed):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidMatch):
		status = http.StatusBadRequest
	}

	zerolog.Ctx(r.Context()).Warn().Err(err).Int("status", status).Msg("file route failed")
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
