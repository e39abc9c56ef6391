package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/scythe504/sketchrooms/internal"
	"github.com/scythe504/sketchrooms/internal/game"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Apply CORS middleware
	r.Use(s.corsMiddleware)

	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/rooms", s.ListRooms).Methods(http.MethodGet)
	r.HandleFunc("/rooms", s.CreateRoom).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/rooms/{room}", s.GetRoom).Methods(http.MethodGet)
	r.HandleFunc("/rooms-available", s.GetRoomToJoin).Methods(http.MethodGet)

	if s.ws != nil {
		r.Handle("/ws", s.ws)
		r.Handle("/ws/{room}", s.ws)
	}
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}

	return r
}

// CORS middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin, ok := s.allowOrigin(r.Header.Get("Origin")); ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "false")
		w.Header().Add("Vary", "Origin")

		// If it's a websocket upgrade, the upgrader checks the origin itself
		if strings.ToLower(r.Header.Get("Upgrade")) == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowOrigin matches case-insensitively, as the websocket upgrader does. A
// disallowed origin gets no Access-Control-Allow-Origin header at all.
func (s *Server) allowOrigin(origin string) (string, bool) {
	allowed := s.cfg.AllowedOrigins
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin != "" && slices.ContainsFunc(allowed, func(o string) bool { return strings.EqualFold(o, origin) }) {
		return origin, true
	}
	return "", false
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warnw("error encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: http.StatusText(status), Message: msg})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "rooms": s.registry.Len()})
}

func (s *Server) ListRooms(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.registry.List())
}

type createRoomRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid-request-format")
		return
	}

	room, err := s.registry.CreateRoom(strings.TrimSpace(req.Name))
	switch {
	case errors.Is(err, game.ErrAlreadyExists):
		s.writeError(w, http.StatusConflict, game.Reason(err))
		return
	case errors.Is(err, game.ErrInvalidName):
		s.writeError(w, http.StatusBadRequest, game.Reason(err))
		return
	case err != nil:
		s.log.Errorw("create room failed", "room", req.Name, "error", err)
		s.writeError(w, http.StatusInternalServerError, game.Reason(err))
		return
	}

	w.Header().Set("Location", "/rooms/"+room.Name())
	s.writeJSON(w, http.StatusCreated, room.Snapshot())
}

func (s *Server) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := s.registry.GetRoom(mux.Vars(r)["room"])
	if err != nil {
		s.writeError(w, http.StatusNotFound, game.Reason(err))
		return
	}
	s.writeJSON(w, http.StatusOK, room.Snapshot())
}

func (s *Server) GetRoomToJoin(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now().UnixMilli()
	room, ok := s.registry.Joinable()

	var resp internal.Response
	if ok {
		resp = internal.Response{
			StatusCode:    http.StatusOK,
			RespStartTime: startTime,
			Data:          room.Name,
		}
	} else {
		resp = internal.Response{
			StatusCode:    http.StatusNotFound,
			RespStartTime: startTime,
			Data:          "No joinable rooms available",
		}
	}

	// Calculate response times
	endTime := time.Now().UnixMilli()
	resp.RespEndTime = endTime
	resp.NetRespTime = endTime - startTime

	s.writeJSON(w, resp.StatusCode, resp)
}
