// Package api serves the simulation state over HTTP. GET endpoints are
// read-only views; POST endpoints are the user-action entry points that
// mutate simulation state through the stores.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/talgya/steamraiders/internal/alliance"
	"github.com/talgya/steamraiders/internal/colony"
	"github.com/talgya/steamraiders/internal/galaxy"
	"github.com/talgya/steamraiders/internal/message"
	"github.com/talgya/steamraiders/internal/mission"
	"github.com/talgya/steamraiders/internal/notify"
	"github.com/talgya/steamraiders/internal/shipyard"
)

// Server exposes the game state and actions over HTTP.
type Server struct {
	Colony    *colony.Colony
	Directory *galaxy.Directory
	Missions  *mission.Store
	Yard      *shipyard.Yard
	Alliances *alliance.Store
	Messages  *message.Store
	Notifier  *notify.Center
	Hub       *Hub
	Port      int

	// selected holds the currently focused system id, settable through
	// the sys deep-link parameter. Written by SelectSystem and read by
	// handlers on separate goroutines.
	mu       sync.Mutex
	selected string

	now func() int64
}

func (s *Server) selectedSystem() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// NewServer wires a server over the given stores.
func NewServer(port int) *Server {
	return &Server{
		Port: port,
		now:  func() int64 { return time.Now().UnixMilli() },
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(rateLimitMiddleware())

	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/colony", s.handleColony).Methods(http.MethodGet)
	api.HandleFunc("/colony/upgrade", s.handleUpgrade).Methods(http.MethodPost)

	api.HandleFunc("/directory", s.handleDirectory).Methods(http.MethodGet)
	api.HandleFunc("/directory/players/{id}", s.handlePlayerProfile).Methods(http.MethodGet)
	api.HandleFunc("/directory/favorites", s.handleFavorite).Methods(http.MethodPost)
	api.HandleFunc("/galaxy/select", s.handleSelect).Methods(http.MethodGet)

	api.HandleFunc("/missions", s.handleMissions).Methods(http.MethodGet)
	api.HandleFunc("/missions", s.handlePlanMission).Methods(http.MethodPost)
	api.HandleFunc("/missions/{id}/recall", s.handleRecallMission).Methods(http.MethodPost)
	api.HandleFunc("/missions/{id}/cancel", s.handleCancelMission).Methods(http.MethodPost)

	api.HandleFunc("/shipyard", s.handleShipyard).Methods(http.MethodGet)
	api.HandleFunc("/shipyard/orders", s.handleStartOrder).Methods(http.MethodPost)
	api.HandleFunc("/shipyard/orders/{id}", s.handleCancelOrder).Methods(http.MethodDelete)

	api.HandleFunc("/alliances", s.handleAlliances).Methods(http.MethodGet)
	api.HandleFunc("/alliances", s.handleCreateAlliance).Methods(http.MethodPost)
	api.HandleFunc("/alliances/join", s.handleJoinAlliance).Methods(http.MethodPost)
	api.HandleFunc("/alliances/leave", s.handleLeaveAlliance).Methods(http.MethodPost)
	api.HandleFunc("/alliances/notes", s.handleAddNote).Methods(http.MethodPost)
	api.HandleFunc("/alliances/pacts", s.handleAddPact).Methods(http.MethodPost)

	api.HandleFunc("/messages/rooms", s.handleRooms).Methods(http.MethodGet)
	api.HandleFunc("/messages/rooms", s.handleCreateRoom).Methods(http.MethodPost)
	api.HandleFunc("/messages/rooms/{id}", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/messages/rooms/{id}", s.handlePost).Methods(http.MethodPost)

	api.HandleFunc("/notifications", s.handleNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}", s.handleDismiss).Methods(http.MethodDelete)

	api.HandleFunc("/stream", s.handleStream).Methods(http.MethodGet)

	return r
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, s.Router()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// SelectSystem applies a sys deep-link coordinate. Malformed or unknown
// coordinates are ignored without error, matching the deep-link contract.
func (s *Server) SelectSystem(raw string) {
	coord, ok := galaxy.ParseCoordinate(raw)
	if !ok {
		return
	}
	system, ok := s.Directory.SystemByCoordinate(coord)
	if !ok {
		return
	}
	s.mu.Lock()
	s.selected = system.ID
	s.mu.Unlock()
	slog.Info("system focused via deep link", "system_id", system.ID)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Colony.Snapshot()
	writeJSON(w, map[string]any{
		"time":           s.now(),
		"resources":      snap.Resources,
		"kesseldruck":    snap.Kesseldruck,
		"buildQueue":     snap.BuildQueue,
		"selectedSystem": s.selectedSystem(),
	})
}

func (s *Server) handleColony(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Colony.Snapshot())
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EntityID string `json:"entityId"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.Colony.StartUpgrade(req.EntityID, s.now()); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"systems":         s.Directory.Systems(),
		"players":         s.Directory.Players(),
		"currentPlayerId": s.Directory.CurrentPlayerID(),
	})
}

func (s *Server) handlePlayerProfile(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["id"]
	if _, ok := s.Directory.PlayerByID(playerID); !ok {
		http.Error(w, "unknown player", http.StatusNotFound)
		return
	}
	writeJSON(w, s.Directory.ProfileFor(playerID))
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanetID string `json:"planetId"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	writeJSON(w, map[string]bool{"isFavorite": s.Directory.ToggleFavorite(req.PlanetID)})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	s.SelectSystem(r.URL.Query().Get("sys"))
	writeJSON(w, map[string]string{"selectedSystem": s.selectedSystem()})
}

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Missions.Missions())
}

func (s *Server) handlePlanMission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetPlanetID string `json:"targetPlanetId"`
		Type           string `json:"type"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	missionType, ok := mission.ParseType(req.Type)
	if !ok {
		http.Error(w, "unknown mission type", http.StatusBadRequest)
		return
	}
	m, err := s.Missions.Plan(req.TargetPlanetID, missionType, s.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, m)
}

func (s *Server) handleRecallMission(w http.ResponseWriter, r *http.Request) {
	if err := s.Missions.Recall(mux.Vars(r)["id"], s.now()); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCancelMission(w http.ResponseWriter, r *http.Request) {
	if err := s.Missions.Cancel(mux.Vars(r)["id"]); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShipyard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Yard.Snapshot())
}

func (s *Server) handleStartOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BlueprintID string `json:"blueprintId"`
		Quantity    int    `json:"quantity"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	order, err := s.Yard.StartOrder(req.BlueprintID, req.Quantity, s.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, order)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := s.Yard.Cancel(mux.Vars(r)["id"], s.now()); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAlliances(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"alliances":         s.Alliances.Alliances(),
		"invites":           s.Alliances.Invites(),
		"currentAllianceId": s.Alliances.MyAllianceID(),
	})
}

func (s *Server) handleCreateAlliance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tag   string `json:"tag"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	a, err := s.Alliances.Create(req.Tag, req.Name, req.Color)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, a)
}

func (s *Server) handleJoinAlliance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InviteCode string `json:"inviteCode"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.Alliances.Join(req.InviteCode); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLeaveAlliance(w http.ResponseWriter, r *http.Request) {
	if err := s.Alliances.Leave(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.Alliances.AddNote(req.Text); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type             string `json:"type"`
		TargetAllianceID string `json:"targetAllianceId"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	pactType := alliance.PactType(req.Type)
	if pactType != alliance.PactNAP && pactType != alliance.PactAlly {
		http.Error(w, "unknown pact type", http.StatusBadRequest)
		return
	}
	if err := s.Alliances.AddPact(pactType, req.TargetAllianceID); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Messages.Rooms())
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type           string   `json:"type"`
		Title          string   `json:"title"`
		ParticipantIDs []string `json:"participantIds"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	roomType := message.RoomType(req.Type)
	if roomType != message.RoomAlliance && roomType != message.RoomDirect {
		http.Error(w, "unknown room type", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.Messages.CreateRoom(roomType, req.Title, req.ParticipantIDs))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Messages.History(mux.Vars(r)["id"]))
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Body string `json:"body"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	msg, err := s.Messages.Post(mux.Vars(r)["id"], s.Directory.CurrentPlayerID(), req.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, msg)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Notifier.Recent(50))
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.Notifier.Dismiss(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.Hub == nil {
		http.Error(w, "streaming disabled", http.StatusNotFound)
		return
	}
	s.Hub.ServeWs(w, r)
}
