package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

// AdminHandler serves operator endpoints on a separate port.
type AdminHandler struct {
	store *data.Store
}

func NewAdminHandler(store *data.Store) *AdminHandler {
	return &AdminHandler{store: store}
}

func (h *AdminHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/admin/status", h.Status).Methods("GET")
	router.HandleFunc("/admin/reload", h.Reload).Methods("POST")
	router.HandleFunc("/admin/traffic", h.ApplyTraffic).Methods("POST")
}

type DatasetStatus struct {
	Version        int64  `json:"version"`
	City           string `json:"city"`
	Locations      int    `json:"locations"`
	ExistingRoads  int    `json:"existing_roads"`
	PotentialRoads int    `json:"potential_roads"`
	TrafficFlows   int    `json:"traffic_flows"`
	MetroLines     int    `json:"metro_lines"`
	BusRoutes      int    `json:"bus_routes"`
}

func (h *AdminHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.status())
}

func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reload(r.Context()); err != nil {
		log.Printf("ERROR: dataset reload failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ApiError{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.status())
}

func (h *AdminHandler) ApplyTraffic(w http.ResponseWriter, r *http.Request) {
	var update models.TrafficUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ApiError{Error: "invalid request body"})
		return
	}
	if err := h.store.ApplyTraffic(update); err != nil {
		writeJSON(w, statusFor(err), models.ApiError{Error: err.Error()})
		return
	}
	log.Printf("Admin set traffic on %s (%s) to %.0f", update.Road, update.TimeOfDay, update.Vehicles)
	writeJSON(w, http.StatusOK, h.status())
}

func (h *AdminHandler) status() DatasetStatus {
	ds := h.store.Current()
	return DatasetStatus{
		Version:        h.store.Version(),
		City:           ds.City,
		Locations:      len(ds.Locations()),
		ExistingRoads:  len(ds.ExistingRoads),
		PotentialRoads: len(ds.PotentialRoads),
		TrafficFlows:   len(ds.TrafficFlows),
		MetroLines:     len(ds.MetroLines),
		BusRoutes:      len(ds.BusRoutes),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
