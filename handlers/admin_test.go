package handlers

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
)

func setupAdmin(t *testing.T, store *data.Store) *mux.Router {
	t.Helper()
	router := mux.NewRouter()
	NewAdminHandler(store).RegisterRoutes(router)
	return router
}

func TestAdminStatus(t *testing.T) {
	router := setupAdmin(t, newTestStore(t))

	w := do(router, http.MethodGet, "/admin/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var s DatasetStatus
	decode(t, w, &s)
	if s.Version != 1 || s.City != "Cairo" || s.Locations != 25 || s.ExistingRoads != 34 {
		t.Errorf("status = %+v", s)
	}
}

func TestAdminTraffic(t *testing.T) {
	store := newTestStore(t)
	router := setupAdmin(t, store)

	w := do(router, http.MethodPost, "/admin/traffic", `{"road":"1-3","time_of_day":"night","vehicles":2900}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if got := store.Current().RoadTraffic("3", "1", "night"); got != 2900 {
		t.Errorf("traffic after update = %v, want 2900", got)
	}
	if store.Version() != 2 {
		t.Errorf("version = %d, want 2", store.Version())
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid body", `{"road":`, http.StatusBadRequest},
		{"unknown road", `{"road":"1-15","vehicles":10}`, http.StatusNotFound},
		{"bad period", `{"road":"1-3","time_of_day":"dawn","vehicles":10}`, http.StatusBadRequest},
		{"negative volume", `{"road":"1-3","vehicles":-5}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(router, http.MethodPost, "/admin/traffic", tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestAdminReload(t *testing.T) {
	store := newTestStore(t)
	router := setupAdmin(t, store)

	do(router, http.MethodPost, "/admin/traffic", `{"road":"1-3","vehicles":100}`)
	w := do(router, http.MethodPost, "/admin/reload", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if got := store.Current().RoadTraffic("1", "3", "morning"); got != 2800 {
		t.Errorf("reload should restore source traffic, got %v", got)
	}

	ds, _ := data.Default()
	noSource := setupAdmin(t, data.NewStore(ds, nil))
	if w := do(noSource, http.MethodPost, "/admin/reload", ""); w.Code != http.StatusInternalServerError {
		t.Errorf("reload without source status = %d", w.Code)
	}
}
