package data

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

func mustDefault(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Default()
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}
	return ds
}

func TestDefaultDataset(t *testing.T) {
	ds := mustDefault(t)

	if len(ds.Neighborhoods) != 15 || len(ds.Facilities) != 10 {
		t.Fatalf("expected 15 neighborhoods and 10 facilities, got %d and %d", len(ds.Neighborhoods), len(ds.Facilities))
	}
	if got := len(ds.Locations()); got != 25 {
		t.Errorf("Locations() returned %d entries, want 25", got)
	}
	if first := ds.Locations()[0]; first.ID != "1" || first.Kind != models.KindNeighborhood {
		t.Errorf("first location = %+v, want neighborhood 1", first)
	}
	for _, id := range []models.LocationID{"F1", "F2", "F9", "F10"} {
		if len(ds.ConnectedRoads(id)) == 0 {
			t.Errorf("critical facility %s has no existing road", id)
		}
	}
}

func TestLookups(t *testing.T) {
	ds := mustDefault(t)

	if !ds.LocationExists("3") || ds.LocationExists("99") {
		t.Error("LocationExists gave the wrong answer")
	}
	if got := ds.LocationName("F9"); got != "Qasr El Aini Hospital" {
		t.Errorf("LocationName(F9) = %q", got)
	}
	if got := ds.LocationName("X"); got != "Location X" {
		t.Errorf("LocationName fallback = %q", got)
	}
	if !ds.IsMedicalFacility("F10") || ds.IsMedicalFacility("F1") || ds.IsMedicalFacility("3") {
		t.Error("IsMedicalFacility gave the wrong answer")
	}

	road, ok := ds.RoadBetween("3", "1")
	if !ok || road.Distance != 8.5 {
		t.Errorf("RoadBetween(3,1) = %+v, %v", road, ok)
	}
	if _, ok := ds.RoadBetween("1", "15"); ok {
		t.Error("unexpected road between 1 and 15")
	}

	if got := ds.RoadTraffic("3", "1", models.Evening); got != 2600 {
		t.Errorf("RoadTraffic reverse direction = %v, want 2600", got)
	}
	if got := ds.RoadTraffic("1", "15", models.Morning); got != 0 {
		t.Errorf("RoadTraffic on missing road = %v, want 0", got)
	}
}

func TestPrepareRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
	}{
		{
			name: "duplicate id",
			ds: Dataset{
				Neighborhoods: []models.Neighborhood{{ID: "1"}},
				Facilities:    []models.Facility{{ID: "1"}},
			},
		},
		{
			name: "unknown endpoint",
			ds: Dataset{
				Neighborhoods: []models.Neighborhood{{ID: "1"}},
				ExistingRoads: []models.ExistingRoad{{From: "1", To: "2", Capacity: 10, Condition: 5}},
			},
		},
		{
			name: "zero capacity",
			ds: Dataset{
				Neighborhoods: []models.Neighborhood{{ID: "1"}, {ID: "2"}},
				ExistingRoads: []models.ExistingRoad{{From: "1", To: "2", Capacity: 0, Condition: 5}},
			},
		},
		{
			name: "condition out of range",
			ds: Dataset{
				Neighborhoods: []models.Neighborhood{{ID: "1"}, {ID: "2"}},
				ExistingRoads: []models.ExistingRoad{{From: "1", To: "2", Capacity: 10, Condition: 11}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := tt.ds
			if _, err := Prepare(&ds); !errors.Is(err, ErrInvalidDataset) {
				t.Errorf("expected ErrInvalidDataset, got %v", err)
			}
		})
	}
}

func TestGobRoundTripAndLoadPath(t *testing.T) {
	ds := mustDefault(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "cairo.gob")
	var buf bytes.Buffer
	if err := EncodeGob(&buf, ds); err != nil {
		t.Fatalf("EncodeGob: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	loaded, err := LoadPath(dir)
	if err != nil {
		t.Fatalf("LoadPath: %v", err)
	}
	if !loaded.LocationExists("F10") {
		t.Error("snapshot lost facility F10")
	}
	if got := loaded.RoadTraffic("1", "3", models.Morning); got != 2800 {
		t.Errorf("snapshot traffic = %v, want 2800", got)
	}

	if _, err := LoadPath(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := FormatFor("network.csv"); err == nil {
		t.Error("expected error for csv extension")
	}
}

func TestStoreApplyTraffic(t *testing.T) {
	ds := mustDefault(t)
	store := NewStore(ds, func(context.Context) (*Dataset, error) { return Default() })

	before := store.Current()
	err := store.ApplyTraffic(models.TrafficUpdate{Road: "3-1", TimeOfDay: "night", Vehicles: 2999})
	if err != nil {
		t.Fatalf("ApplyTraffic: %v", err)
	}
	if store.Version() != 2 {
		t.Errorf("version = %d, want 2", store.Version())
	}
	if got := store.Current().RoadTraffic("1", "3", models.Night); got != 2999 {
		t.Errorf("updated traffic = %v, want 2999", got)
	}
	if got := before.RoadTraffic("1", "3", models.Night); got != 800 {
		t.Errorf("old snapshot changed to %v", got)
	}

	if err := store.ApplyTraffic(models.TrafficUpdate{Road: "1-15", Vehicles: 10}); !errors.Is(err, ErrUnknownRoad) {
		t.Errorf("expected ErrUnknownRoad, got %v", err)
	}
	if err := store.ApplyTraffic(models.TrafficUpdate{Road: "1-3", TimeOfDay: "dusk", Vehicles: 10}); err == nil {
		t.Error("expected error for unknown time of day")
	}

	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := store.Current().RoadTraffic("1", "3", models.Night); got != 800 {
		t.Errorf("reload kept live traffic: %v", got)
	}
}

func TestStoreConcurrentReaders(t *testing.T) {
	store := NewStore(mustDefault(t), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if i%2 == 0 {
					_ = store.ApplyTraffic(models.TrafficUpdate{Road: "2-5", TimeOfDay: "morning", Vehicles: float64(j)})
				} else if store.Current().RoadTraffic("2", "5", models.Afternoon) != 1600 {
					t.Errorf("afternoon volume changed")
				}
			}
		}(i)
	}
	wg.Wait()

	if store.Version() != 1+4*50 {
		t.Errorf("version = %d, want %d", store.Version(), 1+4*50)
	}
	if err := store.Reload(context.Background()); err == nil {
		t.Error("expected error when no source is configured")
	}
}
