package graphdb

import (
	"testing"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
)

func TestRowsFromDefaultDataset(t *testing.T) {
	ds, err := data.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	locs := LocationRows(ds)
	if len(locs) != 25 {
		t.Fatalf("got %d location rows, want 25", len(locs))
	}
	if locs[0]["kind"] != "neighborhood" || locs[len(locs)-1]["kind"] != "facility" {
		t.Errorf("unexpected ordering: first %v, last %v", locs[0], locs[len(locs)-1])
	}
	if locs[len(locs)-1]["population"] != int64(0) {
		t.Errorf("facilities carry no population: %v", locs[len(locs)-1])
	}

	if got := len(RoadRows(ds)); got != 34 {
		t.Errorf("got %d road rows, want 34", got)
	}
	planned := PlannedRoadRows(ds)
	if len(planned) != 15 {
		t.Fatalf("got %d planned rows, want 15", len(planned))
	}
	if _, ok := planned[0]["cost"].(float64); !ok {
		t.Errorf("planned road cost missing: %v", planned[0])
	}
}

func TestNewExporterRejectsBadScheme(t *testing.T) {
	if _, err := NewExporter("http://localhost:7474", "neo4j", "secret", ""); err == nil {
		t.Error("expected error for unsupported URI scheme")
	}
}
