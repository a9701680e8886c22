package models

import (
	"encoding/json"
	"testing"
)

func TestLocationIDUnmarshal(t *testing.T) {
	var req RouteRequest
	if err := json.Unmarshal([]byte(`{"start": 3, "end": "F9"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Start != "3" || req.End != "F9" {
		t.Errorf("got start=%q end=%q", req.Start, req.End)
	}

	var id LocationID
	if err := json.Unmarshal([]byte(`true`), &id); err == nil {
		t.Error("expected error for boolean id")
	}
}

func TestSplitRoadKey(t *testing.T) {
	from, to, ok := SplitRoadKey("11-F2")
	if !ok || from != "11" || to != "F2" {
		t.Errorf("SplitRoadKey = %q %q %v", from, to, ok)
	}
	if _, _, ok := SplitRoadKey("bad"); ok {
		t.Error("expected failure for key without separator")
	}
}
