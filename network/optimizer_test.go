package network

import (
	"math"
	"testing"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

func smallCity(t *testing.T, hospitalRoad models.ExistingRoad) *data.Dataset {
	t.Helper()
	ds := &data.Dataset{
		Neighborhoods: []models.Neighborhood{
			{ID: "1", Name: "North", Population: 100000},
			{ID: "2", Name: "East", Population: 100000},
			{ID: "3", Name: "South", Population: 50000},
			{ID: "4", Name: "Island", Population: 1000},
		},
		Facilities: []models.Facility{
			{ID: "F1", Name: "Airport", Type: "Airport"},
			{ID: "F9", Name: "Hospital", Type: "Medical"},
		},
		ExistingRoads: []models.ExistingRoad{
			{From: "1", To: "2", Distance: 4, Capacity: 1000, Condition: 10},
			{From: "2", To: "3", Distance: 3, Capacity: 1000, Condition: 5},
			{From: "1", To: "3", Distance: 10, Capacity: 1000, Condition: 10},
			hospitalRoad,
		},
		PotentialRoads: []models.PotentialRoad{
			{From: "F1", To: "3", Distance: 5, Capacity: 1000, Cost: 100},
			{From: "F1", To: "1", Distance: 2, Capacity: 0, Cost: 300},
		},
	}
	prepared, err := data.Prepare(ds)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	return prepared
}

func TestWeights(t *testing.T) {
	road := models.ExistingRoad{Distance: 3, Condition: 5}
	if got := ExistingWeight(road, 100000, false); got != 6 {
		t.Errorf("ExistingWeight without population = %v, want 6", got)
	}
	if got := ExistingWeight(road, 100000, true); math.Abs(got-5) > 1e-9 {
		t.Errorf("ExistingWeight with population = %v, want 5", got)
	}

	planned := models.PotentialRoad{Distance: 5, Capacity: 1000, Cost: 100}
	if got := PotentialWeight(planned, 50000); math.Abs(got-67.5) > 1e-9 {
		t.Errorf("PotentialWeight = %v, want 67.5", got)
	}
	// Benefits are clamped so a huge population never makes a road free or negative.
	planned.Capacity = 5000
	if got := PotentialWeight(planned, 2000000); got <= 0 {
		t.Errorf("PotentialWeight with clamped benefits = %v, want > 0", got)
	}
}

func TestOptimizeBothAlgorithms(t *testing.T) {
	ds := smallCity(t, models.ExistingRoad{From: "3", To: "F9", Distance: 1, Capacity: 500, Condition: 10})

	for _, algorithm := range []string{"prim", "kruskal"} {
		t.Run(algorithm, func(t *testing.T) {
			res, err := NewOptimizer(ds).Optimize(algorithm, true)
			if err != nil {
				t.Fatalf("Optimize: %v", err)
			}
			if res.Algorithm != algorithm {
				t.Errorf("algorithm = %q", res.Algorithm)
			}
			// 4 is isolated, so the tree spans the other five locations.
			if len(res.Edges) != 4 || len(res.Nodes) != 5 {
				t.Fatalf("got %d edges and %d nodes, want 4 and 5", len(res.Edges), len(res.Nodes))
			}
			if res.TotalDistance != 13 {
				t.Errorf("total distance = %v, want 13", res.TotalDistance)
			}
			if res.TotalCost != 100 || len(res.NewRoads) != 1 || res.NewRoads[0].From != "F1" {
				t.Errorf("new roads = %+v, cost %v", res.NewRoads, res.TotalCost)
			}
			if !res.CriticalFacilitiesConnected {
				t.Error("expected critical facilities to be connected")
			}
		})
	}
}

func TestOptimizeAttachesCriticalFacility(t *testing.T) {
	// The hospital only reaches the isolated neighborhood 4.
	ds := smallCity(t, models.ExistingRoad{From: "4", To: "F9", Distance: 1, Capacity: 500, Condition: 10})

	res, err := NewOptimizer(ds).Optimize("prim", false)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	attached := false
	for _, e := range res.Edges {
		if e.From == "4" && e.To == "F9" {
			attached = true
		}
	}
	if !attached {
		t.Errorf("expected the 4-F9 road to be attached, edges = %+v", res.Edges)
	}
	if res.CriticalFacilitiesConnected {
		t.Error("hospital cannot reach the main network, expected false")
	}
}

func TestOptimizeRejectsUnknownAlgorithm(t *testing.T) {
	ds := smallCity(t, models.ExistingRoad{From: "3", To: "F9", Distance: 1, Capacity: 500, Condition: 10})
	if _, err := NewOptimizer(ds).Optimize("boruvka", true); err == nil {
		t.Error("expected an error for an unknown algorithm")
	}
}

func TestOptimizeDefaultDataset(t *testing.T) {
	ds, err := data.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	weight := func(res models.NetworkResult) float64 {
		sum := 0.0
		for _, e := range res.Edges {
			sum += e.Weight
		}
		return sum
	}

	prim, err := NewOptimizer(ds).Optimize("", true)
	if err != nil {
		t.Fatalf("prim: %v", err)
	}
	kruskal, err := NewOptimizer(ds).Optimize("kruskal", true)
	if err != nil {
		t.Fatalf("kruskal: %v", err)
	}

	for _, res := range []models.NetworkResult{prim, kruskal} {
		if len(res.Edges) != 24 || len(res.Nodes) != 25 {
			t.Errorf("%s: %d edges, %d nodes", res.Algorithm, len(res.Edges), len(res.Nodes))
		}
		if !res.CriticalFacilitiesConnected {
			t.Errorf("%s: critical facilities not connected", res.Algorithm)
		}
	}
	if math.Abs(weight(prim)-weight(kruskal)) > 1e-6 {
		t.Errorf("prim weight %v != kruskal weight %v", weight(prim), weight(kruskal))
	}
}
