package signals

import (
	"errors"
	"testing"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

func TestCycleLength(t *testing.T) {
	tests := []struct {
		name   string
		ratios []float64
		want   int
	}{
		{"light traffic clamps to minimum", []float64{0.2, 0.3, 0.1}, 60},
		{"saturated traffic clamps to maximum", []float64{0.5, 0.5, 0.5}, 180},
		{"webster", []float64{0.3, 0.2, 0.2, 0.1}, 145},
		{"five light approaches need more than the minimum", []float64{0.05, 0.05, 0.05, 0.05, 0.05}, 70},
		{"thirteen approaches exceed the maximum", make([]float64, 13), 182},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CycleLength(tt.ratios); got != tt.want {
				t.Errorf("CycleLength(%v) = %d, want %d", tt.ratios, got, tt.want)
			}
		})
	}
}

func TestSplitGreen(t *testing.T) {
	tests := []struct {
		name       string
		cycle      int
		priorities []float64
		want       []int
	}{
		{"proportional to priority", 60, []float64{2, 1}, []int{34, 18}},
		{"no priority shares evenly", 60, []float64{0, 0, 0}, []int{16, 16, 16}},
		{"idle approach keeps the minimum", 100, []float64{0, 5}, []int{10, 82}},
		{"no approaches", 60, nil, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitGreen(tt.cycle, tt.priorities)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitGreen = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("SplitGreen = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestPhasesFitInCycle(t *testing.T) {
	for n := 1; n <= 16; n++ {
		ratios := make([]float64, n)
		priorities := make([]float64, n)
		for i := range ratios {
			ratios[i] = 0.05
			priorities[i] = float64(i)
		}
		cycle := CycleLength(ratios)
		greens := SplitGreen(cycle, priorities)

		total := 0
		for _, g := range greens {
			if g < minGreen {
				t.Errorf("n=%d: green %d below minimum", n, g)
			}
			total += g
		}
		if total+lostTimePerPhase*n != cycle {
			t.Errorf("n=%d: greens %v plus lost time %d do not fill cycle %d", n, greens, lostTimePerPhase*n, cycle)
		}
	}
}

func junction(t *testing.T) *data.Dataset {
	t.Helper()
	ds := &data.Dataset{
		Neighborhoods: []models.Neighborhood{
			{ID: "1", Name: "Square"},
			{ID: "2", Name: "North"},
			{ID: "3", Name: "East"},
			{ID: "4", Name: "Nowhere"},
		},
		Facilities: []models.Facility{
			{ID: "F9", Name: "Hospital", Type: "Medical"},
		},
		ExistingRoads: []models.ExistingRoad{
			{From: "1", To: "2", Distance: 1, Capacity: 1000, Condition: 9},
			{From: "3", To: "1", Distance: 1, Capacity: 1000, Condition: 9},
			{From: "F9", To: "1", Distance: 1, Capacity: 1000, Condition: 9},
		},
		TrafficFlows: []models.TrafficFlow{
			{Road: "1-2", Morning: 300, Night: 50},
			{Road: "3-1", Morning: 200, Night: 50},
			{Road: "F9-1", Morning: 100, Night: 50},
		},
	}
	prepared, err := data.Prepare(ds)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	return prepared
}

func TestOptimizeIntersection(t *testing.T) {
	o := NewOptimizer(junction(t))

	plans, err := o.Optimize([]models.LocationID{"1"}, models.Morning)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}
	p := plans[0]
	if p.IntersectionName != "Square" || p.Approaches != 3 || p.CycleTime != 60 {
		t.Errorf("plan = %+v", p)
	}

	total := 0.0
	for _, ph := range p.SignalPhases {
		total += ph.GreenTime
		if ph.GreenTime < minGreen {
			t.Errorf("phase %s below minimum green: %v", ph.Approach, ph.GreenTime)
		}
	}
	if total != float64(p.CycleTime-lostTimePerPhase*p.Approaches) {
		t.Errorf("green total = %v, want cycle minus lost time", total)
	}

	hospital := p.SignalPhases[2]
	if hospital.Approach != "F9" || !hospital.EmergencyPriority || hospital.Priority != 1.5 {
		t.Errorf("hospital phase = %+v", hospital)
	}
	if p.SignalPhases[0].ApproachName != "North" || p.SignalPhases[0].GreenTime <= p.SignalPhases[1].GreenTime {
		t.Errorf("busiest approach should get the most green: %+v", p.SignalPhases)
	}
}

func TestOptimizeSelection(t *testing.T) {
	o := NewOptimizer(junction(t))

	plans, err := o.Optimize(nil, models.Night)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(plans) != 1 || plans[0].Intersection != "1" {
		t.Errorf("default selection = %+v", plans)
	}

	plans, err = o.Optimize([]models.LocationID{"4", "2", "2"}, models.Morning)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(plans) != 1 || plans[0].Intersection != "2" {
		t.Errorf("expected only intersection 2, got %+v", plans)
	}

	if _, err := o.Optimize([]models.LocationID{"1", "99"}, models.Morning); !errors.Is(err, data.ErrUnknownLocation) {
		t.Errorf("expected ErrUnknownLocation, got %v", err)
	}
}
