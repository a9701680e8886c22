// Package signals times traffic lights at intersections from approach
// volumes, giving medical approaches precedence.
package signals

import (
	"fmt"
	"math"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

const (
	lostTimePerPhase = 4
	minGreen         = 10
	minCycle         = 60
	maxCycle         = 180
	maxFlowRatio     = 0.9
	emergencyBoost   = 1.5

	// Intersections considered when the caller names none.
	minApproaches = 3
)

type Optimizer struct {
	ds *data.Dataset
}

func NewOptimizer(ds *data.Dataset) *Optimizer {
	return &Optimizer{ds: ds}
}

type approach struct {
	to        models.LocationID
	ratio     float64
	priority  float64
	emergency bool
}

// Optimize plans every requested intersection in request order. An empty
// list selects every location with at least three approach roads.
// Locations without roads are skipped.
func (o *Optimizer) Optimize(intersections []models.LocationID, tod models.TimeOfDay) ([]models.IntersectionPlan, error) {
	for _, id := range intersections {
		if !o.ds.LocationExists(id) {
			return nil, fmt.Errorf("%w: intersection %s", data.ErrUnknownLocation, id)
		}
	}
	if len(intersections) == 0 {
		for _, loc := range o.ds.Locations() {
			if len(o.ds.ConnectedRoads(loc.ID)) >= minApproaches {
				intersections = append(intersections, loc.ID)
			}
		}
	}

	plans := []models.IntersectionPlan{}
	seen := make(map[models.LocationID]bool)
	for _, id := range intersections {
		if seen[id] {
			continue
		}
		seen[id] = true
		approaches := o.approaches(id, tod)
		if len(approaches) == 0 {
			continue
		}
		plans = append(plans, o.plan(id, approaches))
	}
	return plans, nil
}

func (o *Optimizer) approaches(id models.LocationID, tod models.TimeOfDay) []approach {
	var out []approach
	for _, r := range o.ds.ConnectedRoads(id) {
		other := r.To
		if other == id {
			other = r.From
		}
		ratio := o.ds.RoadTraffic(r.From, r.To, tod) / r.Capacity
		a := approach{to: other, ratio: ratio, priority: 10 * ratio}
		if o.ds.IsMedicalFacility(other) {
			a.priority *= emergencyBoost
			a.emergency = true
		}
		out = append(out, a)
	}
	return out
}

func (o *Optimizer) plan(id models.LocationID, approaches []approach) models.IntersectionPlan {
	ratios := make([]float64, len(approaches))
	priorities := make([]float64, len(approaches))
	for i, a := range approaches {
		ratios[i] = a.ratio
		priorities[i] = a.priority
	}
	cycle := CycleLength(ratios)
	greens := SplitGreen(cycle, priorities)

	phases := make([]models.SignalPhase, len(approaches))
	for i, a := range approaches {
		phases[i] = models.SignalPhase{
			Approach:          a.to,
			ApproachName:      o.ds.LocationName(a.to),
			GreenTime:         float64(greens[i]),
			Priority:          a.priority,
			EmergencyPriority: a.emergency,
		}
	}
	return models.IntersectionPlan{
		Intersection:     id,
		IntersectionName: o.ds.LocationName(id),
		Approaches:       len(approaches),
		CycleTime:        cycle,
		SignalPhases:     phases,
	}
}

// CycleLength applies Webster's formula C = (1.5L + 5) / (1 - Y), where L is
// the total lost time and Y the summed flow ratio. The result is clamped to
// 60..180 seconds, then raised if needed so every phase fits its lost time
// and minimum green.
func CycleLength(ratios []float64) int {
	lost := float64(lostTimePerPhase * len(ratios))
	y := 0.0
	for _, r := range ratios {
		y += r
	}
	y = math.Min(y, maxFlowRatio)

	c := (1.5*lost + 5) / (1 - y)
	cycle := int(math.Round(math.Max(minCycle, math.Min(maxCycle, c))))
	return max(cycle, (lostTimePerPhase+minGreen)*len(ratios))
}

// SplitGreen gives every phase the minimum green and then hands out the rest
// of the effective green one second at a time, each second going to the
// phase with the most priority per second already granted.
func SplitGreen(cycle int, priorities []float64) []int {
	n := len(priorities)
	greens := make([]int, n)
	if n == 0 {
		return greens
	}
	for i := range greens {
		greens[i] = minGreen
	}
	remaining := cycle - lostTimePerPhase*n - minGreen*n

	for ; remaining > 0; remaining-- {
		best := 0
		for i := 1; i < n; i++ {
			if better(priorities[i], greens[i], priorities[best], greens[best]) {
				best = i
			}
		}
		greens[best]++
	}
	return greens
}

func better(p1 float64, g1 int, p2 float64, g2 int) bool {
	r1, r2 := p1/float64(g1), p2/float64(g2)
	if r1 != r2 {
		return r1 > r2
	}
	return g1 < g2
}
