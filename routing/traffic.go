package routing

import (
	"fmt"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

const (
	noCongestionAdvice = "No significant congestion detected in this area"
	severeAdvice       = "This area is experiencing severe congestion. Consider delaying travel if possible."
	heavyAdvice        = "This area is experiencing heavy congestion. Expect delays."
)

// AnalyzeTraffic reports load on every existing road touching location.
func (pf *PathFinder) AnalyzeTraffic(location models.LocationID, tod models.TimeOfDay) (models.TrafficAnalysis, error) {
	if location == "" {
		return models.TrafficAnalysis{}, fmt.Errorf("%w: location is required", ErrMissingEndpoint)
	}
	if !pf.ds.LocationExists(location) {
		return models.TrafficAnalysis{}, fmt.Errorf("%w: %s", data.ErrUnknownLocation, location)
	}

	roads := []models.RoadTraffic{}
	for _, r := range pf.ds.ConnectedRoads(location) {
		traffic := pf.ds.RoadTraffic(r.From, r.To, tod)
		congestion := traffic / r.Capacity
		roads = append(roads, models.RoadTraffic{
			From:        r.From,
			To:          r.To,
			FromName:    pf.ds.LocationName(r.From),
			ToName:      pf.ds.LocationName(r.To),
			Traffic:     traffic,
			Capacity:    r.Capacity,
			Congestion:  congestion,
			IsCongested: congestion > CongestionThreshold,
		})
	}

	return models.TrafficAnalysis{
		Location:        models.LocationRef{ID: location, Name: pf.ds.LocationName(location)},
		TimeOfDay:       tod,
		ConnectedRoads:  roads,
		Stats:           trafficStats(roads),
		Recommendations: recommendations(roads),
	}, nil
}

func trafficStats(roads []models.RoadTraffic) models.TrafficStats {
	stats := models.TrafficStats{TotalRoads: len(roads)}
	if len(roads) == 0 {
		return stats
	}
	sum := 0.0
	for _, r := range roads {
		sum += r.Congestion
		if r.IsCongested {
			stats.CongestedRoads++
		}
	}
	stats.CongestionPercentage = float64(stats.CongestedRoads) / float64(len(roads)) * 100
	stats.AverageCongestion = sum / float64(len(roads))
	return stats
}

func recommendations(roads []models.RoadTraffic) []string {
	var congested []models.RoadTraffic
	for _, r := range roads {
		if r.IsCongested {
			congested = append(congested, r)
		}
	}
	if len(congested) == 0 {
		return []string{noCongestionAdvice}
	}

	worst := congested[0]
	sum := 0.0
	for _, r := range congested {
		sum += r.Congestion
		if r.Congestion > worst.Congestion {
			worst = r
		}
	}
	out := []string{
		fmt.Sprintf("Avoid %s to %s (congestion: %.1f%%)", worst.FromName, worst.ToName, worst.Congestion*100),
	}

	if len(roads) > 1 {
		best := roads[0]
		for _, r := range roads[1:] {
			if r.Congestion < best.Congestion {
				best = r
			}
		}
		if best.Congestion < 0.5 {
			out = append(out, fmt.Sprintf("Consider using %s to %s as alternative (congestion: %.1f%%)",
				best.FromName, best.ToName, best.Congestion*100))
		}
	}

	switch avg := sum / float64(len(congested)); {
	case avg > 1.0:
		out = append(out, severeAdvice)
	case avg > CongestionThreshold:
		out = append(out, heavyAdvice)
	}
	return out
}
