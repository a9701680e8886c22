// Package transit sizes metro and bus service from origin/destination demand
// and reports transfers, coverage and network travel times.
package transit

import (
	"math"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

const (
	trainCapacity   = 1200
	trainLoadFactor = 0.8
	metroSpeedKmh   = 30.0
	metroMinFreq    = 4
	metroMaxFreq    = 20
	metroPeakFactor = 1.5

	busCapacity     = 60
	busLoadFactor   = 0.85
	busSpeedKmh     = 20.0
	busRouteKm      = 10.0
	busMinFreq      = 2
	busMaxFreq      = 30
	busPeakFactor   = 1.8
	serviceHours    = 18
	oldBusCapacity  = 50
	transferShare   = 0.3
	topTransferSize = 5
)

// Fleet sizes in service today.
var currentMetroTrains = map[string]int{"M1": 22, "M2": 18, "M3": 16}

const defaultMetroTrains = 15

func CurrentMetroTrains(lineID string) int {
	if n, ok := currentMetroTrains[lineID]; ok {
		return n
	}
	return defaultMetroTrains
}

type Optimizer struct {
	ds       *data.Dataset
	demand   map[string]float64
	stations map[models.LocationID]bool
	stops    map[models.LocationID]bool
}

func NewOptimizer(ds *data.Dataset) *Optimizer {
	demand := make(map[string]float64, len(ds.TransportDemand))
	for _, d := range ds.TransportDemand {
		key := models.RoadKey(d.From, d.To)
		if _, seen := demand[key]; !seen {
			demand[key] = d.Passengers
		}
	}
	return &Optimizer{
		ds:       ds,
		demand:   demand,
		stations: ds.MetroStations(),
		stops:    ds.BusStops(),
	}
}

// Optimize runs every stage and assembles the dashboard payload.
func (o *Optimizer) Optimize() models.TransportResponse {
	metro := o.metroSchedules()
	bus := o.busSchedules()

	locations := make(map[models.LocationID]models.Location)
	for _, loc := range o.ds.Locations() {
		locations[loc.ID] = loc
	}

	return models.TransportResponse{
		Status: "success",
		Data: models.TransportPlan{
			Metro:       metro,
			Bus:         bus,
			Transfers:   o.transfers(metro, bus),
			Resources:   resources(metro, bus),
			Improvement: improvement(metro, bus),
			Network:     o.integratedNetwork(metro, bus),
			Coverage:    o.coverage(),
			TravelTimes: o.travelTimes(),
			Locations:   locations,
			MetroLines:  nonNil(o.ds.MetroLines),
			BusRoutes:   nonNil(o.ds.BusRoutes),
		},
	}
}

// SegmentDemand is the two-way demand between adjacent stops, boosted where
// either end already has metro or bus service.
func (o *Optimizer) SegmentDemand(from, to models.LocationID) float64 {
	base := o.demand[models.RoadKey(from, to)] + o.demand[models.RoadKey(to, from)]
	factor := 1.0
	if o.stations[from] || o.stations[to] {
		factor += 0.25
	}
	if o.stops[from] || o.stops[to] {
		factor += 0.15
	}
	return base * factor
}

func (o *Optimizer) metroSchedules() []models.MetroSchedule {
	out := make([]models.MetroSchedule, 0, len(o.ds.MetroLines))
	for _, line := range o.ds.MetroLines {
		demands := o.segmentDemands(line.Stations)
		base := 6
		if len(demands) > 0 {
			base = 0
			for _, d := range demands {
				base = max(base, clampInt(int(math.Ceil(d/(trainCapacity*trainLoadFactor))), metroMinFreq, metroMaxFreq))
			}
		}
		peak := float64(base) * metroPeakFactor
		roundTrip := 2 * line.Distance / metroSpeedKmh * 60

		demand := line.Passengers
		if demand == 0 {
			demand = sum(demands)
		}
		out = append(out, models.MetroSchedule{
			LineID:        line.ID,
			Name:          line.Name,
			Stations:      o.stopRefs(line.Stations),
			StationIDs:    line.Stations,
			BaseFrequency: base,
			PeakFrequency: peak,
			TrainsNeeded:  int(math.Ceil(peak * roundTrip / 60)),
			Coverage:      o.populationServed(line.Stations),
			Demand:        demand,
			Distance:      line.Distance,
		})
	}
	return out
}

func (o *Optimizer) busSchedules() []models.BusSchedule {
	out := make([]models.BusSchedule, 0, len(o.ds.BusRoutes))
	roundTrip := 2 * busRouteKm / busSpeedKmh * 60
	for _, route := range o.ds.BusRoutes {
		demands := o.segmentDemands(route.Stops)
		base := 4
		if len(demands) > 0 {
			base = 0
			for _, d := range demands {
				base = max(base, clampInt(int(math.Ceil(d/(busCapacity*busLoadFactor))), busMinFreq, busMaxFreq))
			}
		}
		peak := float64(base) * busPeakFactor
		buses := int(math.Ceil(peak * roundTrip / 60))

		passengers := math.Max(route.Passengers, sum(demands))
		utilization := 1.0
		if capacity := float64(buses * busCapacity * serviceHours); capacity > 0 {
			utilization = passengers / capacity
		}
		out = append(out, models.BusSchedule{
			RouteID:       route.ID,
			Stops:         o.stopRefs(route.Stops),
			StopIDs:       route.Stops,
			BaseFrequency: base,
			PeakFrequency: peak,
			BusesNeeded:   buses,
			CurrentBuses:  route.Buses,
			Utilization:   utilization,
			Coverage:      o.populationServed(route.Stops),
			Demand:        passengers,
		})
	}
	return out
}

func (o *Optimizer) segmentDemands(stops []models.LocationID) []float64 {
	out := make([]float64, 0, len(stops))
	for i := 0; i+1 < len(stops); i++ {
		out = append(out, o.SegmentDemand(stops[i], stops[i+1]))
	}
	return out
}

func (o *Optimizer) stopRefs(ids []models.LocationID) []models.StopRef {
	out := make([]models.StopRef, 0, len(ids))
	for _, id := range ids {
		if loc, ok := o.ds.Location(id); ok {
			out = append(out, models.StopRef{ID: id, Name: loc.Name, X: loc.X, Y: loc.Y})
		}
	}
	return out
}

// populationServed sums the residents of the neighborhoods a line stops at.
func (o *Optimizer) populationServed(ids []models.LocationID) int {
	total := 0
	for _, id := range ids {
		total += o.ds.Population(id)
	}
	return total
}

func resources(metro []models.MetroSchedule, bus []models.BusSchedule) models.ResourcePlan {
	plan := models.ResourcePlan{
		Metro: make([]models.MetroAllocation, 0, len(metro)),
		Bus:   make([]models.BusAllocation, 0, len(bus)),
	}
	for _, line := range metro {
		current := CurrentMetroTrains(line.LineID)
		plan.Metro = append(plan.Metro, models.MetroAllocation{
			Line:          line.LineID,
			Name:          line.Name,
			CurrentTrains: current,
			OptimalTrains: line.TrainsNeeded,
			Difference:    line.TrainsNeeded - current,
		})
		plan.TotalMetroTrains += line.TrainsNeeded
	}
	for _, route := range bus {
		plan.Bus = append(plan.Bus, models.BusAllocation{
			Route:        route.RouteID,
			CurrentBuses: route.CurrentBuses,
			OptimalBuses: route.BusesNeeded,
			Difference:   route.BusesNeeded - route.CurrentBuses,
			Utilization:  route.Utilization,
		})
		plan.TotalBuses += route.BusesNeeded
	}
	return plan
}

// improvement compares daily metro capacity and average bus utilization
// before and after re-sizing the fleets.
func improvement(metro []models.MetroSchedule, bus []models.BusSchedule) models.Improvement {
	metroGain := 0.15
	if len(metro) > 0 {
		var before, after float64
		for _, line := range metro {
			daily := float64(trainCapacity * serviceHours)
			before += float64(CurrentMetroTrains(line.LineID)) * daily * (float64(line.BaseFrequency) / 10)
			after += float64(line.TrainsNeeded) * daily * (line.PeakFrequency / 10)
		}
		if before > 0 {
			metroGain = math.Max(0.1, (after-before)/before)
		}
	}

	busGain := 0.1
	if len(bus) > 0 {
		var before, after float64
		for _, route := range bus {
			if route.CurrentBuses > 0 {
				before += math.Min(1.5, route.Demand/float64(route.CurrentBuses*oldBusCapacity*serviceHours))
			} else {
				before += 1.5
			}
			if route.BusesNeeded > 0 {
				after += math.Min(1.2, route.Demand/float64(route.BusesNeeded*busCapacity*serviceHours))
			} else {
				after += 1.2
			}
		}
		avgBefore := before / float64(len(bus))
		avgAfter := after / float64(len(bus))
		if avgBefore > 0 {
			busGain = math.Max(0.05, (avgBefore-avgAfter)/avgBefore)
		}
	}

	total := metroGain*0.6 + busGain*0.4
	return models.Improvement{
		Total: round4(clamp01(total)),
		Metro: round4(clamp01(metroGain)),
		Bus:   round4(clamp01(busGain)),
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
