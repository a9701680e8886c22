package routing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/geo"
	"github.com/Ahmed2003-Rav/Egypt-Map/graphs"
	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

const (
	CongestionThreshold = 0.8
	congestionCap       = 2.0

	regularSpeedKmh   = 30.0
	emergencySpeedKmh = 80.0

	DefaultAlternates = 3
)

var (
	ErrMissingEndpoint = errors.New("start and end locations are required")
	ErrSameEndpoint    = errors.New("start and end locations must differ")
	ErrNotMedical      = errors.New("emergency destination must be a medical facility")
)

var trafficMultipliers = map[models.TimeOfDay]float64{
	models.Morning:   1.5,
	models.Afternoon: 1.2,
	models.Evening:   1.7,
	models.Night:     0.8,
}

// PathFinder routes over one dataset snapshot.
type PathFinder struct {
	ds *data.Dataset
	// straight-line km per road km, at most 1
	crowFactor float64
}

func NewPathFinder(ds *data.Dataset) *PathFinder {
	return &PathFinder{ds: ds, crowFactor: crowFactor(ds)}
}

// crowFactor is the smallest ratio of road distance to great-circle
// distance over all roads. Recorded road lengths may be shorter than the
// coordinates suggest, and the A* estimate has to stay below the true cost.
func crowFactor(ds *data.Dataset) float64 {
	factor := 1.0
	for _, r := range ds.ExistingRoads {
		a, okA := ds.Location(r.From)
		b, okB := ds.Location(r.To)
		if !okA || !okB {
			continue
		}
		if straight := geo.DistanceKm(a, b); straight > 0 {
			factor = math.Min(factor, r.Distance/straight)
		}
	}
	return factor
}

// ValidateEndpoints checks a start/end pair before any search runs.
func (pf *PathFinder) ValidateEndpoints(start, end models.LocationID) error {
	if start == "" || end == "" {
		return ErrMissingEndpoint
	}
	if start == end {
		return ErrSameEndpoint
	}
	for _, id := range []models.LocationID{start, end} {
		if !pf.ds.LocationExists(id) {
			return fmt.Errorf("%w: %s", data.ErrUnknownLocation, id)
		}
	}
	return nil
}

// ShortestPath runs Dijkstra on regular-traffic travel times.
func (pf *PathFinder) ShortestPath(start, end models.LocationID, tod models.TimeOfDay, closed []string) (models.Route, error) {
	if err := pf.ValidateEndpoints(start, end); err != nil {
		return models.Route{}, err
	}
	g := pf.buildGraph(tod, false, closedSet(closed))
	path, _, err := g.Dijkstra(start, end)
	if err != nil {
		return models.Route{}, err
	}
	return pf.route(path, tod, false), nil
}

// EmergencyRoute runs A* on emergency-vehicle travel times towards a medical
// facility and attaches map coordinates.
func (pf *PathFinder) EmergencyRoute(start, end models.LocationID, tod models.TimeOfDay) (models.Route, error) {
	if err := pf.ValidateEndpoints(start, end); err != nil {
		return models.Route{}, err
	}
	if !pf.ds.IsMedicalFacility(end) {
		return models.Route{}, fmt.Errorf("%w: %s", ErrNotMedical, end)
	}

	g := pf.buildGraph(tod, true, nil)
	path, _, err := g.AStar(start, end, pf.heuristic)
	if err != nil {
		return models.Route{}, err
	}

	route := pf.route(path, tod, true)
	line := geo.PathLine(path, pf.ds.Location)
	route.PathCoords = geo.PathCoords(line)
	route.Geometry = geo.PathGeometry(line)
	route.MapLengthKm = geo.PathLengthKm(line)
	return route, nil
}

// heuristic is the scaled straight-line distance covered at emergency top
// speed, in hours.
func (pf *PathFinder) heuristic(from, goal models.LocationID) float64 {
	a, okA := pf.ds.Location(from)
	b, okB := pf.ds.Location(goal)
	if !okA || !okB {
		return 0
	}
	return geo.DistanceKm(a, b) * pf.crowFactor / emergencySpeedKmh
}

// AlternateRoutes finds the primary route, then repeatedly closes the most
// congested segment of the latest route and searches again.
func (pf *PathFinder) AlternateRoutes(start, end models.LocationID, tod models.TimeOfDay, closed []string, count int) (models.AlternateRoutesResponse, error) {
	if count <= 0 {
		count = DefaultAlternates
	}
	avoid := closedSet(closed)

	primary, err := pf.ShortestPath(start, end, tod, closed)
	if err != nil {
		return models.AlternateRoutesResponse{}, err
	}
	routes := []models.Route{primary}
	last := primary

	for i := 0; i < count-1; i++ {
		worst, ok := mostCongested(last.PathDetails.Steps)
		if !ok {
			break
		}
		avoid[models.RoadKey(worst.From, worst.To)] = true

		g := pf.buildGraph(tod, false, avoid)
		path, _, err := g.Dijkstra(start, end)
		if errors.Is(err, graphs.ErrNoPath) {
			break
		}
		if err != nil {
			return models.AlternateRoutesResponse{}, err
		}
		if containsPath(routes, path) {
			continue
		}
		last = pf.route(path, tod, false)
		routes = append(routes, last)
	}

	return models.AlternateRoutesResponse{
		Routes:              routes,
		Primary:             routes[0],
		Alternates:          append([]models.Route{}, routes[1:]...),
		CongestionReduction: congestionReduction(routes),
	}, nil
}

// EdgeWeight is the travel time in hours used as the search cost of a road.
func EdgeWeight(road models.ExistingRoad, traffic float64, tod models.TimeOfDay, emergency bool) float64 {
	congestion := math.Min(traffic/road.Capacity, congestionCap)
	if mult, ok := trafficMultipliers[tod]; ok {
		congestion *= mult
	}

	speed := segmentSpeed(congestion, emergency)
	if speed <= 0 {
		return math.Inf(1)
	}
	weight := road.Distance / speed * conditionFactor(road.Condition)
	if congestion > CongestionThreshold {
		weight *= 1 + (congestion-CongestionThreshold)*2
	}
	return weight
}

func segmentSpeed(congestion float64, emergency bool) float64 {
	if emergency {
		return emergencySpeedKmh * math.Max(0.4, 1-congestion*0.3)
	}
	return regularSpeedKmh * math.Max(0.2, 1-congestion*0.4)
}

// conditionFactor ranges from 1.0 on a perfect road to 1.45 on the worst.
func conditionFactor(condition float64) float64 {
	return 1 + (10-condition)*0.05
}

func (pf *PathFinder) buildGraph(tod models.TimeOfDay, emergency bool, avoid map[string]bool) *graphs.Graph {
	g := graphs.NewGraph()
	for _, loc := range pf.ds.Locations() {
		g.AddNode(graphs.Node{ID: loc.ID, Latitude: loc.Y, Longitude: loc.X})
	}
	for _, road := range pf.ds.ExistingRoads {
		if avoid[models.RoadKey(road.From, road.To)] || avoid[models.RoadKey(road.To, road.From)] {
			continue
		}
		traffic := pf.ds.RoadTraffic(road.From, road.To, tod)
		g.AddUndirectedEdge(graphs.Edge{
			FromID:   road.From,
			ToID:     road.To,
			Weight:   EdgeWeight(road, traffic, tod, emergency),
			Distance: road.Distance,
		})
	}
	return g
}

func (pf *PathFinder) route(path []models.LocationID, tod models.TimeOfDay, emergency bool) models.Route {
	details := pf.pathDetails(path, tod, emergency)
	total := 0.0
	for _, s := range details.Steps {
		total += s.Time
	}
	return models.Route{
		Path:        path,
		Distance:    details.TotalDistance,
		Time:        total,
		PathDetails: details,
	}
}

// pathDetails reports raw volume over capacity per step; the time-of-day
// multiplier only shapes the search weights.
func (pf *PathFinder) pathDetails(path []models.LocationID, tod models.TimeOfDay, emergency bool) models.PathDetails {
	details := models.PathDetails{Steps: []models.RouteStep{}}
	sum := 0.0

	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		road, ok := pf.ds.RoadBetween(from, to)
		if !ok {
			continue
		}
		traffic := pf.ds.RoadTraffic(from, to, tod)
		congestion := math.Min(traffic/road.Capacity, congestionCap)
		minutes := road.Distance / segmentSpeed(congestion, emergency) * conditionFactor(road.Condition) * 60

		step := models.RouteStep{
			From:        from,
			To:          to,
			FromName:    pf.ds.LocationName(from),
			ToName:      pf.ds.LocationName(to),
			Distance:    road.Distance,
			Condition:   road.Condition,
			Traffic:     traffic,
			Capacity:    road.Capacity,
			Congestion:  congestion,
			Time:        minutes,
			IsCongested: congestion > CongestionThreshold,
		}
		details.Steps = append(details.Steps, step)
		details.TotalDistance += road.Distance
		sum += congestion
		if step.IsCongested {
			details.CongestedSegments++
		}
	}
	if n := len(details.Steps); n > 0 {
		details.AverageCongestion = sum / float64(n)
	}
	return details
}

func mostCongested(steps []models.RouteStep) (models.RouteStep, bool) {
	if len(steps) == 0 {
		return models.RouteStep{}, false
	}
	worst := steps[0]
	for _, s := range steps[1:] {
		if s.Congestion > worst.Congestion {
			worst = s
		}
	}
	return worst, true
}

func congestionReduction(routes []models.Route) float64 {
	if len(routes) < 2 {
		return 0
	}
	primary := routes[0].PathDetails.AverageCongestion
	if primary == 0 {
		return 0
	}
	alt := 0.0
	for _, r := range routes[1:] {
		alt += r.PathDetails.AverageCongestion
	}
	alt /= float64(len(routes) - 1)
	return math.Max(0, (primary-alt)/primary*100)
}

func containsPath(routes []models.Route, path []models.LocationID) bool {
	for _, r := range routes {
		if samePath(r.Path, path) {
			return true
		}
	}
	return false
}

func samePath(a, b []models.LocationID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// closedSet normalizes "A-B" closures. Malformed keys are ignored.
func closedSet(closed []string) map[string]bool {
	set := make(map[string]bool, len(closed))
	for _, key := range closed {
		from, to, ok := models.SplitRoadKey(strings.TrimSpace(key))
		if !ok {
			continue
		}
		set[models.RoadKey(from, to)] = true
	}
	return set
}
