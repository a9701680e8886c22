package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
	"github.com/Ahmed2003-Rav/Egypt-Map/utils"
)

var (
	ErrUnknownLocation = errors.New("location not found")
	ErrUnknownRoad     = errors.New("road not found")
	ErrInvalidDataset  = errors.New("invalid dataset")
)

// Dataset is an immutable snapshot of the city model. Mutations go through
// the With* methods, which return a new value.
type Dataset struct {
	City            string                   `json:"city"`
	Neighborhoods   []models.Neighborhood    `json:"neighborhoods"`
	Facilities      []models.Facility        `json:"facilities"`
	ExistingRoads   []models.ExistingRoad    `json:"existing_roads"`
	PotentialRoads  []models.PotentialRoad   `json:"potential_roads"`
	TrafficFlows    []models.TrafficFlow     `json:"traffic_flows"`
	MetroLines      []models.MetroLine       `json:"metro_lines"`
	BusRoutes       []models.BusRoute        `json:"bus_routes"`
	TransportDemand []models.TransportDemand `json:"transport_demand"`

	locations map[models.LocationID]models.Location
	order     []models.LocationID
	roads     map[string]int
	traffic   map[string]int
}

// Prepare validates the raw records and builds the lookup indexes.
func Prepare(ds *Dataset) (*Dataset, error) {
	ds.locations = make(map[models.LocationID]models.Location, len(ds.Neighborhoods)+len(ds.Facilities))
	ds.order = ds.order[:0]
	ds.roads = make(map[string]int, 2*len(ds.ExistingRoads))
	ds.traffic = make(map[string]int, len(ds.TrafficFlows))

	for _, n := range ds.Neighborhoods {
		if err := ds.addLocation(n.Location()); err != nil {
			return nil, err
		}
	}
	for _, f := range ds.Facilities {
		if err := ds.addLocation(f.Location()); err != nil {
			return nil, err
		}
	}

	for i, r := range ds.ExistingRoads {
		if err := ds.checkEndpoints(r.From, r.To); err != nil {
			return nil, err
		}
		if r.Capacity <= 0 {
			return nil, fmt.Errorf("%w: road %s has non-positive capacity", ErrInvalidDataset, models.RoadKey(r.From, r.To))
		}
		if r.Condition < 1 || r.Condition > 10 {
			return nil, fmt.Errorf("%w: road %s condition %.1f outside 1..10", ErrInvalidDataset, models.RoadKey(r.From, r.To), r.Condition)
		}
		ds.roads[models.RoadKey(r.From, r.To)] = i
		ds.roads[models.RoadKey(r.To, r.From)] = i
	}
	for _, r := range ds.PotentialRoads {
		if err := ds.checkEndpoints(r.From, r.To); err != nil {
			return nil, err
		}
	}
	for i, f := range ds.TrafficFlows {
		from, to, ok := models.SplitRoadKey(f.Road)
		if !ok {
			return nil, fmt.Errorf("%w: malformed traffic road key %q", ErrInvalidDataset, f.Road)
		}
		ds.traffic[models.RoadKey(from, to)] = i
		ds.traffic[models.RoadKey(to, from)] = i
	}
	for _, l := range ds.MetroLines {
		if len(l.Stations) < 2 {
			return nil, fmt.Errorf("%w: metro line %s needs at least two stations", ErrInvalidDataset, l.ID)
		}
	}
	for _, r := range ds.BusRoutes {
		if len(r.Stops) < 2 {
			return nil, fmt.Errorf("%w: bus route %s needs at least two stops", ErrInvalidDataset, r.ID)
		}
	}
	return ds, nil
}

func (ds *Dataset) addLocation(loc models.Location) error {
	if loc.ID == "" {
		return fmt.Errorf("%w: location %q has no id", ErrInvalidDataset, loc.Name)
	}
	if _, dup := ds.locations[loc.ID]; dup {
		return fmt.Errorf("%w: duplicate location id %s", ErrInvalidDataset, loc.ID)
	}
	ds.locations[loc.ID] = loc
	ds.order = append(ds.order, loc.ID)
	return nil
}

func (ds *Dataset) checkEndpoints(from, to models.LocationID) error {
	if !ds.LocationExists(from) || !ds.LocationExists(to) {
		return fmt.Errorf("%w: road %s references an unknown location", ErrInvalidDataset, models.RoadKey(from, to))
	}
	return nil
}

func (ds *Dataset) LocationExists(id models.LocationID) bool {
	_, ok := ds.locations[id]
	return ok
}

func (ds *Dataset) Location(id models.LocationID) (models.Location, bool) {
	loc, ok := ds.locations[id]
	return loc, ok
}

// Locations returns neighborhoods followed by facilities, in dataset order.
func (ds *Dataset) Locations() []models.Location {
	out := make([]models.Location, 0, len(ds.order))
	for _, id := range ds.order {
		out = append(out, ds.locations[id])
	}
	return out
}

func (ds *Dataset) Facility(id models.LocationID) (models.Facility, bool) {
	for _, f := range ds.Facilities {
		if f.ID == id {
			return f, true
		}
	}
	return models.Facility{}, false
}

// IsMedicalFacility reports whether id is a facility whose type mentions "Medical".
func (ds *Dataset) IsMedicalFacility(id models.LocationID) bool {
	f, ok := ds.Facility(id)
	return ok && strings.Contains(f.Type, "Medical")
}

func (ds *Dataset) LocationName(id models.LocationID) string {
	if loc, ok := ds.locations[id]; ok {
		return loc.Name
	}
	return "Location " + string(id)
}

func (ds *Dataset) Population(id models.LocationID) int {
	return ds.locations[id].Population
}

// RoadBetween finds an existing road in either direction.
func (ds *Dataset) RoadBetween(a, b models.LocationID) (models.ExistingRoad, bool) {
	i, ok := ds.roads[models.RoadKey(a, b)]
	if !ok {
		return models.ExistingRoad{}, false
	}
	return ds.ExistingRoads[i], true
}

// RoadTraffic returns vehicles per hour between a and b. Roads without a flow
// record carry half their capacity.
func (ds *Dataset) RoadTraffic(a, b models.LocationID, t models.TimeOfDay) float64 {
	if i, ok := ds.traffic[models.RoadKey(a, b)]; ok {
		return ds.TrafficFlows[i].At(t)
	}
	if r, ok := ds.RoadBetween(a, b); ok {
		return r.Capacity / 2
	}
	return 0
}

// ConnectedRoads lists existing roads with id as an endpoint.
func (ds *Dataset) ConnectedRoads(id models.LocationID) []models.ExistingRoad {
	var out []models.ExistingRoad
	for _, r := range ds.ExistingRoads {
		if r.From == id || r.To == id {
			out = append(out, r)
		}
	}
	return out
}

func (ds *Dataset) MetroStations() map[models.LocationID]bool {
	set := make(map[models.LocationID]bool)
	for _, l := range ds.MetroLines {
		for _, s := range l.Stations {
			set[s] = true
		}
	}
	return set
}

func (ds *Dataset) BusStops() map[models.LocationID]bool {
	set := make(map[models.LocationID]bool)
	for _, r := range ds.BusRoutes {
		for _, s := range r.Stops {
			set[s] = true
		}
	}
	return set
}

func (ds *Dataset) TotalPopulation() int {
	total := 0
	for _, n := range ds.Neighborhoods {
		total += n.Population
	}
	return total
}

// WithTraffic returns a copy of the dataset with one road's volume replaced.
// Roads without a flow record get one, seeded from the half-capacity default.
func (ds *Dataset) WithTraffic(from, to models.LocationID, t models.TimeOfDay, vehicles float64) (*Dataset, error) {
	road, ok := ds.RoadBetween(from, to)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoad, models.RoadKey(from, to))
	}
	if vehicles < 0 {
		return nil, fmt.Errorf("%w: negative vehicle count %.0f", utils.ErrInvalidInput, vehicles)
	}

	next := *ds
	next.TrafficFlows = append([]models.TrafficFlow(nil), ds.TrafficFlows...)
	if i, ok := ds.traffic[models.RoadKey(from, to)]; ok {
		next.TrafficFlows[i].Set(t, vehicles)
	} else {
		half := road.Capacity / 2
		flow := models.TrafficFlow{
			Road:      models.RoadKey(road.From, road.To),
			Morning:   half,
			Afternoon: half,
			Evening:   half,
			Night:     half,
		}
		flow.Set(t, vehicles)
		next.TrafficFlows = append(next.TrafficFlows, flow)
	}
	next.order = nil
	return Prepare(&next)
}
