package models

type MetroLine struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Stations   []LocationID `json:"stations"`
	Distance   float64      `json:"distance"`
	Passengers float64      `json:"passengers"`
}

type BusRoute struct {
	ID         string       `json:"id"`
	Stops      []LocationID `json:"stops"`
	Buses      int          `json:"buses"`
	Passengers float64      `json:"passengers"`
}

type TransportDemand struct {
	From       LocationID `json:"from"`
	To         LocationID `json:"to"`
	Passengers float64    `json:"passengers"`
}

type StopRef struct {
	ID   LocationID `json:"id"`
	Name string     `json:"name"`
	X    float64    `json:"x"`
	Y    float64    `json:"y"`
}

type MetroSchedule struct {
	LineID        string       `json:"line_id"`
	Name          string       `json:"name"`
	Stations      []StopRef    `json:"stations"`
	StationIDs    []LocationID `json:"station_ids"`
	BaseFrequency int          `json:"base_frequency"`
	PeakFrequency float64      `json:"peak_frequency"`
	TrainsNeeded  int          `json:"trains_needed"`
	Coverage      int          `json:"coverage"`
	Demand        float64      `json:"demand"`
	Distance      float64      `json:"distance"`
}

type BusSchedule struct {
	RouteID       string       `json:"route_id"`
	Stops         []StopRef    `json:"stops"`
	StopIDs       []LocationID `json:"stop_ids"`
	BaseFrequency int          `json:"base_frequency"`
	PeakFrequency float64      `json:"peak_frequency"`
	BusesNeeded   int          `json:"buses_needed"`
	CurrentBuses  int          `json:"current_buses"`
	Utilization   float64      `json:"utilization"`
	Coverage      int          `json:"coverage"`
	Demand        float64      `json:"demand"`
}

type TransferPoint struct {
	Name           string   `json:"name"`
	MetroLines     []string `json:"metro_lines"`
	BusRoutes      []string `json:"bus_routes"`
	TransferVolume int      `json:"transfer_volume"`
	X              float64  `json:"x"`
	Y              float64  `json:"y"`
}

type TopTransfer struct {
	Location        LocationID `json:"location"`
	Name            string     `json:"name"`
	Score           int        `json:"score"`
	TransferVolume  int        `json:"transfer_volume"`
	Recommendations []string   `json:"recommendations"`
	X               float64    `json:"x"`
	Y               float64    `json:"y"`
}

type TransferPlan struct {
	AllTransfers map[LocationID]TransferPoint `json:"all_transfers"`
	TopTransfers []TopTransfer                `json:"top_transfers"`
}

type MetroAllocation struct {
	Line          string `json:"line"`
	Name          string `json:"name"`
	CurrentTrains int    `json:"current_trains"`
	OptimalTrains int    `json:"optimal_trains"`
	Difference    int    `json:"difference"`
}

type BusAllocation struct {
	Route        string  `json:"route"`
	CurrentBuses int     `json:"current_buses"`
	OptimalBuses int     `json:"optimal_buses"`
	Difference   int     `json:"difference"`
	Utilization  float64 `json:"utilization"`
}

type ResourcePlan struct {
	Metro            []MetroAllocation `json:"metro"`
	Bus              []BusAllocation   `json:"bus"`
	TotalMetroTrains int               `json:"total_metro_trains"`
	TotalBuses       int               `json:"total_buses"`
}

// Improvement values are fractions in [0, 1].
type Improvement struct {
	Total float64 `json:"total"`
	Metro float64 `json:"metro"`
	Bus   float64 `json:"bus"`
}

type TransitNode struct {
	ID     LocationID `json:"id"`
	Name   string     `json:"name"`
	Type   string     `json:"type"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Lines  []string   `json:"lines,omitempty"`
	Routes []string   `json:"routes,omitempty"`
}

// TransitEdge coordinates are [lat, lng] pairs.
type TransitEdge struct {
	From          LocationID `json:"from"`
	To            LocationID `json:"to"`
	FromCoords    [2]float64 `json:"from_coords"`
	ToCoords      [2]float64 `json:"to_coords"`
	Type          string     `json:"type"`
	Line          string     `json:"line,omitempty"`
	Route         string     `json:"route,omitempty"`
	Frequency     int        `json:"frequency"`
	PeakFrequency float64    `json:"peak_frequency"`
}

type TransitNetwork struct {
	Nodes          []TransitNode `json:"nodes"`
	Edges          []TransitEdge `json:"edges"`
	TransferPoints []LocationID  `json:"transfer_points"`
}

type Coverage struct {
	PopulationCovered  int     `json:"population_covered"`
	TotalPopulation    int     `json:"total_population"`
	CoveragePercentage float64 `json:"coverage_percentage"`
	MetroStations      int     `json:"metro_stations"`
	BusStops           int     `json:"bus_stops"`
}

// TravelTime is in minutes.
type TravelTime struct {
	From     LocationID `json:"from"`
	To       LocationID `json:"to"`
	Time     float64    `json:"time"`
	FromName string     `json:"from_name"`
	ToName   string     `json:"to_name"`
}

type TravelTimes struct {
	AverageTime float64      `json:"average_time"`
	TravelTimes []TravelTime `json:"travel_times"`
	NumPairs    int          `json:"num_pairs"`
}

type TransportPlan struct {
	Metro       []MetroSchedule         `json:"metro"`
	Bus         []BusSchedule           `json:"bus"`
	Transfers   TransferPlan            `json:"transfers"`
	Resources   ResourcePlan            `json:"resources"`
	Improvement Improvement             `json:"improvement"`
	Network     TransitNetwork          `json:"network"`
	Coverage    Coverage                `json:"coverage"`
	TravelTimes TravelTimes             `json:"travel_times"`
	Locations   map[LocationID]Location `json:"locations"`
	MetroLines  []MetroLine             `json:"metro_lines"`
	BusRoutes   []BusRoute              `json:"bus_routes"`
}

type TransportResponse struct {
	Status string        `json:"status"`
	Data   TransportPlan `json:"data"`
}
