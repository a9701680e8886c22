package models

type RouteRequest struct {
	Start       LocationID `json:"start"`
	End         LocationID `json:"end"`
	TimeOfDay   string     `json:"time_of_day,omitempty"`
	ClosedRoads []string   `json:"closed_roads,omitempty"`
	// Count limits alternate route searches; zero means the default.
	Count int `json:"count,omitempty"`
}

type NetworkRequest struct {
	Algorithm            string `json:"algorithm"`
	PrioritizePopulation *bool  `json:"prioritize_population,omitempty"`
}

type TrafficAnalysisRequest struct {
	Location  LocationID `json:"location"`
	TimeOfDay string     `json:"time_of_day,omitempty"`
}

type SignalRequest struct {
	Intersections []LocationID `json:"intersections"`
	TimeOfDay     string       `json:"time_of_day,omitempty"`
}

// TrafficUpdate is a live volume reading for one road and period.
type TrafficUpdate struct {
	Road      string  `json:"road"`
	TimeOfDay string  `json:"time_of_day"`
	Vehicles  float64 `json:"vehicles"`
}
