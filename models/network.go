package models

type NetworkNode struct {
	ID         LocationID `json:"id"`
	Name       string     `json:"name"`
	Population int        `json:"population"`
	Type       string     `json:"type"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
}

// NetworkEdge is a road chosen for the optimized network. Planned roads have
// Existing false and carry a construction cost.
type NetworkEdge struct {
	From      LocationID `json:"from"`
	To        LocationID `json:"to"`
	Weight    float64    `json:"weight"`
	Existing  bool       `json:"existing"`
	Distance  float64    `json:"distance"`
	Capacity  float64    `json:"capacity"`
	Condition float64    `json:"condition,omitempty"`
	Cost      float64    `json:"cost,omitempty"`
}

type NetworkResult struct {
	Algorithm                   string        `json:"algorithm"`
	Nodes                       []NetworkNode `json:"nodes"`
	Edges                       []NetworkEdge `json:"edges"`
	TotalDistance               float64       `json:"total_distance"`
	TotalCost                   float64       `json:"total_cost"`
	NewRoads                    []NetworkEdge `json:"new_roads"`
	CriticalFacilitiesConnected bool          `json:"critical_facilities_connected"`
}
