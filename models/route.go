package models

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

type Route struct {
	Path        []LocationID `json:"path"`
	Distance    float64      `json:"distance"`
	Time        float64      `json:"time"`
	PathDetails PathDetails  `json:"path_details"`

	// Emergency routes only.
	PathCoords []Coordinate      `json:"path_coords,omitempty"`
	Geometry   *geojson.Geometry `json:"geometry,omitempty"`

	// MapLengthKm is the great-circle length of the drawn polyline.
	MapLengthKm float64 `json:"map_length_km,omitempty"`
}

type PathDetails struct {
	Steps             []RouteStep `json:"steps"`
	TotalDistance     float64     `json:"total_distance"`
	AverageCongestion float64     `json:"average_congestion"`
	CongestedSegments int         `json:"congested_segments"`
}

// RouteStep describes one road segment of a route. Time is in minutes.
type RouteStep struct {
	From        LocationID `json:"from"`
	To          LocationID `json:"to"`
	FromName    string     `json:"from_name"`
	ToName      string     `json:"to_name"`
	Distance    float64    `json:"distance"`
	Condition   float64    `json:"condition"`
	Traffic     float64    `json:"traffic"`
	Capacity    float64    `json:"capacity"`
	Congestion  float64    `json:"congestion"`
	Time        float64    `json:"time"`
	IsCongested bool       `json:"is_congested"`
}

type AlternateRoutesResponse struct {
	Routes              []Route `json:"routes"`
	Primary             Route   `json:"primary"`
	Alternates          []Route `json:"alternates"`
	CongestionReduction float64 `json:"congestion_reduction"`
}

type RoadTraffic struct {
	From        LocationID `json:"from"`
	To          LocationID `json:"to"`
	FromName    string     `json:"from_name"`
	ToName      string     `json:"to_name"`
	Traffic     float64    `json:"traffic"`
	Capacity    float64    `json:"capacity"`
	Congestion  float64    `json:"congestion"`
	IsCongested bool       `json:"is_congested"`
}

type TrafficStats struct {
	TotalRoads           int     `json:"total_roads"`
	CongestedRoads       int     `json:"congested_roads"`
	CongestionPercentage float64 `json:"congestion_percentage"`
	AverageCongestion    float64 `json:"average_congestion"`
}

type LocationRef struct {
	ID   LocationID `json:"id"`
	Name string     `json:"name"`
}

type TrafficAnalysis struct {
	Location        LocationRef   `json:"location"`
	TimeOfDay       TimeOfDay     `json:"time_of_day"`
	ConnectedRoads  []RoadTraffic `json:"connected_roads"`
	Stats           TrafficStats  `json:"congestion_stats"`
	Recommendations []string      `json:"recommendations"`
}

// EmergencyDispatch is the message sent to ambulance dispatch for every
// computed emergency route.
type EmergencyDispatch struct {
	RequestID string     `json:"request_id"`
	Start     LocationID `json:"start"`
	End       LocationID `json:"end"`
	Hospital  string     `json:"hospital"`
	TimeOfDay TimeOfDay  `json:"time_of_day"`
	Route     Route      `json:"route"`
	IssuedAt  time.Time  `json:"issued_at"`
}
