package models

import (
	"encoding/json"
	"time"
)

type ApiError struct {
	Error string `json:"error"`
}

type RoadNetworkResponse struct {
	Neighborhoods  []Neighborhood  `json:"neighborhoods"`
	Facilities     []Facility      `json:"facilities"`
	ExistingRoads  []ExistingRoad  `json:"existing_roads"`
	PotentialRoads []PotentialRoad `json:"potential_roads"`
}

// PlanRun is one archived optimization or routing result.
type PlanRun struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	RequestID  string          `json:"request_id,omitempty"`
	Request    json.RawMessage `json:"request"`
	Response   json.RawMessage `json:"response"`
	DurationMs int64           `json:"duration_ms"`
	CreatedAt  time.Time       `json:"created_at"`
}
