package models

import "strings"

type ExistingRoad struct {
	From      LocationID `json:"from"`
	To        LocationID `json:"to"`
	Distance  float64    `json:"distance"`
	Capacity  float64    `json:"capacity"`
	Condition float64    `json:"condition"`
}

type PotentialRoad struct {
	From     LocationID `json:"from"`
	To       LocationID `json:"to"`
	Distance float64    `json:"distance"`
	Capacity float64    `json:"capacity"`
	Cost     float64    `json:"cost"`
}

// TrafficFlow holds vehicles per hour on a road for each period of the day.
type TrafficFlow struct {
	Road      string  `json:"road"`
	Morning   float64 `json:"morning"`
	Afternoon float64 `json:"afternoon"`
	Evening   float64 `json:"evening"`
	Night     float64 `json:"night"`
}

func (f TrafficFlow) At(t TimeOfDay) float64 {
	switch t {
	case Afternoon:
		return f.Afternoon
	case Evening:
		return f.Evening
	case Night:
		return f.Night
	default:
		return f.Morning
	}
}

func (f *TrafficFlow) Set(t TimeOfDay, vehicles float64) {
	switch t {
	case Afternoon:
		f.Afternoon = vehicles
	case Evening:
		f.Evening = vehicles
	case Night:
		f.Night = vehicles
	default:
		f.Morning = vehicles
	}
}

// RoadKey is the canonical "from-to" key used by traffic records and closures.
func RoadKey(from, to LocationID) string {
	return string(from) + "-" + string(to)
}

// SplitRoadKey parses "A-B". Facility ids never contain '-', so the first
// separator is the only one.
func SplitRoadKey(key string) (LocationID, LocationID, bool) {
	from, to, ok := strings.Cut(strings.TrimSpace(key), "-")
	if !ok || from == "" || to == "" {
		return "", "", false
	}
	return LocationID(from), LocationID(to), true
}

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)
