package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// LocationID identifies a neighborhood ("1".."15") or a facility ("F1"...).
// Clients send neighborhood ids either as JSON numbers or strings.
type LocationID string

func (id *LocationID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = LocationID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("location id must be a string or a number: %s", string(b))
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*id = LocationID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = LocationID(n.String())
	return nil
}

func (id LocationID) String() string { return string(id) }

type Neighborhood struct {
	ID         LocationID `json:"id"`
	Name       string     `json:"name"`
	Population int        `json:"population"`
	Type       string     `json:"type"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
}

type Facility struct {
	ID   LocationID `json:"id"`
	Name string     `json:"name"`
	Type string     `json:"type"`
	X    float64    `json:"x"`
	Y    float64    `json:"y"`
}

// Location is the flattened view of either kind, used by the optimizers.
type Location struct {
	ID           LocationID `json:"id"`
	Name         string     `json:"name"`
	Kind         string     `json:"type"`
	Population   int        `json:"population"`
	AreaType     string     `json:"area_type,omitempty"`
	FacilityType string     `json:"facility_type,omitempty"`
	X            float64    `json:"x"`
	Y            float64    `json:"y"`
}

const (
	KindNeighborhood = "neighborhood"
	KindFacility     = "facility"
)

func (n Neighborhood) Location() Location {
	return Location{
		ID:         n.ID,
		Name:       n.Name,
		Kind:       KindNeighborhood,
		Population: n.Population,
		AreaType:   n.Type,
		X:          n.X,
		Y:          n.Y,
	}
}

func (f Facility) Location() Location {
	return Location{
		ID:           f.ID,
		Name:         f.Name,
		Kind:         KindFacility,
		FacilityType: f.Type,
		X:            f.X,
		Y:            f.Y,
	}
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
