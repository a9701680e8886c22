// Package geo converts dataset coordinates into orb geometries and GeoJSON
// for the dashboard map layers.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

// Point turns a location into an orb point. Dataset x is longitude, y latitude.
func Point(loc models.Location) orb.Point {
	return orb.Point{loc.X, loc.Y}
}

// DistanceKm is the great-circle distance between two locations.
func DistanceKm(a, b models.Location) float64 {
	return geo.DistanceHaversine(Point(a), Point(b)) / 1000
}

// Lookup resolves a location id to its record.
type Lookup func(id models.LocationID) (models.Location, bool)

// PathLine builds the polyline for a path, skipping ids that do not resolve.
func PathLine(path []models.LocationID, lookup Lookup) orb.LineString {
	line := make(orb.LineString, 0, len(path))
	for _, id := range path {
		if loc, ok := lookup(id); ok {
			line = append(line, Point(loc))
		}
	}
	return line
}

// PathCoords is the {lat,lng} form Leaflet consumes directly.
func PathCoords(line orb.LineString) []models.Coordinate {
	coords := make([]models.Coordinate, 0, len(line))
	for _, p := range line {
		coords = append(coords, models.Coordinate{Lat: p.Lat(), Lng: p.Lon()})
	}
	return coords
}

// PathLengthKm sums the haversine length of a polyline.
func PathLengthKm(line orb.LineString) float64 {
	return geo.LengthHaversine(line) / 1000
}

// PathGeometry wraps a route polyline as a GeoJSON geometry.
func PathGeometry(line orb.LineString) *geojson.Geometry {
	return geojson.NewGeometry(line)
}

// NetworkFeatures renders locations as points and roads as lines. Planned
// roads carry "existing": false.
func NetworkFeatures(locations []models.Location, existing []models.ExistingRoad, potential []models.PotentialRoad) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	byID := make(map[models.LocationID]models.Location, len(locations))

	for _, loc := range locations {
		byID[loc.ID] = loc
		f := geojson.NewFeature(Point(loc))
		f.ID = string(loc.ID)
		f.Properties["name"] = loc.Name
		f.Properties["kind"] = loc.Kind
		if loc.Kind == models.KindNeighborhood {
			f.Properties["population"] = loc.Population
			f.Properties["type"] = loc.AreaType
		} else {
			f.Properties["type"] = loc.FacilityType
		}
		fc.Append(f)
	}

	road := func(from, to models.LocationID) *geojson.Feature {
		a, okA := byID[from]
		b, okB := byID[to]
		if !okA || !okB {
			return nil
		}
		f := geojson.NewFeature(orb.LineString{Point(a), Point(b)})
		f.ID = models.RoadKey(from, to)
		f.Properties["from"] = string(from)
		f.Properties["to"] = string(to)
		return f
	}

	for _, r := range existing {
		if f := road(r.From, r.To); f != nil {
			f.Properties["existing"] = true
			f.Properties["distance"] = r.Distance
			f.Properties["capacity"] = r.Capacity
			f.Properties["condition"] = r.Condition
			fc.Append(f)
		}
	}
	for _, r := range potential {
		if f := road(r.From, r.To); f != nil {
			f.Properties["existing"] = false
			f.Properties["distance"] = r.Distance
			f.Properties["capacity"] = r.Capacity
			f.Properties["cost"] = r.Cost
			fc.Append(f)
		}
	}
	return fc
}
