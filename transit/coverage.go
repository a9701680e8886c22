package transit

import (
	"github.com/Ahmed2003-Rav/Egypt-Map/geo"
	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

const coverageRadiusKm = 0.5

// coverage counts residents of neighborhoods within walking distance of any
// metro station or bus stop.
func (o *Optimizer) coverage() models.Coverage {
	res := models.Coverage{
		TotalPopulation: o.ds.TotalPopulation(),
		MetroStations:   len(o.stations),
		BusStops:        len(o.stops),
	}

	var served []models.Location
	for _, set := range []map[models.LocationID]bool{o.stations, o.stops} {
		for id := range set {
			if loc, ok := o.ds.Location(id); ok {
				served = append(served, loc)
			}
		}
	}

	for _, n := range o.ds.Neighborhoods {
		home := n.Location()
		for _, s := range served {
			if geo.DistanceKm(home, s) <= coverageRadiusKm {
				res.PopulationCovered += n.Population
				break
			}
		}
	}
	if res.TotalPopulation > 0 {
		res.CoveragePercentage = float64(res.PopulationCovered) / float64(res.TotalPopulation) * 100
	}
	return res
}

// MajorLocations are the dense neighborhoods plus the airport and transit hub.
func (o *Optimizer) MajorLocations() []models.LocationID {
	var out []models.LocationID
	for _, n := range o.ds.Neighborhoods {
		if n.Population > 100000 {
			out = append(out, n.ID)
		}
	}
	for _, f := range o.ds.Facilities {
		if f.Type == "Airport" || f.Type == "Transit Hub" {
			out = append(out, f.ID)
		}
	}
	return out
}

// travelTimes runs shortest paths over the passenger network between every
// pair of major locations. Unreachable pairs are left out.
func (o *Optimizer) travelTimes() models.TravelTimes {
	g := o.Graph()
	major := o.MajorLocations()
	res := models.TravelTimes{TravelTimes: []models.TravelTime{}}

	total := 0.0
	for i, from := range major {
		times := g.ShortestTimes(from)
		for _, to := range major[i+1:] {
			minutes, ok := times[to]
			if !ok || minutes == 0 {
				continue
			}
			res.TravelTimes = append(res.TravelTimes, models.TravelTime{
				From:     from,
				To:       to,
				Time:     minutes,
				FromName: o.ds.LocationName(from),
				ToName:   o.ds.LocationName(to),
			})
			total += minutes
		}
	}
	res.NumPairs = len(res.TravelTimes)
	if res.NumPairs > 0 {
		res.AverageTime = total / float64(res.NumPairs)
	}
	return res
}
