package transit

import (
	"sort"

	"github.com/Ahmed2003-Rav/Egypt-Map/graphs"
	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

// transfers finds bus stops that are also metro stations and ranks them by
// the passengers expected to change there.
func (o *Optimizer) transfers(metro []models.MetroSchedule, bus []models.BusSchedule) models.TransferPlan {
	stations := make(map[models.LocationID]bool)
	for _, line := range metro {
		for _, id := range line.StationIDs {
			stations[id] = true
		}
	}

	points := make(map[models.LocationID]*models.TransferPoint)
	var order []models.LocationID
	for _, route := range bus {
		for _, id := range route.StopIDs {
			if !stations[id] {
				continue
			}
			p, ok := points[id]
			if !ok {
				p = &models.TransferPoint{Name: o.ds.LocationName(id), MetroLines: []string{}, BusRoutes: []string{}}
				if loc, found := o.ds.Location(id); found {
					p.X, p.Y = loc.X, loc.Y
				}
				points[id] = p
				order = append(order, id)
			}
			p.BusRoutes = appendUnique(p.BusRoutes, route.RouteID)
		}
	}
	for _, line := range metro {
		for _, id := range line.StationIDs {
			if p, ok := points[id]; ok {
				p.MetroLines = appendUnique(p.MetroLines, line.LineID)
			}
		}
	}

	busDemand := make(map[string]float64, len(bus))
	for _, r := range bus {
		busDemand[r.RouteID] = r.Demand
	}
	metroDemand := make(map[string]float64, len(metro))
	for _, l := range metro {
		metroDemand[l.LineID] = l.Demand
	}
	for _, p := range points {
		passengers := 0.0
		for _, r := range p.BusRoutes {
			passengers += busDemand[r]
		}
		for _, l := range p.MetroLines {
			passengers += metroDemand[l]
		}
		p.TransferVolume = int(transferShare * passengers)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return points[order[i]].TransferVolume > points[order[j]].TransferVolume
	})

	plan := models.TransferPlan{
		AllTransfers: make(map[models.LocationID]models.TransferPoint, len(points)),
		TopTransfers: []models.TopTransfer{},
	}
	for _, id := range order {
		plan.AllTransfers[id] = *points[id]
	}
	for _, id := range order[:min(topTransferSize, len(order))] {
		p := points[id]
		score := o.TransferScore(id)
		plan.TopTransfers = append(plan.TopTransfers, models.TopTransfer{
			Location:        id,
			Name:            p.Name,
			Score:           score,
			TransferVolume:  p.TransferVolume,
			Recommendations: TransferRecommendations(score),
			X:               p.X,
			Y:               p.Y,
		})
	}
	return plan
}

// TransferScore rates a transfer point from 0 to 10.
func (o *Optimizer) TransferScore(id models.LocationID) int {
	score := 6
	loc, ok := o.ds.Location(id)
	if !ok {
		return score
	}
	if loc.FacilityType == "Transit Hub" || loc.FacilityType == "Commercial" {
		score += 2
	}
	if len(o.ds.ConnectedRoads(id)) > 2 {
		score++
	}
	return min(10, score)
}

func TransferRecommendations(score int) []string {
	out := []string{}
	if score < 8 {
		out = append(out, "Expand waiting area capacity")
	}
	if score < 7 {
		out = append(out, "Improve pedestrian access routes")
	}
	if score < 6 {
		out = append(out, "Add real-time information displays")
	}
	if score < 5 {
		out = append(out, "Increase security presence")
	}
	return out
}

// integratedNetwork merges metro and bus service into one map layer. Stops
// served by both become "transfer" nodes.
func (o *Optimizer) integratedNetwork(metro []models.MetroSchedule, bus []models.BusSchedule) models.TransitNetwork {
	net := models.TransitNetwork{
		Nodes:          []models.TransitNode{},
		Edges:          []models.TransitEdge{},
		TransferPoints: []models.LocationID{},
	}
	index := make(map[models.LocationID]int)

	for _, line := range metro {
		for _, id := range line.StationIDs {
			if i, ok := index[id]; ok {
				net.Nodes[i].Lines = appendUnique(net.Nodes[i].Lines, line.LineID)
				continue
			}
			loc, ok := o.ds.Location(id)
			if !ok {
				continue
			}
			index[id] = len(net.Nodes)
			net.Nodes = append(net.Nodes, models.TransitNode{
				ID: id, Name: loc.Name, Type: "metro", X: loc.X, Y: loc.Y, Lines: []string{line.LineID},
			})
		}
		for _, e := range o.segments(line.StationIDs) {
			e.Type, e.Line = "metro", line.LineID
			e.Frequency, e.PeakFrequency = line.BaseFrequency, line.PeakFrequency
			net.Edges = append(net.Edges, e)
		}
	}

	for _, route := range bus {
		for _, id := range route.StopIDs {
			if i, ok := index[id]; ok {
				node := &net.Nodes[i]
				node.Routes = appendUnique(node.Routes, route.RouteID)
				if node.Type == "metro" {
					node.Type = "transfer"
					net.TransferPoints = append(net.TransferPoints, id)
				}
				continue
			}
			loc, ok := o.ds.Location(id)
			if !ok {
				continue
			}
			index[id] = len(net.Nodes)
			net.Nodes = append(net.Nodes, models.TransitNode{
				ID: id, Name: loc.Name, Type: "bus", X: loc.X, Y: loc.Y, Routes: []string{route.RouteID},
			})
		}
		for _, e := range o.segments(route.StopIDs) {
			e.Type, e.Route = "bus", route.RouteID
			e.Frequency, e.PeakFrequency = route.BaseFrequency, route.PeakFrequency
			net.Edges = append(net.Edges, e)
		}
	}
	return net
}

func (o *Optimizer) segments(ids []models.LocationID) []models.TransitEdge {
	var out []models.TransitEdge
	for i := 0; i+1 < len(ids); i++ {
		a, okA := o.ds.Location(ids[i])
		b, okB := o.ds.Location(ids[i+1])
		if !okA || !okB {
			continue
		}
		out = append(out, models.TransitEdge{
			From:       ids[i],
			To:         ids[i+1],
			FromCoords: [2]float64{a.Y, a.X},
			ToCoords:   [2]float64{b.Y, b.X},
		})
	}
	return out
}

// Graph builds the passenger network weighted in minutes. Where a metro and a
// bus segment join the same pair, the faster one wins.
func (o *Optimizer) Graph() *graphs.Graph {
	g := graphs.NewGraph()
	add := func(a, b models.LocationID, minutes float64) {
		g.AddNode(graphs.Node{ID: a})
		g.AddNode(graphs.Node{ID: b})
		if e, ok := g.Edge(a, b); ok && e.Weight <= minutes {
			return
		}
		g.AddUndirectedEdge(graphs.Edge{FromID: a, ToID: b, Weight: minutes})
	}

	for _, line := range o.ds.MetroLines {
		n := len(line.Stations)
		minutes := line.Distance / float64(n-1) / metroSpeedKmh * 60
		for i := 0; i+1 < n; i++ {
			add(line.Stations[i], line.Stations[i+1], minutes)
		}
	}
	for _, route := range o.ds.BusRoutes {
		n := len(route.Stops)
		minutes := busRouteKm / float64(n-1) / busSpeedKmh * 60
		for i := 0; i+1 < n; i++ {
			add(route.Stops[i], route.Stops[i+1], minutes)
		}
	}
	return g
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
