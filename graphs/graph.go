package graphs

import (
	"errors"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

var (
	ErrNoPath      = errors.New("no path found")
	ErrUnknownNode = errors.New("node not in graph")
)

// Node represents a graph vertex (a neighborhood, facility or stop).
type Node struct {
	ID        models.LocationID
	Latitude  float64
	Longitude float64
}

// Edge is a directed connection. Weight is whatever cost the search
// minimizes: hours for road routing, minutes for transit.
type Edge struct {
	FromID   models.LocationID
	ToID     models.LocationID
	Weight   float64
	Distance float64
}

type Graph struct {
	Nodes map[models.LocationID]Node
	Edges map[models.LocationID][]Edge
}

func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[models.LocationID]Node),
		Edges: make(map[models.LocationID][]Edge),
	}
}

func (g *Graph) AddNode(n Node) {
	g.Nodes[n.ID] = n
}

// AddUndirectedEdge stores e and its reverse. A later edge between the same
// pair replaces the earlier one.
func (g *Graph) AddUndirectedEdge(e Edge) {
	g.setEdge(e)
	g.setEdge(Edge{FromID: e.ToID, ToID: e.FromID, Weight: e.Weight, Distance: e.Distance})
}

func (g *Graph) setEdge(e Edge) {
	for i, existing := range g.Edges[e.FromID] {
		if existing.ToID == e.ToID {
			g.Edges[e.FromID][i] = e
			return
		}
	}
	g.Edges[e.FromID] = append(g.Edges[e.FromID], e)
}

func (g *Graph) Edge(from, to models.LocationID) (Edge, bool) {
	for _, e := range g.Edges[from] {
		if e.ToID == to {
			return e, true
		}
	}
	return Edge{}, false
}

func (g *Graph) HasNode(id models.LocationID) bool {
	_, ok := g.Nodes[id]
	return ok
}
