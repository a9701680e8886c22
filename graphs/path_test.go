package graphs

import (
	"errors"
	"math"
	"testing"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

// equalPath compares two slices of node IDs for equality.
func equalPath(a, b []models.LocationID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// diamond: A-B-D costs 2, A-C-D costs 5, A-D direct costs 10.
func diamond() *Graph {
	g := NewGraph()
	for i, id := range []models.LocationID{"A", "B", "C", "D"} {
		g.AddNode(Node{ID: id, Latitude: 0, Longitude: float64(i)})
	}
	g.AddUndirectedEdge(Edge{FromID: "A", ToID: "B", Weight: 1})
	g.AddUndirectedEdge(Edge{FromID: "B", ToID: "D", Weight: 1})
	g.AddUndirectedEdge(Edge{FromID: "A", ToID: "C", Weight: 2})
	g.AddUndirectedEdge(Edge{FromID: "C", ToID: "D", Weight: 3})
	g.AddUndirectedEdge(Edge{FromID: "A", ToID: "D", Weight: 10})
	return g
}

func TestDijkstra(t *testing.T) {
	g := diamond()

	path, cost, err := g.Dijkstra("A", "D")
	if err != nil {
		t.Fatalf("Dijkstra returned error: %v", err)
	}
	expected := []models.LocationID{"A", "B", "D"}
	if !equalPath(path, expected) {
		t.Errorf("expected path %v, got %v", expected, path)
	}
	if cost != 2 {
		t.Errorf("expected cost 2, got %v", cost)
	}

	path, _, err = g.Dijkstra("D", "A")
	if err != nil || !equalPath(path, []models.LocationID{"D", "B", "A"}) {
		t.Errorf("reverse path = %v, err %v", path, err)
	}
}

func TestSimpleAStar(t *testing.T) {
	g := diamond()
	h := func(from, goal models.LocationID) float64 {
		return math.Abs(g.Nodes[from].Longitude-g.Nodes[goal].Longitude) * 0.1
	}

	path, cost, err := g.AStar("A", "D", h)
	if err != nil {
		t.Fatalf("AStar returned error: %v", err)
	}
	if !equalPath(path, []models.LocationID{"A", "B", "D"}) || cost != 2 {
		t.Errorf("AStar path %v cost %v", path, cost)
	}
}

func TestSearchErrors(t *testing.T) {
	g := diamond()
	g.AddNode(Node{ID: "Z"})

	if _, _, err := g.Dijkstra("A", "Z"); !errors.Is(err, ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
	if _, _, err := g.Dijkstra("A", "Q"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}

	path, cost, err := g.Dijkstra("A", "A")
	if err != nil || !equalPath(path, []models.LocationID{"A"}) || cost != 0 {
		t.Errorf("self path = %v %v %v", path, cost, err)
	}
}

func TestAddUndirectedEdgeReplaces(t *testing.T) {
	g := diamond()
	g.AddUndirectedEdge(Edge{FromID: "D", ToID: "A", Weight: 0.5})

	e, ok := g.Edge("A", "D")
	if !ok || e.Weight != 0.5 {
		t.Errorf("edge A-D = %+v %v", e, ok)
	}
	if len(g.Edges["A"]) != 3 {
		t.Errorf("expected 3 edges from A, got %d", len(g.Edges["A"]))
	}
}

func TestShortestTimes(t *testing.T) {
	g := diamond()
	g.AddNode(Node{ID: "Z"})

	dist := g.ShortestTimes("A")
	want := map[models.LocationID]float64{"A": 0, "B": 1, "C": 2, "D": 2}
	for id, w := range want {
		if dist[id] != w {
			t.Errorf("dist[%s] = %v, want %v", id, dist[id], w)
		}
	}
	if _, ok := dist["Z"]; ok {
		t.Error("unreachable node should be absent")
	}
	if len(g.ShortestTimes("missing")) != 0 {
		t.Error("unknown start should give empty result")
	}
}
