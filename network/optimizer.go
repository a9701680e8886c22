// Package network plans a minimum-cost road network over existing and
// planned roads.
package network

import (
	"fmt"
	"math"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/graphs"
	"github.com/Ahmed2003-Rav/Egypt-Map/models"
	"github.com/Ahmed2003-Rav/Egypt-Map/utils"
)

const (
	AlgorithmPrim    = "prim"
	AlgorithmKruskal = "kruskal"

	populationScale = 500000.0
	capacityScale   = 2000.0
	maxBenefit      = 0.9
)

// CriticalFacilities must end up in the network: the airport, the railway
// station and both hospitals.
var CriticalFacilities = []models.LocationID{"F1", "F2", "F9", "F10"}

type Optimizer struct {
	ds *data.Dataset
}

func NewOptimizer(ds *data.Dataset) *Optimizer {
	return &Optimizer{ds: ds}
}

// Optimize builds the spanning tree with the requested algorithm and then
// attaches any critical facility the tree missed.
func (o *Optimizer) Optimize(algorithm string, prioritizePopulation bool) (models.NetworkResult, error) {
	algorithm, err := utils.ParseAlgorithm(algorithm)
	if err != nil {
		return models.NetworkResult{}, err
	}

	nodes := o.ds.Locations()
	if len(nodes) == 0 {
		return models.NetworkResult{Algorithm: algorithm, Nodes: []models.NetworkNode{}, Edges: []models.NetworkEdge{}, NewRoads: []models.NetworkEdge{}}, nil
	}
	candidates := o.candidates(prioritizePopulation)

	weighted := make([]graphs.WeightedEdge, len(candidates))
	for i, c := range candidates {
		weighted[i] = graphs.WeightedEdge{From: c.From, To: c.To, Weight: c.Weight, Index: i}
	}

	root := nodes[0].ID
	var tree []graphs.WeightedEdge
	switch algorithm {
	case AlgorithmKruskal:
		ids := make([]models.LocationID, len(nodes))
		for i, n := range nodes {
			ids[i] = n.ID
		}
		tree = graphs.Kruskal(ids, weighted)
	default:
		tree = graphs.Prim(root, weighted)
	}

	uf := graphs.NewUnionFind(nil)
	for _, e := range tree {
		uf.Union(e.From, e.To)
	}
	for _, f := range CriticalFacilities {
		if !o.ds.LocationExists(f) || uf.Find(f) == uf.Find(root) {
			continue
		}
		if e, ok := cheapestLink(f, weighted, uf); ok {
			uf.Union(e.From, e.To)
			tree = append(tree, e)
		}
	}

	return o.result(algorithm, root, nodes, candidates, tree, uf), nil
}

func (o *Optimizer) candidates(prioritizePopulation bool) []models.NetworkEdge {
	out := make([]models.NetworkEdge, 0, len(o.ds.ExistingRoads)+len(o.ds.PotentialRoads))

	for _, r := range o.ds.ExistingRoads {
		out = append(out, models.NetworkEdge{
			From:      r.From,
			To:        r.To,
			Weight:    ExistingWeight(r, o.pairPopulation(r.From, r.To), prioritizePopulation),
			Existing:  true,
			Distance:  r.Distance,
			Capacity:  r.Capacity,
			Condition: r.Condition,
		})
	}
	for _, r := range o.ds.PotentialRoads {
		out = append(out, models.NetworkEdge{
			From:     r.From,
			To:       r.To,
			Weight:   PotentialWeight(r, o.pairPopulation(r.From, r.To)),
			Distance: r.Distance,
			Capacity: r.Capacity,
			Cost:     r.Cost,
		})
	}
	return out
}

func (o *Optimizer) pairPopulation(a, b models.LocationID) int {
	return o.ds.Population(a) + o.ds.Population(b)
}

// ExistingWeight favours roads in good condition and, optionally, roads
// between populous areas.
func ExistingWeight(r models.ExistingRoad, population int, prioritizePopulation bool) float64 {
	weight := r.Distance * (1 + (10-r.Condition)/5)
	if prioritizePopulation {
		weight /= 1 + float64(population)/populationScale
	}
	return weight
}

// PotentialWeight discounts construction cost by the population served and
// the capacity gained, and penalizes length.
func PotentialWeight(r models.PotentialRoad, population int) float64 {
	popBenefit := clampBenefit(float64(population) / populationScale)
	capBenefit := clampBenefit(r.Capacity / capacityScale)
	return r.Cost * (1 - popBenefit) * (1 - capBenefit) * (1 + r.Distance/10)
}

func clampBenefit(v float64) float64 {
	return math.Max(0, math.Min(v, maxBenefit))
}

// cheapestLink finds the lowest-weight edge that joins facility to another
// component.
func cheapestLink(facility models.LocationID, edges []graphs.WeightedEdge, uf *graphs.UnionFind) (graphs.WeightedEdge, bool) {
	var best graphs.WeightedEdge
	found := false
	for _, e := range edges {
		if e.From != facility && e.To != facility {
			continue
		}
		if uf.Find(e.From) == uf.Find(e.To) {
			continue
		}
		if !found || e.Weight < best.Weight {
			best, found = e, true
		}
	}
	return best, found
}

func (o *Optimizer) result(algorithm string, root models.LocationID, nodes []models.Location, candidates []models.NetworkEdge, tree []graphs.WeightedEdge, uf *graphs.UnionFind) models.NetworkResult {
	res := models.NetworkResult{
		Algorithm: algorithm,
		Nodes:     []models.NetworkNode{},
		Edges:     make([]models.NetworkEdge, 0, len(tree)),
		NewRoads:  []models.NetworkEdge{},
	}

	inTree := map[models.LocationID]bool{root: true}
	for _, e := range tree {
		edge := candidates[e.Index]
		res.Edges = append(res.Edges, edge)
		res.TotalDistance += edge.Distance
		if !edge.Existing {
			res.TotalCost += edge.Cost
			res.NewRoads = append(res.NewRoads, edge)
		}
		inTree[edge.From] = true
		inTree[edge.To] = true
	}

	for _, loc := range nodes {
		if !inTree[loc.ID] {
			continue
		}
		typ := loc.AreaType
		if loc.Kind == models.KindFacility {
			typ = loc.FacilityType
		}
		res.Nodes = append(res.Nodes, models.NetworkNode{
			ID:         loc.ID,
			Name:       loc.Name,
			Population: loc.Population,
			Type:       typ,
			X:          loc.X,
			Y:          loc.Y,
		})
	}

	res.CriticalFacilitiesConnected = true
	for _, f := range CriticalFacilities {
		if o.ds.LocationExists(f) && uf.Find(f) != uf.Find(root) {
			res.CriticalFacilitiesConnected = false
		}
	}
	return res
}

// Describe is a one-line summary used in logs.
func Describe(res models.NetworkResult) string {
	return fmt.Sprintf("%s: %d roads (%d new), %.1f km, cost %.1f",
		res.Algorithm, len(res.Edges), len(res.NewRoads), res.TotalDistance, res.TotalCost)
}
