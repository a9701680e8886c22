package graphs

import (
	"container/heap"
	"sort"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

// WeightedEdge is an undirected candidate edge for spanning-tree search.
// Index points back into the caller's edge list.
type WeightedEdge struct {
	From   models.LocationID
	To     models.LocationID
	Weight float64
	Index  int
}

// UnionFind is a disjoint-set forest with path halving.
type UnionFind struct {
	parent map[models.LocationID]models.LocationID
}

func NewUnionFind(nodes []models.LocationID) *UnionFind {
	uf := &UnionFind{parent: make(map[models.LocationID]models.LocationID, len(nodes))}
	for _, n := range nodes {
		uf.parent[n] = n
	}
	return uf
}

func (uf *UnionFind) Find(u models.LocationID) models.LocationID {
	if _, ok := uf.parent[u]; !ok {
		uf.parent[u] = u
	}
	for uf.parent[u] != u {
		uf.parent[u] = uf.parent[uf.parent[u]]
		u = uf.parent[u]
	}
	return u
}

// Union merges the sets of u and v and reports whether they were distinct.
func (uf *UnionFind) Union(u, v models.LocationID) bool {
	ru, rv := uf.Find(u), uf.Find(v)
	if ru == rv {
		return false
	}
	uf.parent[rv] = ru
	return true
}

// Kruskal returns a minimum spanning forest. Equal weights keep input order.
func Kruskal(nodes []models.LocationID, edges []WeightedEdge) []WeightedEdge {
	sorted := append([]WeightedEdge(nil), edges...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight < sorted[j].Weight })

	uf := NewUnionFind(nodes)
	var tree []WeightedEdge
	for _, e := range sorted {
		if uf.Union(e.From, e.To) {
			tree = append(tree, e)
			if len(tree) == len(nodes)-1 {
				break
			}
		}
	}
	return tree
}

// Prim grows a tree from root, always taking the cheapest edge that leaves
// it. Nodes unreachable from root are left out.
func Prim(root models.LocationID, edges []WeightedEdge) []WeightedEdge {
	adj := make(map[models.LocationID][]WeightedEdge)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e)
		adj[e.To] = append(adj[e.To], e)
	}

	inTree := map[models.LocationID]bool{root: true}
	pq := &edgeQueue{}
	heap.Init(pq)
	for _, e := range adj[root] {
		heap.Push(pq, e)
	}

	var tree []WeightedEdge
	for pq.Len() > 0 {
		e := heap.Pop(pq).(WeightedEdge)
		if inTree[e.From] && inTree[e.To] {
			continue
		}
		next := e.To
		if inTree[e.To] {
			next = e.From
		}
		inTree[next] = true
		tree = append(tree, e)
		for _, out := range adj[next] {
			if !inTree[out.From] || !inTree[out.To] {
				heap.Push(pq, out)
			}
		}
	}
	return tree
}

type edgeQueue []WeightedEdge

func (q edgeQueue) Len() int { return len(q) }

func (q edgeQueue) Less(i, j int) bool {
	if q[i].Weight == q[j].Weight {
		return q[i].Index < q[j].Index
	}
	return q[i].Weight < q[j].Weight
}

func (q edgeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *edgeQueue) Push(x interface{}) { *q = append(*q, x.(WeightedEdge)) }

func (q *edgeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
