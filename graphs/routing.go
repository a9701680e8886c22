package graphs

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/Ahmed2003-Rav/Egypt-Map/models"
)

// Heuristic estimates the remaining cost from a node to the goal.
type Heuristic func(from, goal models.LocationID) float64

// Dijkstra returns the cheapest path from startID to goalID and its cost.
func (g *Graph) Dijkstra(startID, goalID models.LocationID) ([]models.LocationID, float64, error) {
	return g.AStar(startID, goalID, nil)
}

// AStar searches with the given heuristic; a nil heuristic degrades to
// Dijkstra. The heuristic must not overestimate for the result to be optimal.
func (g *Graph) AStar(startID, goalID models.LocationID, h Heuristic) ([]models.LocationID, float64, error) {
	if !g.HasNode(startID) {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownNode, startID)
	}
	if !g.HasNode(goalID) {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownNode, goalID)
	}
	if h == nil {
		h = func(models.LocationID, models.LocationID) float64 { return 0 }
	}

	gScore := map[models.LocationID]float64{startID: 0}
	cameFrom := make(map[models.LocationID]models.LocationID)
	closed := make(map[models.LocationID]bool)

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{node: startID, priority: h(startID, goalID)})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		current := item.node
		if current == goalID {
			return reconstructPath(cameFrom, current), gScore[current], nil
		}
		if closed[current] {
			continue
		}
		closed[current] = true

		for _, e := range g.Edges[current] {
			neighbor := e.ToID
			if closed[neighbor] || math.IsInf(e.Weight, 1) {
				continue
			}
			tentative := gScore[current] + e.Weight
			if old, ok := gScore[neighbor]; !ok || tentative < old {
				cameFrom[neighbor] = current
				gScore[neighbor] = tentative
				heap.Push(pq, &pqItem{node: neighbor, priority: tentative + h(neighbor, goalID)})
			}
		}
	}

	return nil, 0, fmt.Errorf("%w from %s to %s", ErrNoPath, startID, goalID)
}

// ShortestTimes runs a full single-source search and returns the cost to
// every reachable node.
func (g *Graph) ShortestTimes(startID models.LocationID) map[models.LocationID]float64 {
	dist := make(map[models.LocationID]float64)
	if !g.HasNode(startID) {
		return dist
	}
	dist[startID] = 0

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{node: startID})
	done := make(map[models.LocationID]bool)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		if done[item.node] {
			continue
		}
		done[item.node] = true
		for _, e := range g.Edges[item.node] {
			next := dist[item.node] + e.Weight
			if old, ok := dist[e.ToID]; !ok || next < old {
				dist[e.ToID] = next
				heap.Push(pq, &pqItem{node: e.ToID, priority: next})
			}
		}
	}
	return dist
}

func reconstructPath(cameFrom map[models.LocationID]models.LocationID, current models.LocationID) []models.LocationID {
	path := []models.LocationID{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pqItem struct {
	node     models.LocationID
	priority float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

// Ties break on node id so results do not depend on map order.
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority == pq[j].priority {
		return pq[i].node < pq[j].node
	}
	return pq[i].priority < pq[j].priority
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return item
}
