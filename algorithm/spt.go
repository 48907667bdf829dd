package algorithm

import (
	"math"

	"golang.org/x/exp/slices"

	"github.com/guibar/go-intercept/graph"
	. "github.com/guibar/go-intercept/util"
)

const UNREACHED = math.MaxFloat64

type pq_item struct {
	node int32
	dist float64
}

// ties in distance are broken by node id so that identical inputs
// always yield the identical tree
func pq_less(a, b pq_item) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.node < b.node
}

//*******************************************
// shortest-path tree
//*******************************************

// ShortestPathTree holds the result of a bounded single-source
// Dijkstra run: exact distances, parent pointers and the set of nodes
// settled within the budget (ascending node id).
type ShortestPathTree struct {
	origin    int32
	budget    float64
	dist      Array[float64]
	prev_node Array[int32]
	prev_edge Array[int32]
	reachable Array[int32]
}

func (self *ShortestPathTree) Origin() int32 {
	return self.origin
}

func (self *ShortestPathTree) Budget() float64 {
	return self.budget
}

// Reachable returns the node ids settled within the budget, ascending.
func (self *ShortestPathTree) Reachable() Array[int32] {
	return self.reachable
}

func (self *ShortestPathTree) Reached(node int32) bool {
	return self.dist[node] != UNREACHED
}

// Dist returns the exact shortest distance of a settled node, or
// UNREACHED if the node is outside the budget.
func (self *ShortestPathTree) Dist(node int32) float64 {
	return self.dist[node]
}

// PrevEdge returns the tree edge leading into node, -1 at the origin.
func (self *ShortestPathTree) PrevEdge(node int32) int32 {
	return self.prev_edge[node]
}

// PathTo rebuilds the node sequence origin..node from the parent
// pointers. Returns an empty list if node was not settled.
func (self *ShortestPathTree) PathTo(node int32) List[int32] {
	if !self.Reached(node) {
		return NewList[int32](0)
	}
	path := NewList[int32](10)
	curr := node
	for curr != -1 {
		path.Add(curr)
		curr = self.prev_node[curr]
	}
	// reverse into origin-first order
	for i, j := 0, path.Length()-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

//*******************************************
// bounded dijkstra
//*******************************************

// CalcShortestPathTree runs Dijkstra from origin with early
// termination: a node is settled iff its shortest distance is within
// the budget. A budget of 0 yields the singleton origin; a budget
// larger than the graph diameter yields the whole reachable component.
func CalcShortestPathTree(g *graph.RoadNetwork, origin int32, budget float64) *ShortestPathTree {
	return calc_tree(g, origin, budget, nil)
}

// CalcRestrictedTree runs the same search but stops as soon as every
// target has been settled, which keeps one-to-many queries cheap when
// the targets cluster near the source. Unsettled targets keep
// UNREACHED distances (the graph is directed and not necessarily
// strongly connected).
func CalcRestrictedTree(g *graph.RoadNetwork, origin int32, targets Array[int32], cutoff float64) *ShortestPathTree {
	return calc_tree(g, origin, cutoff, targets)
}

func calc_tree(g *graph.RoadNetwork, origin int32, budget float64, targets Array[int32]) *ShortestPathTree {
	node_count := g.NodeCount()
	spt := &ShortestPathTree{
		origin:    origin,
		budget:    budget,
		dist:      NewArray[float64](node_count),
		prev_node: NewArray[int32](node_count),
		prev_edge: NewArray[int32](node_count),
	}
	for i := 0; i < node_count; i++ {
		spt.dist[i] = UNREACHED
		spt.prev_node[i] = -1
		spt.prev_edge[i] = -1
	}
	visited := NewArray[bool](node_count)

	var is_target Array[bool]
	remaining := 0
	if targets != nil {
		is_target = NewArray[bool](node_count)
		for _, target := range targets {
			if !is_target[target] {
				is_target[target] = true
				remaining += 1
			}
		}
	}

	heap := NewPriorityQueue(100, pq_less)
	spt.dist[origin] = 0
	heap.Enqueue(pq_item{origin, 0})
	settled := NewList[int32](100)

	for {
		curr, ok := heap.Dequeue()
		if !ok {
			break
		}
		if visited[curr.node] {
			continue
		}
		visited[curr.node] = true
		settled.Add(curr.node)
		if is_target != nil && is_target[curr.node] {
			remaining -= 1
			if remaining == 0 {
				break
			}
		}
		g.ForAdjacentEdges(curr.node, graph.FORWARD, func(ref graph.EdgeRef) {
			if visited[ref.OtherID] {
				return
			}
			new_dist := curr.dist + g.GetEdgeWeight(ref.EdgeID)
			if new_dist > budget {
				return
			}
			if new_dist < spt.dist[ref.OtherID] {
				spt.dist[ref.OtherID] = new_dist
				spt.prev_node[ref.OtherID] = curr.node
				spt.prev_edge[ref.OtherID] = ref.EdgeID
				heap.Enqueue(pq_item{ref.OtherID, new_dist})
			}
		})
	}

	// tentative distances of nodes relaxed but never settled (early
	// break once all targets were found) are not final
	for i := 0; i < node_count; i++ {
		if spt.dist[i] != UNREACHED && !visited[i] {
			spt.dist[i] = UNREACHED
			spt.prev_node[i] = -1
			spt.prev_edge[i] = -1
		}
	}

	reachable := NewArray[int32](settled.Length())
	copy(reachable, settled)
	slices.Sort(reachable)
	spt.reachable = reachable
	return spt
}
