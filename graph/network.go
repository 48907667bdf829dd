package graph

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"

	. "github.com/guibar/go-intercept/util"
)

//*******************************************
// road network
//*******************************************

// RoadNetwork is the per-zone routing graph. It is fully built by New
// and read-only afterwards, so it can be shared across concurrent
// planning requests without locking.
type RoadNetwork struct {
	zone      string
	nodes     Array[Node]
	edges     Array[Edge]
	fwd_start Array[int32]
	fwd_edges Array[int32]
	bwd_start Array[int32]
	bwd_edges Array[int32]
	escapes   Array[int32]
	boundary  orb.Polygon
	origin    int32
	index     *quadtree.Quadtree
	tolerance float64
}

type indexed_node struct {
	id  int32
	loc orb.Point
}

func (self indexed_node) Point() orb.Point {
	return self.loc
}

// New builds a RoadNetwork from raw nodes and directed edges.
//
// tolerance is the nearest-node snap limit in meters.
func New(zone string, nodes []Node, edges []Edge, boundary orb.Polygon, tolerance float64) *RoadNetwork {
	network := &RoadNetwork{
		zone:      zone,
		nodes:     Array[Node](nodes),
		edges:     Array[Edge](edges),
		boundary:  boundary,
		tolerance: tolerance,
	}
	network.build_adjacency()
	network.build_index()

	escapes := NewList[int32](10)
	for i := 0; i < len(nodes); i++ {
		if nodes[i].Escape {
			escapes.Add(int32(i))
		}
	}
	network.escapes = Array[int32](escapes)

	center := center_point(boundary, network.nodes)
	origin, _ := network.closest_node(center)
	network.origin = origin
	return network
}

// adjacency is stored CSR-style: fwd_start[n]..fwd_start[n+1] indexes
// into fwd_edges holding edge ids ordered by source node
func (self *RoadNetwork) build_adjacency() {
	node_count := self.nodes.Length()
	fwd_count := NewArray[int32](node_count)
	bwd_count := NewArray[int32](node_count)
	for _, edge := range self.edges {
		fwd_count[edge.NodeA] += 1
		bwd_count[edge.NodeB] += 1
	}
	self.fwd_start = NewArray[int32](node_count + 1)
	self.bwd_start = NewArray[int32](node_count + 1)
	for i := 0; i < node_count; i++ {
		self.fwd_start[i+1] = self.fwd_start[i] + fwd_count[i]
		self.bwd_start[i+1] = self.bwd_start[i] + bwd_count[i]
	}
	self.fwd_edges = NewArray[int32](self.edges.Length())
	self.bwd_edges = NewArray[int32](self.edges.Length())
	fwd_offset := NewArray[int32](node_count)
	bwd_offset := NewArray[int32](node_count)
	for i, edge := range self.edges {
		self.fwd_edges[self.fwd_start[edge.NodeA]+fwd_offset[edge.NodeA]] = int32(i)
		fwd_offset[edge.NodeA] += 1
		self.bwd_edges[self.bwd_start[edge.NodeB]+bwd_offset[edge.NodeB]] = int32(i)
		bwd_offset[edge.NodeB] += 1
	}
}

func (self *RoadNetwork) build_index() {
	bound := orb.Bound{Min: orb.Point{180, 90}, Max: orb.Point{-180, -90}}
	for _, node := range self.nodes {
		bound = bound.Extend(node.Loc)
	}
	index := quadtree.New(bound.Pad(0.001))
	for i, node := range self.nodes {
		index.Add(indexed_node{id: int32(i), loc: node.Loc})
	}
	self.index = index
}

func center_point(boundary orb.Polygon, nodes Array[Node]) orb.Point {
	if len(boundary) > 0 {
		center, _ := planar.CentroidArea(boundary)
		return center
	}
	// no boundary, fall back to the node centroid
	center := orb.Point{}
	for _, node := range nodes {
		center[0] += node.Loc[0] / float64(nodes.Length())
		center[1] += node.Loc[1] / float64(nodes.Length())
	}
	return center
}

//*******************************************
// accessors
//*******************************************

func (self *RoadNetwork) Zone() string {
	return self.zone
}

func (self *RoadNetwork) NodeCount() int {
	return self.nodes.Length()
}

func (self *RoadNetwork) EdgeCount() int {
	return self.edges.Length()
}

func (self *RoadNetwork) GetNode(node int32) Node {
	return self.nodes[node]
}

func (self *RoadNetwork) GetEdge(edge int32) Edge {
	return self.edges[edge]
}

func (self *RoadNetwork) GetNodeGeom(node int32) orb.Point {
	return self.nodes[node].Loc
}

func (self *RoadNetwork) GetEdgeWeight(edge int32) float64 {
	return self.edges[edge].Weight
}

func (self *RoadNetwork) IsEscapeNode(node int32) bool {
	return self.nodes[node].Escape
}

// EscapeNodes returns the fixed escape-node set of the zone, ordered
// by node id.
func (self *RoadNetwork) EscapeNodes() Array[int32] {
	return self.escapes
}

func (self *RoadNetwork) Boundary() orb.Polygon {
	return self.boundary
}

// DefaultOrigin is the node closest to the boundary centroid, used as
// the initial last-known position offered to clients.
func (self *RoadNetwork) DefaultOrigin() int32 {
	return self.origin
}

// ForAdjacentEdges iterates the adjacency of a node calling the
// callback for every edge. FORWARD means outgoing edges, BACKWARD
// ingoing edges. Edges are visited in insertion order, which keeps
// searches over the network reproducible.
func (self *RoadNetwork) ForAdjacentEdges(node int32, dir Direction, callback func(EdgeRef)) {
	if dir == FORWARD {
		for _, edge_id := range self.fwd_edges[self.fwd_start[node]:self.fwd_start[node+1]] {
			callback(EdgeRef{EdgeID: edge_id, OtherID: self.edges[edge_id].NodeB})
		}
	} else {
		for _, edge_id := range self.bwd_edges[self.bwd_start[node]:self.bwd_start[node+1]] {
			callback(EdgeRef{EdgeID: edge_id, OtherID: self.edges[edge_id].NodeA})
		}
	}
}

//*******************************************
// spatial lookup
//*******************************************

func (self *RoadNetwork) closest_node(point orb.Point) (int32, float64) {
	found := self.index.Find(point)
	if found == nil {
		return -1, 0
	}
	node := found.(indexed_node)
	return node.id, geo.Distance(point, node.loc)
}

// NearestNode snaps an arbitrary coordinate to the closest graph node.
// Returns ErrOutOfBounds if the closest node is farther away than the
// configured snap tolerance.
func (self *RoadNetwork) NearestNode(point orb.Point) (int32, error) {
	node, dist := self.closest_node(point)
	if node == -1 || dist > self.tolerance {
		return -1, fmt.Errorf("point (%.5f, %.5f) is %.0fm from the nearest road: %w", point[0], point[1], dist, ErrOutOfBounds)
	}
	return node, nil
}
