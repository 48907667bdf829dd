package escape

import (
	"github.com/guibar/go-intercept/algorithm"
	"github.com/guibar/go-intercept/graph"
	. "github.com/guibar/go-intercept/util"
)

//**********************************************************
// escape model
//**********************************************************

// CandidateNode is an escape node inside the current isochrone: a
// place the suspect could already be exiting through.
type CandidateNode struct {
	Node  int32   `json:"node"`
	Dist  float64 `json:"dist"`
	Value float64 `json:"value"`
}

// Model captures what the suspect could have done since the sighting:
// the isochrone tree from the last-known position and the escape nodes
// it contains. Built fresh per request, read-only afterwards.
type Model struct {
	network    *graph.RoadNetwork
	origin     int32
	elapsed    float64
	tree       *algorithm.ShortestPathTree
	candidates Array[CandidateNode]
}

// NewModel computes the isochrone from the snapped last-known position
// with the elapsed time as budget and classifies the candidate escape
// nodes. Zero candidates is a valid outcome, not an error.
func NewModel(network *graph.RoadNetwork, origin int32, elapsed float64, scorer Scorer) *Model {
	model := &Model{
		network: network,
		origin:  origin,
		elapsed: elapsed,
	}
	model.tree = algorithm.CalcShortestPathTree(network, origin, elapsed)

	// candidate nodes = reachable set ∩ escape nodes, ascending ids
	candidates := NewList[CandidateNode](10)
	for _, node := range network.EscapeNodes() {
		if !model.tree.Reached(node) {
			continue
		}
		candidates.Add(CandidateNode{
			Node:  node,
			Dist:  model.tree.Dist(node),
			Value: scorer.Score(network, model.tree, node),
		})
	}
	model.candidates = Array[CandidateNode](candidates)
	return model
}

func (self *Model) Origin() int32 {
	return self.origin
}

func (self *Model) Elapsed() float64 {
	return self.elapsed
}

func (self *Model) Tree() *algorithm.ShortestPathTree {
	return self.tree
}

// Candidates returns the candidate escape nodes ordered by node id.
func (self *Model) Candidates() Array[CandidateNode] {
	return self.candidates
}

// MaxPossibleScore is the value covered by controlling every candidate
// node.
func (self *Model) MaxPossibleScore() float64 {
	total := float64(0)
	for _, cand := range self.candidates {
		total += cand.Value
	}
	return total
}
