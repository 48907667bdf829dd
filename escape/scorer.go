package escape

import (
	"math"

	"github.com/guibar/go-intercept/algorithm"
	"github.com/guibar/go-intercept/graph"
	. "github.com/guibar/go-intercept/util"
)

const (
	score_last_edge_factor = 80
	score_time_factor      = 480
	score_time_constant    = 900
)

//**********************************************************
// candidate valuation
//**********************************************************

// Scorer assigns the coverage value of a candidate escape node. The
// true valuation rule is not settled yet, so it stays pluggable.
type Scorer interface {
	Score(g *graph.RoadNetwork, tree *algorithm.ShortestPathTree, node int32) float64
}

// UniformScorer values every candidate node at 1. This is the default.
type UniformScorer struct{}

func (self UniformScorer) Score(g *graph.RoadNetwork, tree *algorithm.ShortestPathTree, node int32) float64 {
	return 1
}

// RoadRankScorer values a candidate by the class of the road leading
// into it plus a freshness component that decays with the time since
// the suspect could first have cleared the node.
type RoadRankScorer struct{}

func (self RoadRankScorer) Score(g *graph.RoadNetwork, tree *algorithm.ShortestPathTree, node int32) float64 {
	rank := graph.UNCLASSIFIED
	if edge := tree.PrevEdge(node); edge != -1 {
		rank = g.GetEdge(edge).RoadType
	} else {
		// origin doubles as escape node, take the best ingoing road
		g.ForAdjacentEdges(node, graph.BACKWARD, func(ref graph.EdgeRef) {
			rank = Max(rank, g.GetEdge(ref.EdgeID).RoadType)
		})
	}
	stale := tree.Budget() - tree.Dist(node)
	return float64(int(rank)*score_last_edge_factor + int(math.Exp(-stale/score_time_constant)*score_time_factor))
}

// ScorerFromString maps the config value to a scorer, defaulting to
// uniform values.
func ScorerFromString(name string) Scorer {
	switch name {
	case "roadrank":
		return RoadRankScorer{}
	default:
		return UniformScorer{}
	}
}
