package escape

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/guibar/go-intercept/algorithm"
	"github.com/guibar/go-intercept/graph"
)

// line 0-1-2-3 with 60s hops, nodes 0 and 3 on the zone boundary
func build_escape_network() *graph.RoadNetwork {
	nodes := []graph.Node{
		{Loc: orb.Point{7.000, 52.0}, Escape: true},
		{Loc: orb.Point{7.001, 52.0}},
		{Loc: orb.Point{7.002, 52.0}},
		{Loc: orb.Point{7.003, 52.0}, Escape: true},
	}
	edges := make([]graph.Edge, 0, 6)
	for i := 0; i < 3; i++ {
		edges = append(edges, graph.Edge{NodeA: int32(i), NodeB: int32(i + 1), Weight: 60, RoadType: graph.MOTORWAY})
		edges = append(edges, graph.Edge{NodeA: int32(i + 1), NodeB: int32(i), Weight: 60, RoadType: graph.MOTORWAY})
	}
	return graph.New("escape", nodes, edges, orb.Polygon{}, 500)
}

func TestCandidateClassification(t *testing.T) {
	g := build_escape_network()
	model := NewModel(g, 1, 120, UniformScorer{})

	// reachable from node 1 within 120s: all four nodes, two of them
	// escape nodes
	candidates := model.Candidates()
	if candidates.Length() != 2 {
		t.Fatalf("len(Candidates()) = %d; want 2", candidates.Length())
	}
	if candidates[0].Node != 0 || candidates[1].Node != 3 {
		t.Errorf("candidate nodes = [%d %d]; want [0 3]", candidates[0].Node, candidates[1].Node)
	}
	if candidates[0].Dist != 60 || candidates[1].Dist != 120 {
		t.Errorf("candidate dists = [%v %v]; want [60 120]", candidates[0].Dist, candidates[1].Dist)
	}
}

func TestCandidateClassificationEmpty(t *testing.T) {
	g := build_escape_network()
	model := NewModel(g, 1, 0, UniformScorer{})

	if model.Candidates().Length() != 0 {
		t.Errorf("zero budget yields %d candidates; want 0", model.Candidates().Length())
	}
	if model.MaxPossibleScore() != 0 {
		t.Errorf("MaxPossibleScore() = %v; want 0", model.MaxPossibleScore())
	}
}

func TestUniformScorer(t *testing.T) {
	g := build_escape_network()
	model := NewModel(g, 1, 120, UniformScorer{})

	for _, cand := range model.Candidates() {
		if cand.Value != 1 {
			t.Errorf("uniform value of node %d = %v; want 1", cand.Node, cand.Value)
		}
	}
	if model.MaxPossibleScore() != 2 {
		t.Errorf("MaxPossibleScore() = %v; want 2", model.MaxPossibleScore())
	}
}

func TestRoadRankScorer(t *testing.T) {
	g := build_escape_network()
	tree := algorithm.CalcShortestPathTree(g, 1, 120)
	scorer := RoadRankScorer{}

	// node 3: motorway ingress at dist 120, budget 120, so no decay
	want := float64(int(graph.MOTORWAY)*score_last_edge_factor + score_time_factor)
	if got := scorer.Score(g, tree, 3); got != want {
		t.Errorf("Score(3) = %v; want %v", got, want)
	}

	// node 0 sits 60s inside the budget, its value must have decayed
	stale := 120.0 - 60.0
	want = float64(int(graph.MOTORWAY)*score_last_edge_factor + int(math.Exp(-stale/score_time_constant)*score_time_factor))
	if got := scorer.Score(g, tree, 0); got != want {
		t.Errorf("Score(0) = %v; want %v", got, want)
	}
}

func TestScorerFromString(t *testing.T) {
	if _, ok := ScorerFromString("roadrank").(RoadRankScorer); !ok {
		t.Errorf("ScorerFromString(roadrank) is not a RoadRankScorer")
	}
	if _, ok := ScorerFromString("").(UniformScorer); !ok {
		t.Errorf("ScorerFromString defaults to something other than UniformScorer")
	}
}

func TestIsochronePolygonClosed(t *testing.T) {
	g := build_escape_network()
	model := NewModel(g, 1, 90, UniformScorer{})

	polygon := IsochronePolygon(model)
	if len(polygon) != 1 {
		t.Fatalf("polygon has %d rings; want 1", len(polygon))
	}
	ring := polygon[0]
	if len(ring) < 4 {
		t.Fatalf("ring has %d points; want at least 4", len(ring))
	}
	if ring[0] != ring[len(ring)-1] {
		t.Errorf("ring is not closed: %v != %v", ring[0], ring[len(ring)-1])
	}
}

func TestIsochronePolygonZeroBudget(t *testing.T) {
	g := build_escape_network()
	model := NewModel(g, 1, 0, UniformScorer{})

	polygon := IsochronePolygon(model)
	if len(polygon) != 1 || len(polygon[0]) < 4 {
		t.Errorf("zero budget polygon is degenerate: %v", polygon)
	}
}
