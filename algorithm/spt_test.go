package algorithm

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/guibar/go-intercept/graph"
)

// line 0-1-2-3-4 with 60s per hop in both directions
func build_line_network() *graph.RoadNetwork {
	nodes := make([]graph.Node, 5)
	for i := range nodes {
		nodes[i] = graph.Node{Loc: orb.Point{7.0 + float64(i)*0.001, 52.0}}
	}
	edges := make([]graph.Edge, 0, 8)
	for i := 0; i < 4; i++ {
		edges = append(edges, graph.Edge{NodeA: int32(i), NodeB: int32(i + 1), Weight: 60})
		edges = append(edges, graph.Edge{NodeA: int32(i + 1), NodeB: int32(i), Weight: 60})
	}
	return graph.New("line", nodes, edges, orb.Polygon{}, 500)
}

func TestShortestPathTreeDistances(t *testing.T) {
	g := build_line_network()
	tree := CalcShortestPathTree(g, 0, 150)

	want := []float64{0, 60, 120, UNREACHED, UNREACHED}
	for node, dist := range want {
		if tree.Dist(int32(node)) != dist {
			t.Errorf("Dist(%d) = %v; want %v", node, tree.Dist(int32(node)), dist)
		}
	}
	reachable := tree.Reachable()
	if reachable.Length() != 3 {
		t.Fatalf("len(Reachable()) = %d; want 3", reachable.Length())
	}
	for i, node := range []int32{0, 1, 2} {
		if reachable[i] != node {
			t.Errorf("Reachable()[%d] = %d; want %d", i, reachable[i], node)
		}
	}
}

func TestShortestPathTreeZeroBudget(t *testing.T) {
	g := build_line_network()
	tree := CalcShortestPathTree(g, 2, 0)

	reachable := tree.Reachable()
	if reachable.Length() != 1 || reachable[0] != 2 {
		t.Errorf("Reachable() = %v; want [2]", reachable)
	}
	if tree.Dist(2) != 0 {
		t.Errorf("Dist(2) = %v; want 0", tree.Dist(2))
	}
}

func TestShortestPathTreeExactBudget(t *testing.T) {
	// a node sitting exactly on the budget is reached
	g := build_line_network()
	tree := CalcShortestPathTree(g, 0, 120)
	if !tree.Reached(2) {
		t.Errorf("Reached(2) = false; want true at dist 120, budget 120")
	}
	if tree.Reached(3) {
		t.Errorf("Reached(3) = true; want false at dist 180, budget 120")
	}
}

func TestShortestPathTreeMonotonic(t *testing.T) {
	g := build_line_network()
	small := CalcShortestPathTree(g, 0, 60)
	large := CalcShortestPathTree(g, 0, 180)

	for _, node := range small.Reachable() {
		if !large.Reached(node) {
			t.Errorf("node %d reached at budget 60 but not at budget 180", node)
		}
	}
	if small.Reachable().Length() >= large.Reachable().Length() {
		t.Errorf("reachable sets not growing: %d vs %d", small.Reachable().Length(), large.Reachable().Length())
	}
}

func TestPathTo(t *testing.T) {
	g := build_line_network()
	tree := CalcShortestPathTree(g, 0, 300)

	path := tree.PathTo(3)
	want := []int32{0, 1, 2, 3}
	if path.Length() != len(want) {
		t.Fatalf("len(PathTo(3)) = %d; want %d", path.Length(), len(want))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("PathTo(3)[%d] = %d; want %d", i, path[i], want[i])
		}
	}

	short := CalcShortestPathTree(g, 0, 60)
	unreached := short.PathTo(4)
	if unreached.Length() != 0 {
		t.Errorf("PathTo of unreached node is not empty")
	}
}

func TestRestrictedTreeEarlyStop(t *testing.T) {
	g := build_line_network()
	targets := []int32{1}
	tree := CalcRestrictedTree(g, 0, targets, UNREACHED)

	if tree.Dist(1) != 60 {
		t.Errorf("Dist(1) = %v; want 60", tree.Dist(1))
	}
	// nodes only relaxed but never settled must not report distances
	if tree.Reached(3) || tree.Reached(4) {
		t.Errorf("nodes beyond the last target reported as reached")
	}
}

func TestRestrictedTreeUnreachableTarget(t *testing.T) {
	// directed edge 0->1 only, so 0 is unreachable from 1
	nodes := []graph.Node{
		{Loc: orb.Point{7.0, 52.0}},
		{Loc: orb.Point{7.001, 52.0}},
	}
	edges := []graph.Edge{{NodeA: 0, NodeB: 1, Weight: 60}}
	g := graph.New("oneway", nodes, edges, orb.Polygon{}, 500)

	tree := CalcRestrictedTree(g, 1, []int32{0}, UNREACHED)
	if tree.Dist(0) != UNREACHED {
		t.Errorf("Dist(0) = %v; want UNREACHED", tree.Dist(0))
	}
}

func TestDeterministicTieBreak(t *testing.T) {
	// diamond 0->1->3 and 0->2->3, equal weights; the lower node id wins
	nodes := make([]graph.Node, 4)
	for i := range nodes {
		nodes[i] = graph.Node{Loc: orb.Point{7.0 + float64(i)*0.001, 52.0}}
	}
	edges := []graph.Edge{
		{NodeA: 0, NodeB: 1, Weight: 60},
		{NodeA: 0, NodeB: 2, Weight: 60},
		{NodeA: 1, NodeB: 3, Weight: 60},
		{NodeA: 2, NodeB: 3, Weight: 60},
	}
	g := graph.New("diamond", nodes, edges, orb.Polygon{}, 500)

	for run := 0; run < 5; run++ {
		tree := CalcShortestPathTree(g, 0, 300)
		path := tree.PathTo(3)
		if path.Length() != 3 || path[1] != 1 {
			t.Fatalf("run %d: PathTo(3) = %v; want [0 1 3]", run, path)
		}
	}
}
