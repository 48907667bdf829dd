package graph

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func build_test_network(tolerance float64) *RoadNetwork {
	nodes := []Node{
		{Loc: orb.Point{7.000, 52.0}},
		{Loc: orb.Point{7.001, 52.0}},
		{Loc: orb.Point{7.002, 52.0}, Escape: true},
	}
	edges := []Edge{
		{NodeA: 0, NodeB: 1, Weight: 60, RoadType: RESIDENTIAL},
		{NodeA: 1, NodeB: 0, Weight: 60, RoadType: RESIDENTIAL},
		{NodeA: 1, NodeB: 2, Weight: 60, RoadType: MOTORWAY},
	}
	return New("test", nodes, edges, orb.Polygon{}, tolerance)
}

func TestNearestNode(t *testing.T) {
	g := build_test_network(500)

	node, err := g.NearestNode(orb.Point{7.0001, 52.0})
	if err != nil {
		t.Fatalf("NearestNode failed: %v", err)
	}
	if node != 0 {
		t.Errorf("NearestNode = %d; want 0", node)
	}
}

func TestNearestNodeOutOfBounds(t *testing.T) {
	g := build_test_network(500)

	_, err := g.NearestNode(orb.Point{8.0, 53.0})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("err = %v; want ErrOutOfBounds", err)
	}
}

func TestAdjacency(t *testing.T) {
	g := build_test_network(500)

	fwd := 0
	g.ForAdjacentEdges(1, FORWARD, func(ref EdgeRef) {
		fwd += 1
		if ref.OtherID != 0 && ref.OtherID != 2 {
			t.Errorf("unexpected forward neighbor %d of node 1", ref.OtherID)
		}
	})
	if fwd != 2 {
		t.Errorf("node 1 has %d outgoing edges; want 2", fwd)
	}

	bwd := 0
	g.ForAdjacentEdges(2, BACKWARD, func(ref EdgeRef) {
		bwd += 1
		if ref.OtherID != 1 {
			t.Errorf("unexpected backward neighbor %d of node 2", ref.OtherID)
		}
	})
	if bwd != 1 {
		t.Errorf("node 2 has %d ingoing edges; want 1", bwd)
	}
}

func TestEscapeNodes(t *testing.T) {
	g := build_test_network(500)

	escapes := g.EscapeNodes()
	if escapes.Length() != 1 || escapes[0] != 2 {
		t.Errorf("EscapeNodes() = %v; want [2]", escapes)
	}
	if !g.IsEscapeNode(2) || g.IsEscapeNode(0) {
		t.Errorf("IsEscapeNode misclassifies nodes")
	}
}

func TestRoadTypeFromString(t *testing.T) {
	cases := map[string]RoadType{
		"motorway":      MOTORWAY,
		"motorway_link": MOTORWAY,
		"trunk":         TRUNK,
		"primary_link":  PRIMARY,
		"residential":   RESIDENTIAL,
		"service":       RESIDENTIAL,
		"footway":       UNCLASSIFIED,
	}
	for tag, want := range cases {
		if got := RoadTypeFromString(tag); got != want {
			t.Errorf("RoadTypeFromString(%q) = %v; want %v", tag, got, want)
		}
	}
}
