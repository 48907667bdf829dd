package parser

import (
	"github.com/paulmach/orb"

	"github.com/guibar/go-intercept/graph"
	. "github.com/guibar/go-intercept/util"
)

//*******************************************
// parser structs
//*******************************************

type TempNode struct {
	Point orb.Point
	Count int32
}

type OSMNode struct {
	Point orb.Point
}

type OSMEdge struct {
	NodeA  int
	NodeB  int
	Oneway bool
	Type   graph.RoadType
	Speed  int32
	Nodes  List[orb.Point]
}
