package escape

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/guibar/go-intercept/graph"
	. "github.com/guibar/go-intercept/util"
)

//**********************************************************
// isochrone geometry
//**********************************************************

// IsochronePolygon renders the isochrone frontier of a model as a
// polygon. Frontier points are interpolated along the tree edges that
// cross the time budget and ordered by bearing around their centroid
// (the original renderer's "balanced polygon").
func IsochronePolygon(model *Model) orb.Polygon {
	network := model.network
	tree := model.tree
	budget := tree.Budget()

	points := NewList[orb.Point](32)
	for _, node := range tree.Reachable() {
		dist := tree.Dist(node)
		network.ForAdjacentEdges(node, graph.FORWARD, func(ref graph.EdgeRef) {
			if tree.Reached(ref.OtherID) {
				return
			}
			weight := network.GetEdgeWeight(ref.EdgeID)
			if weight <= 0 {
				return
			}
			frac := (budget - dist) / weight
			a := network.GetNodeGeom(node)
			b := network.GetNodeGeom(ref.OtherID)
			points.Add(orb.Point{
				a[0] + frac*(b[0]-a[0]),
				a[1] + frac*(b[1]-a[1]),
			})
		})
		// reached escape nodes are kept in the outline so the polygon
		// always encloses the candidate points
		if network.IsEscapeNode(node) {
			points.Add(network.GetNodeGeom(node))
		}
	}

	if points.Length() < 3 {
		// tiny or empty frontier (e.g. zero elapsed time), draw a
		// small diamond around the origin so the client has something
		// visible
		return diamond(network.GetNodeGeom(model.origin), 0.0003)
	}
	return balanced_polygon(points)
}

func balanced_polygon(points List[orb.Point]) orb.Polygon {
	center := orb.Point{}
	for _, p := range points {
		center[0] += p[0] / float64(points.Length())
		center[1] += p[1] / float64(points.Length())
	}
	sort.Slice(points, func(i, j int) bool {
		ai := math.Atan2(points[i][1]-center[1], points[i][0]-center[0])
		aj := math.Atan2(points[j][1]-center[1], points[j][0]-center[0])
		if ai != aj {
			return ai < aj
		}
		return points[i][0] < points[j][0]
	})
	ring := make(orb.Ring, 0, points.Length()+1)
	ring = append(ring, points...)
	ring = append(ring, points[0])
	return orb.Polygon{ring}
}

func diamond(center orb.Point, size float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{center[0] - size, center[1]},
		{center[0], center[1] - size},
		{center[0] + size, center[1]},
		{center[0], center[1] + size},
		{center[0] - size, center[1]},
	}}
}
