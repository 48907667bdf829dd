package parser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"golang.org/x/exp/slog"

	"github.com/guibar/go-intercept/graph"
	. "github.com/guibar/go-intercept/util"
)

//*******************************************
// zone preparation
//*******************************************

// PrepareZone builds the prepared network file of one zone from an OSM
// extract and a boundary polygon. The graph is clipped to the boundary;
// the first node beyond the boundary on every outgoing road is kept and
// marked as escape node.
func PrepareZone(pbf_file string, boundary_file string, zone string, out_dir string) error {
	boundary, err := LoadBoundary(boundary_file)
	if err != nil {
		return fmt.Errorf("boundary %s: %w", boundary_file, err)
	}
	osm_nodes, osm_edges, err := ParseGraph(pbf_file, &DrivingDecoder{})
	if err != nil {
		return fmt.Errorf("extract %s: %w", pbf_file, err)
	}
	nodes, edges := build_zone_graph(osm_nodes, osm_edges, boundary)
	if len(nodes) == 0 {
		return fmt.Errorf("zone %q: no road network inside boundary", zone)
	}

	zone_file := graph.ZoneFile{
		Zone:  zone,
		Nodes: nodes,
		Edges: edges,
	}
	if len(boundary) > 0 {
		zone_file.Boundary = geojson.NewGeometry(boundary)
	}
	out := filepath.Join(out_dir, zone+".json")
	if err := WriteJSONToFile(zone_file, out); err != nil {
		return fmt.Errorf("zone %q: writing %s: %w", zone, out, err)
	}
	slog.Info(fmt.Sprintf("prepared zone %s: %d nodes, %d edges", zone, len(nodes), len(edges)))
	return nil
}

// LoadBoundary reads a GeoJSON polygon from a feature collection,
// feature or bare geometry. An empty file name yields an empty boundary
// (no clipping, no escape nodes).
func LoadBoundary(file string) (orb.Polygon, error) {
	if file == "" {
		return orb.Polygon{}, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var geometry orb.Geometry
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil && len(fc.Features) > 0 {
		geometry = fc.Features[0].Geometry
	} else if f, err := geojson.UnmarshalFeature(data); err == nil {
		geometry = f.Geometry
	} else if g, err := geojson.UnmarshalGeometry(data); err == nil {
		geometry = g.Geometry()
	} else {
		return nil, err
	}
	switch geom := geometry.(type) {
	case orb.Polygon:
		return geom, nil
	case orb.MultiPolygon:
		if len(geom) == 0 {
			return nil, fmt.Errorf("empty multipolygon")
		}
		return geom[0], nil
	default:
		return nil, fmt.Errorf("unsupported boundary geometry %s", geometry.GeoJSONType())
	}
}

// build_zone_graph clips the parsed graph to the boundary and expands
// ways into directed edges. A node outside the boundary survives only
// as the head of an edge leaving the zone, in which case it becomes an
// escape node.
func build_zone_graph(osm_nodes List[OSMNode], osm_edges List[OSMEdge], boundary orb.Polygon) ([]graph.Node, []graph.Edge) {
	inside := NewArray[bool](osm_nodes.Length())
	for i, node := range osm_nodes {
		inside[i] = len(boundary) == 0 || planar.PolygonContains(boundary, node.Point)
	}

	keep := NewArray[bool](osm_nodes.Length())
	escape := NewArray[bool](osm_nodes.Length())
	for _, e := range osm_edges {
		if !inside[e.NodeA] && !inside[e.NodeB] {
			continue
		}
		keep[e.NodeA] = true
		keep[e.NodeB] = true
		if inside[e.NodeA] && !inside[e.NodeB] {
			escape[e.NodeB] = true
		}
		if inside[e.NodeB] && !inside[e.NodeA] && !e.Oneway {
			escape[e.NodeA] = true
		}
	}

	mapping := NewArray[int32](osm_nodes.Length())
	nodes := NewList[graph.Node](osm_nodes.Length())
	for i, node := range osm_nodes {
		if !keep[i] {
			mapping[i] = -1
			continue
		}
		mapping[i] = int32(nodes.Length())
		nodes.Add(graph.Node{Loc: node.Point, Escape: escape[i]})
	}

	edges := NewList[graph.Edge](osm_edges.Length() * 2)
	for _, e := range osm_edges {
		if !inside[e.NodeA] && !inside[e.NodeB] {
			continue
		}
		weight := edge_weight(e)
		if weight <= 0 {
			continue
		}
		edges.Add(graph.Edge{
			NodeA:    mapping[e.NodeA],
			NodeB:    mapping[e.NodeB],
			Weight:   weight,
			RoadType: e.Type,
		})
		if !e.Oneway {
			edges.Add(graph.Edge{
				NodeA:    mapping[e.NodeB],
				NodeB:    mapping[e.NodeA],
				Weight:   weight,
				RoadType: e.Type,
			})
		}
	}
	return nodes, edges
}

// edge_weight is the travel time in seconds along the edge's point
// chain.
func edge_weight(e OSMEdge) float64 {
	length := float64(0)
	for i := 1; i < e.Nodes.Length(); i++ {
		length += geo.Distance(e.Nodes[i-1], e.Nodes[i])
	}
	return length / (float64(e.Speed) / 3.6)
}
