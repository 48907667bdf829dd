package parser

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"golang.org/x/exp/slog"

	. "github.com/guibar/go-intercept/util"
)

// ParseGraph extracts the drivable road graph from an OSM pbf extract.
// Ways are split at junction nodes, so every returned edge runs between
// two topological nodes and carries its full point chain for length
// computation.
func ParseGraph(pbf_file string, decoder IOSMDecoder) (List[OSMNode], List[OSMEdge], error) {
	nodes := NewList[OSMNode](10000)
	edges := NewList[OSMEdge](10000)
	index_mapping := NewDict[int64, int](10000)
	if err := parse_osm(pbf_file, decoder, &nodes, &edges, &index_mapping); err != nil {
		return nil, nil, err
	}
	slog.Info(fmt.Sprintf("parsed graph: %d nodes, %d edges", nodes.Length(), edges.Length()))
	return nodes, edges, nil
}

// parse_osm scans the extract three times: once to count node usage
// (junction detection), once for node coordinates, once to cut ways
// into edges.
func parse_osm(filename string, decoder IOSMDecoder, nodes *List[OSMNode], edges *List[OSMEdge], index_mapping *Dict[int64, int]) error {
	osm_nodes := NewDict[int64, TempNode](1000)

	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	init_way_handler(scanner, decoder, &osm_nodes)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	node_handler(scanner, &osm_nodes, nodes, index_mapping)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	way_handler(scanner, decoder, edges, &osm_nodes, index_mapping)
	scanner.Close()
	return nil
}

//*******************************************
// osm handler methods
//*******************************************

func init_way_handler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			refs := object.Nodes.NodeIDs()
			l := len(refs)
			for i := 0; i < l; i++ {
				ndref := refs[i].FeatureID().Ref()
				node := (*osm_nodes)[ndref]
				node.Count += 1
				(*osm_nodes)[ndref] = node
			}
			// way endpoints always become graph nodes
			node_a := (*osm_nodes)[refs[0].FeatureID().Ref()]
			node_b := (*osm_nodes)[refs[l-1].FeatureID().Ref()]
			node_a.Count += 1
			node_b.Count += 1
			(*osm_nodes)[refs[0].FeatureID().Ref()] = node_a
			(*osm_nodes)[refs[l-1].FeatureID().Ref()] = node_b
		default:
			continue
		}
	}
}

func node_handler(scanner *osmpbf.Scanner, osm_nodes *Dict[int64, TempNode], nodes *List[OSMNode], index_mapping *Dict[int64, int]) {
	i := 0
	c := 0

	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := object.FeatureID().Ref()
			if !osm_nodes.ContainsKey(id) {
				continue
			}
			c += 1
			if c%10000 == 0 {
				slog.Debug(fmt.Sprintf("processed %d nodes", c))
			}
			on := osm_nodes.Get(id)
			if on.Count > 1 {
				nodes.Add(OSMNode{Point: orb.Point{object.Lon, object.Lat}})
				index_mapping.Set(id, i)
				i += 1
			}
			on.Point = orb.Point{object.Lon, object.Lat}
			osm_nodes.Set(id, on)
		default:
			continue
		}
	}
}

func way_handler(scanner *osmpbf.Scanner, decoder IOSMDecoder, edges *List[OSMEdge], osm_nodes *Dict[int64, TempNode], index_mapping *Dict[int64, int]) {
	c := 0
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			c += 1
			if c%10000 == 0 {
				slog.Debug(fmt.Sprintf("processed %d ways", c))
			}

			refs := object.Nodes.NodeIDs()
			l := len(refs)
			start := refs[0].FeatureID().Ref()
			curr := int64(0)
			e := decoder.DecodeEdge(tags)
			for i := 0; i < l; i++ {
				curr = refs[i].FeatureID().Ref()
				on := osm_nodes.Get(curr)
				e.Nodes.Add(on.Point)
				if on.Count > 1 && curr != start {
					e.NodeA = index_mapping.Get(start)
					e.NodeB = index_mapping.Get(curr)
					edges.Add(e)
					start = curr
					e = decoder.DecodeEdge(tags)
					e.Nodes.Add(on.Point)
				}
			}
		default:
			continue
		}
	}
}
