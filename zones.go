package main

import (
	"errors"

	"github.com/paulmach/orb/geojson"

	"github.com/guibar/go-intercept/graph"
)

//**********************************************************
// zones handlers
//**********************************************************

type ZonesResponse struct {
	Zones   []string `json:"zones"`
	Default string   `json:"default"`
}

func HandleZonesRequest(manager *ZoneManager) func(none) Result {
	return func(none) Result {
		return OK(ZonesResponse{
			Zones:   manager.ListZones(),
			Default: manager.DefaultZone(""),
		})
	}
}

type ZoneRequest struct {
	Zone string `json:"zone"`
}

type ZoneResponse struct {
	Zone        string                     `json:"zone"`
	NodeCount   int                        `json:"nb_nodes"`
	EdgeCount   int                        `json:"nb_edges"`
	Boundary    *geojson.Feature           `json:"boundary"`
	EscapeNodes *geojson.FeatureCollection `json:"escape_nodes"`
	Origin      [2]float64                 `json:"origin"`
}

// HandleZoneRequest returns the static layers of one zone: its boundary
// polygon, its escape-node set and a default origin the client can
// center on.
func HandleZoneRequest(manager *ZoneManager) func(ZoneRequest) Result {
	return func(request ZoneRequest) Result {
		zone := manager.DefaultZone(request.Zone)
		network, err := manager.GetNetwork(zone)
		if err != nil {
			if errors.Is(err, graph.ErrDataUnavailable) {
				return NotFound(err.Error())
			}
			return BadRequest(err.Error())
		}

		var boundary *geojson.Feature
		if len(network.Boundary()) > 0 {
			boundary = geojson.NewFeature(network.Boundary())
		}
		escapes := geojson.NewFeatureCollection()
		for _, node := range network.EscapeNodes() {
			f := geojson.NewFeature(network.GetNodeGeom(node))
			f.Properties["node"] = node
			escapes.Append(f)
		}
		origin := network.GetNodeGeom(network.DefaultOrigin())
		return OK(ZoneResponse{
			Zone:        zone,
			NodeCount:   network.NodeCount(),
			EdgeCount:   network.EdgeCount(),
			Boundary:    boundary,
			EscapeNodes: escapes,
			Origin:      origin,
		})
	}
}
