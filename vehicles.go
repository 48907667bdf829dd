package main

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/guibar/go-intercept/graph"
	"github.com/guibar/go-intercept/planner"
	. "github.com/guibar/go-intercept/util"
)

//**********************************************************
// vehicles handler
//**********************************************************

type RandomVehiclesRequest struct {
	Zone  string `json:"zone"`
	Count int    `json:"count"`
	Seed  int64  `json:"seed"`
}

type RandomVehiclesResponse struct {
	Zone     string                 `json:"zone"`
	Vehicles []planner.VehicleInput `json:"vehicles"`
}

// HandleRandomVehiclesRequest places vehicles on random network nodes,
// useful for demos and load tests. A fixed seed gives a reproducible
// fleet.
func HandleRandomVehiclesRequest(manager *ZoneManager) func(RandomVehiclesRequest) Result {
	return func(request RandomVehiclesRequest) Result {
		zone := manager.DefaultZone(request.Zone)
		network, err := manager.GetNetwork(zone)
		if err != nil {
			if errors.Is(err, graph.ErrDataUnavailable) {
				return NotFound(err.Error())
			}
			return BadRequest(err.Error())
		}
		count := request.Count
		if count <= 0 {
			count = 10
		}
		vehicles, err := random_vehicles(network, count, request.Seed)
		if err != nil {
			return BadRequest(err.Error())
		}
		return OK(RandomVehiclesResponse{Zone: zone, Vehicles: vehicles})
	}
}

// random_vehicles draws count positions from the interior nodes of the
// network (escape nodes sit outside the zone).
func random_vehicles(network *graph.RoadNetwork, count int, seed int64) ([]planner.VehicleInput, error) {
	interior := NewList[int32](network.NodeCount())
	for node := 0; node < network.NodeCount(); node++ {
		if !network.IsEscapeNode(int32(node)) {
			interior.Add(int32(node))
		}
	}
	if interior.Length() == 0 {
		return nil, fmt.Errorf("zone %q has no interior nodes", network.Zone())
	}
	rng := rand.New(rand.NewSource(seed))
	vehicles := make([]planner.VehicleInput, count)
	for i := range vehicles {
		node := interior[rng.Intn(interior.Length())]
		vehicles[i] = planner.VehicleInput{
			ID:  i + 1,
			Loc: network.GetNodeGeom(node),
		}
	}
	return vehicles, nil
}
