package main

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/guibar/go-intercept/graph"
	"github.com/guibar/go-intercept/planner"
)

//**********************************************************
// plan handler
//**********************************************************

type PlanRequest struct {
	Zone     string                 `json:"zone"`
	Origin   orb.Point              `json:"origin"`
	Elapsed  float64                `json:"elapsed"`
	Vehicles []planner.VehicleInput `json:"vehicles"`
}

type PlanResponse struct {
	ID           string                     `json:"id"`
	Zone         string                     `json:"zone"`
	Origin       orb.Point                  `json:"origin"`
	OriginNode   int32                      `json:"origin_node"`
	Elapsed      float64                    `json:"elapsed"`
	Isochrone    *geojson.Feature           `json:"isochrone"`
	Candidates   *geojson.FeatureCollection `json:"candidates"`
	Trajectories *geojson.FeatureCollection `json:"trajectories"`
	Assignments  []planner.Assignment       `json:"assignments"`
	Vehicles     []planner.Vehicle          `json:"vehicles"`
	Stats        planner.Stats              `json:"stats"`
}

func HandlePlanRequest(manager *ZoneManager) func(PlanRequest) Result {
	return func(request PlanRequest) Result {
		zone := manager.DefaultZone(request.Zone)
		p, err := manager.GetPlanner(zone)
		if err != nil {
			if errors.Is(err, graph.ErrDataUnavailable) {
				return NotFound(err.Error())
			}
			return BadRequest(err.Error())
		}
		scenario := planner.Scenario{
			Origin:   request.Origin,
			Elapsed:  request.Elapsed,
			Vehicles: request.Vehicles,
		}
		result, err := p.Plan(scenario)
		if err != nil {
			switch {
			case errors.Is(err, planner.ErrInvalidScenario):
				return BadRequest(err.Error())
			case errors.Is(err, graph.ErrOutOfBounds):
				return BadRequest(err.Error())
			default:
				return BadRequest(err.Error())
			}
		}
		plan_candidates.Observe(float64(result.Stats.CandidateCount))
		if result.Stats.MaxPossibleScore > 0 {
			plan_coverage.Observe(result.Stats.Score / result.Stats.MaxPossibleScore)
		}
		return OK(build_plan_response(p.Network(), result))
	}
}

// build_plan_response renders a plan into GeoJSON layers a map client
// can draw directly.
func build_plan_response(network *graph.RoadNetwork, result *planner.PlanResult) PlanResponse {
	isochrone := geojson.NewFeature(result.Isochrone)
	isochrone.Properties["elapsed"] = result.Elapsed

	// one point feature per candidate node, flagged with its coverage
	controlled := make(map[int32]bool, len(result.Controlled))
	for _, node := range result.Controlled {
		controlled[node] = true
	}
	candidates := geojson.NewFeatureCollection()
	for _, cand := range result.Candidates {
		f := geojson.NewFeature(network.GetNodeGeom(cand.Node))
		f.Properties["node"] = cand.Node
		f.Properties["dist"] = cand.Dist
		f.Properties["value"] = cand.Value
		f.Properties["controlled"] = controlled[cand.Node]
		candidates.Append(f)
	}

	// one linestring per assignment from vehicle to interception point
	trajectories := geojson.NewFeatureCollection()
	for _, assignment := range result.Assignments {
		line := make(orb.LineString, 0, len(assignment.Path))
		for _, node := range assignment.Path {
			line = append(line, network.GetNodeGeom(node))
		}
		f := geojson.NewFeature(line)
		f.Properties["vehicle"] = assignment.VehicleID
		f.Properties["node"] = assignment.Node
		f.Properties["travel_time"] = assignment.TravelTime
		f.Properties["time_margin"] = assignment.TimeMargin
		trajectories.Append(f)
	}

	return PlanResponse{
		ID:           result.ID,
		Zone:         result.Zone,
		Origin:       result.Origin,
		OriginNode:   result.OriginNode,
		Elapsed:      result.Elapsed,
		Isochrone:    isochrone,
		Candidates:   candidates,
		Trajectories: trajectories,
		Assignments:  result.Assignments,
		Vehicles:     result.Vehicles,
		Stats:        result.Stats,
	}
}
