package planner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"

	"github.com/guibar/go-intercept/algorithm"
	"github.com/guibar/go-intercept/escape"
	"github.com/guibar/go-intercept/graph"
	. "github.com/guibar/go-intercept/util"
)

//**********************************************************
// plan result
//**********************************************************

// Assignment pairs one vehicle with one candidate node. TimeMargin is
// the slack between the vehicle's arrival and the latest moment the
// suspect could still be passing through the node; it is never
// negative in a generated plan.
type Assignment struct {
	VehicleID  int         `json:"vehicle"`
	Node       int32       `json:"node"`
	Dest       orb.Point   `json:"dest"`
	TravelTime float64     `json:"travel_time"`
	TimeMargin float64     `json:"time_margin"`
	Value      float64     `json:"value"`
	Path       List[int32] `json:"path"`
}

// PlanResult is the full outcome of one planning request. Created
// fresh per request and never persisted.
type PlanResult struct {
	ID           string                 `json:"id"`
	Zone         string                 `json:"zone"`
	Origin       orb.Point              `json:"origin"`
	OriginNode   int32                  `json:"origin_node"`
	Elapsed      float64                `json:"elapsed"`
	Isochrone    orb.Polygon            `json:"-"`
	Candidates   []escape.CandidateNode `json:"candidates"`
	Controlled   []int32                `json:"controlled"`
	Uncontrolled []int32                `json:"uncontrolled"`
	Assignments  []Assignment           `json:"assignments"`
	Vehicles     []Vehicle              `json:"vehicles"`
	Stats        Stats                  `json:"stats"`
}

//**********************************************************
// planner
//**********************************************************

type Options struct {
	// Scorer values candidate nodes; nil means uniform value 1.
	Scorer escape.Scorer
	// SafetyBuffer (seconds) widens the suspect arrival bound used by
	// the feasibility predicate.
	SafetyBuffer float64
	// MatrixWorkers caps the parallelism of the cost-matrix
	// computation. Defaults to 4.
	MatrixWorkers int
	// MatrixCutoff (seconds) stops vehicle searches that ran this far
	// without settling every candidate. Defaults to unbounded.
	MatrixCutoff float64
	// MaxSuspectSpeed (m/s) filters out vehicles the suspect could
	// already have passed. 0 disables the filter.
	MaxSuspectSpeed float64
}

// Planner matches response vehicles to candidate escape nodes. It is
// stateless across requests apart from the shared immutable network,
// so one instance serves concurrent requests.
type Planner struct {
	network *graph.RoadNetwork
	opts    Options
}

func NewPlanner(network *graph.RoadNetwork, opts Options) *Planner {
	if opts.Scorer == nil {
		opts.Scorer = escape.UniformScorer{}
	}
	if opts.MatrixWorkers <= 0 {
		opts.MatrixWorkers = 4
	}
	if opts.MatrixCutoff <= 0 {
		opts.MatrixCutoff = algorithm.UNREACHED
	}
	return &Planner{network: network, opts: opts}
}

func (self *Planner) Network() *graph.RoadNetwork {
	return self.network
}

// Plan generates the interception plan for a scenario. A scenario
// with zero candidate nodes or zero feasible pairs yields a valid
// zero-coverage result, not an error.
func (self *Planner) Plan(scenario Scenario) (*PlanResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	network := self.network

	origin_node, err := network.NearestNode(scenario.Origin)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}

	// snap every vehicle; any offender fails the request closed
	vehicles := NewArray[Vehicle](len(scenario.Vehicles))
	offenders := NewList[string](0)
	for i, input := range scenario.Vehicles {
		node, err := network.NearestNode(input.Loc)
		if err != nil {
			offenders.Add(fmt.Sprintf("vehicle %d", input.ID))
			continue
		}
		vehicles[i] = Vehicle{
			ID:    input.ID,
			Loc:   network.GetNodeGeom(node),
			Node:  node,
			State: ASSIGNABLE,
		}
	}
	if offenders.Length() > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(offenders, ", "), graph.ErrOutOfBounds)
	}

	model := escape.NewModel(network, origin_node, scenario.Elapsed, self.opts.Scorer)
	candidates := model.Candidates()
	slog.Debug(fmt.Sprintf("escape model built: %d reachable nodes, %d candidates",
		model.Tree().Reachable().Length(), candidates.Length()))

	// vehicles the suspect could already have passed are not worth a
	// shortest-path run
	origin_loc := network.GetNodeGeom(origin_node)
	if self.opts.MaxSuspectSpeed > 0 && scenario.Elapsed > 0 {
		for i := range vehicles {
			if orbgeo.Distance(origin_loc, vehicles[i].Loc)/scenario.Elapsed < self.opts.MaxSuspectSpeed {
				vehicles[i].State = TOO_CLOSE
			}
		}
	}
	assignable := NewList[int](vehicles.Length())
	for i := range vehicles {
		if vehicles[i].State == ASSIGNABLE {
			assignable.Add(i)
		}
	}

	result := &PlanResult{
		ID:          uuid.New().String(),
		Zone:        network.Zone(),
		Origin:      origin_loc,
		OriginNode:  origin_node,
		Elapsed:     scenario.Elapsed,
		Isochrone:   escape.IsochronePolygon(model),
		Candidates:  candidates,
		Assignments: []Assignment{},
	}

	node_match := NewArray[int](candidates.Length())
	for i := range node_match {
		node_match[i] = -1
	}
	var matrix cost_matrix
	if candidates.Length() > 0 && assignable.Length() > 0 {
		sources := NewArray[int32](assignable.Length())
		for i, v := range assignable {
			sources[i] = vehicles[v].Node
		}
		targets := NewArray[int32](candidates.Length())
		node_ids := NewArray[int32](candidates.Length())
		values := NewArray[float64](candidates.Length())
		bounds := NewArray[float64](candidates.Length())
		for i, cand := range candidates {
			targets[i] = cand.Node
			node_ids[i] = cand.Node
			values[i] = cand.Value
			bounds[i] = cand.Dist - scenario.Elapsed + self.opts.SafetyBuffer
		}
		matrix = calc_cost_matrix(network, sources, targets, self.opts.MatrixCutoff, self.opts.MatrixWorkers)
		problem := &matching_problem{
			node_ids: node_ids,
			values:   values,
			bounds:   bounds,
			costs:    matrix.costs,
		}
		node_match = solve_matching(problem)

		for n, row := range node_match {
			if row == -1 {
				continue
			}
			v := assignable[row]
			cand := candidates[n]
			result.Assignments = append(result.Assignments, Assignment{
				VehicleID:  vehicles[v].ID,
				Node:       cand.Node,
				Dest:       network.GetNodeGeom(cand.Node),
				TravelTime: matrix.costs.Get(row, n),
				TimeMargin: problem.margin(row, n),
				Value:      cand.Value,
				Path:       matrix.trees[row].PathTo(cand.Node),
			})
			vehicles[v].State = ASSIGNED
		}
	}

	// every assignable vehicle left over was considered and not needed
	for _, v := range assignable {
		if vehicles[v].State == ASSIGNABLE {
			vehicles[v].State = UNASSIGNED
		}
	}

	// partition the candidate set; order follows the candidate list
	result.Controlled = make([]int32, 0, candidates.Length())
	result.Uncontrolled = make([]int32, 0, candidates.Length())
	for n, cand := range candidates {
		if node_match[n] != -1 {
			result.Controlled = append(result.Controlled, cand.Node)
		} else {
			result.Uncontrolled = append(result.Uncontrolled, cand.Node)
		}
	}

	slices.SortFunc(result.Assignments, func(a, b Assignment) int {
		return a.VehicleID - b.VehicleID
	})
	result.Vehicles = vehicles
	result.Stats = compute_stats(result, assignable.Length())
	slog.Info(fmt.Sprintf("plan %s: score %.0f / %.0f, %d assignments",
		result.ID, result.Stats.Score, result.Stats.MaxPossibleScore, result.Stats.AssignmentCount))
	return result, nil
}
