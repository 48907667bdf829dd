package planner

import (
	"sort"

	"github.com/guibar/go-intercept/algorithm"
	. "github.com/guibar/go-intercept/util"
)

//**********************************************************
// assignment matching
//**********************************************************

// matching_problem is the explicit weighted adjacency the matcher
// works on: plain indices instead of object references, so it can be
// fed synthetic matrices in tests.
type matching_problem struct {
	node_ids Array[int32]   // candidate node id per column
	values   Array[float64] // candidate value per column
	bounds   Array[float64] // suspect arrival bound per column
	costs    Matrix[float64]
}

func (self *matching_problem) vehicle_count() int {
	return self.costs.Rows
}

func (self *matching_problem) node_count() int {
	return self.costs.Cols
}

// feasible reports whether a vehicle can hold a node: it must have a
// path and arrive with non-negative margin. Infeasible pairs are
// excluded before matching, never penalized afterwards.
func (self *matching_problem) feasible(vehicle, node int) bool {
	cost := self.costs.Get(vehicle, node)
	return cost != algorithm.UNREACHED && self.margin(vehicle, node) >= 0
}

func (self *matching_problem) margin(vehicle, node int) float64 {
	return self.bounds[node] - self.costs.Get(vehicle, node)
}

// solve_matching computes a one-to-one vehicle/node matching of
// maximum total value over the feasible pairs. Candidate nodes are
// taken in descending value order and matched via augmenting paths;
// among equal alternatives vehicles with larger margins are tried
// first. Returns the matched vehicle index per node, -1 for
// uncontrolled nodes.
func solve_matching(problem *matching_problem) Array[int] {
	node_count := problem.node_count()
	vehicle_count := problem.vehicle_count()

	node_match := NewArray[int](node_count)
	vehicle_match := NewArray[int](vehicle_count)
	for i := range node_match {
		node_match[i] = -1
	}
	for i := range vehicle_match {
		vehicle_match[i] = -1
	}

	// feasible vehicles per node, safest margins first
	options := NewArray[[]int](node_count)
	for n := 0; n < node_count; n++ {
		opts := NewList[int](vehicle_count)
		for v := 0; v < vehicle_count; v++ {
			if problem.feasible(v, n) {
				opts.Add(v)
			}
		}
		sort.SliceStable(opts, func(i, j int) bool {
			return problem.margin(opts[i], n) > problem.margin(opts[j], n)
		})
		options[n] = opts
	}

	// node processing order: value descending, node id ascending
	order := NewArray[int](node_count)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if problem.values[a] != problem.values[b] {
			return problem.values[a] > problem.values[b]
		}
		return problem.node_ids[a] < problem.node_ids[b]
	})

	var augment func(node int, visited Array[bool]) bool
	augment = func(node int, visited Array[bool]) bool {
		for _, vehicle := range options[node] {
			if visited[vehicle] {
				continue
			}
			visited[vehicle] = true
			if vehicle_match[vehicle] == -1 || augment(vehicle_match[vehicle], visited) {
				vehicle_match[vehicle] = node
				node_match[node] = vehicle
				return true
			}
		}
		return false
	}

	for _, node := range order {
		if len(options[node]) == 0 {
			continue
		}
		augment(node, NewArray[bool](vehicle_count))
	}
	return node_match
}
