package planner

import (
	"sync"

	"github.com/guibar/go-intercept/algorithm"
	"github.com/guibar/go-intercept/graph"
	. "github.com/guibar/go-intercept/util"
)

//**********************************************************
// travel-time oracle
//**********************************************************

// cost_matrix holds the vehicle×candidate travel times plus the search
// tree of every vehicle so assignment trajectories can be rebuilt from
// the parent pointers. UNREACHED marks pairs with no path (the graph
// is directed and not necessarily strongly connected).
type cost_matrix struct {
	costs Matrix[float64]
	trees Array[*algorithm.ShortestPathTree]
}

// calc_cost_matrix runs one target-restricted search per vehicle,
// spread over a small worker pool. Rows are written by exactly one
// worker each, so no locking is needed beyond the WaitGroup.
func calc_cost_matrix(network *graph.RoadNetwork, sources Array[int32], targets Array[int32], cutoff float64, workers int) cost_matrix {
	matrix := cost_matrix{
		costs: NewMatrix[float64](sources.Length(), targets.Length()),
		trees: NewArray[*algorithm.ShortestPathTree](sources.Length()),
	}
	if workers < 1 {
		workers = 1
	}

	source_chan := make(chan Tuple[int, int32], sources.Length())
	for i, source := range sources {
		source_chan <- MakeTuple(i, source)
	}
	close(source_chan)

	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range source_chan {
				row := item.A
				source := item.B
				tree := algorithm.CalcRestrictedTree(network, source, targets, cutoff)
				matrix.trees[row] = tree
				for col, target := range targets {
					matrix.costs.Set(row, col, tree.Dist(target))
				}
			}
		}()
	}
	wg.Wait()
	return matrix
}
