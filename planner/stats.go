package planner

import "math"

//**********************************************************
// score aggregation
//**********************************************************

type MinMeanMax struct {
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
}

type Stats struct {
	Score            float64    `json:"score"`
	MaxPossibleScore float64    `json:"max_possible_score"`
	CandidateCount   int        `json:"nb_candidate_nodes"`
	AssignmentCount  int        `json:"nb_assignments"`
	VehicleCount     int        `json:"nb_vehicles"`
	AssignableCount  int        `json:"nb_assignable"`
	TravelTimes      MinMeanMax `json:"travel_time_stats"`
	TimeMargins      MinMeanMax `json:"time_margin_stats"`
}

// compute_stats derives the summary statistics of a finished plan.
// Purely derived, recomputed fresh per result.
func compute_stats(result *PlanResult, assignable int) Stats {
	stats := Stats{
		CandidateCount:  len(result.Candidates),
		AssignmentCount: len(result.Assignments),
		VehicleCount:    len(result.Vehicles),
		AssignableCount: assignable,
	}
	for _, cand := range result.Candidates {
		stats.MaxPossibleScore += cand.Value
	}
	times := make([]float64, 0, len(result.Assignments))
	margins := make([]float64, 0, len(result.Assignments))
	for _, assignment := range result.Assignments {
		stats.Score += assignment.Value
		times = append(times, assignment.TravelTime)
		margins = append(margins, assignment.TimeMargin)
	}
	stats.TravelTimes = min_mean_max(times)
	stats.TimeMargins = min_mean_max(margins)
	return stats
}

func min_mean_max(values []float64) MinMeanMax {
	if len(values) == 0 {
		return MinMeanMax{}
	}
	result := MinMeanMax{Min: values[0], Max: values[0]}
	sum := float64(0)
	for _, value := range values {
		sum += value
		result.Min = math.Min(result.Min, value)
		result.Max = math.Max(result.Max, value)
	}
	result.Min = round1(result.Min)
	result.Max = round1(result.Max)
	result.Mean = round1(sum / float64(len(values)))
	return result
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
