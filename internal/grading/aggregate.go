package grading

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// ScoringMode names the aggregation policy that produced a report's
// total, so callers can tell a points-weighted total from a fallback
// average.
type ScoringMode string

const (
	ScoringModeRelative ScoringMode = "relative"
	ScoringModeFallback ScoringMode = "fallback_average"
	ScoringModeTraining ScoringMode = "training"
)

// AggregateNode returns the closing stage: it sorts results, totals
// them under the active aggregation policy, and folds per-file
// extraction failures into the report.
func AggregateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, progress, err := extractRunState(s)
		if err != nil {
			return s, fmt.Errorf("aggregate: %w", err)
		}

		extractions, err := extractionsFromState(s)
		if err != nil {
			return s, fmt.Errorf("aggregate: %w", err)
		}

		val, ok := s.Get(keyResults)
		if !ok {
			return s, fmt.Errorf("aggregate: missing results in state")
		}
		results, ok := val.([]GradedResult)
		if !ok {
			return s, fmt.Errorf("aggregate: results have unexpected type")
		}

		progress.send("aggregate", "מחשב ציון סופי...")

		report := BuildReport(req, results)
		for _, ext := range extractions {
			if ext.Err != "" {
				report.FileErrors = append(report.FileErrors, FileError{
					Filename: ext.Filename,
					Error:    ext.Err,
				})
			}
		}

		s = s.Set(keyReport, report)
		return s, nil
	})
}

// BuildReport sorts results in natural question order and totals them.
// When every result maps to a question definition with a positive
// point value the total is points-weighted, each question contributing
// score/100 of its points, rounded to one decimal. If even one result
// lacks a point mapping the whole report falls back to a simple
// average, so a partially defined sheet never silently skews weights.
func BuildReport(req *Request, results []GradedResult) *Report {
	sort.SliceStable(results, func(i, j int) bool {
		return naturalLess(results[i].QuestionNumber, results[j].QuestionNumber)
	})

	report := &Report{
		ScoringMode:       ScoringModeFallback,
		Questions:         results,
		ExpectedQuestions: req.ExpectedQuestions,
		DetectedQuestions: len(results),
	}

	if req.Mode != nil && req.Mode.Name() == ModeTraining {
		report.ScoringMode = ScoringModeTraining
		return report
	}
	if len(results) == 0 {
		return report
	}

	weighted := true
	var totalPoints float64
	for i := range results {
		if results[i].PointsPossible <= 0 {
			weighted = false
			break
		}
		totalPoints += results[i].PointsPossible
	}

	if weighted && totalPoints > 0 {
		var earned float64
		for i := range results {
			results[i].PointsEarned = round1(float64(results[i].Score) / 100 * results[i].PointsPossible)
			earned += results[i].PointsEarned
		}
		report.ScoringMode = ScoringModeRelative
		report.TotalScore = round1(earned)
		return report
	}

	var sum float64
	for i := range results {
		sum += float64(results[i].Score)
	}
	report.TotalScore = round1(sum / float64(len(results)))
	return report
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
