package grading

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// State keys shared across the grading graph nodes.
const (
	keyRequest     = "request"
	keyProgress    = "progress"
	keyExtractions = "extractions"
	keyResults     = "results"
	keyReport      = "report"
)

// Run executes the grading pipeline for a batch of page images:
// extract → (harvest | score) → aggregate. Progress may be nil when
// the caller has no use for stage events.
func Run(ctx context.Context, rt *Runtime, req *Request, progress Progress) (*Report, error) {
	if len(req.Files) == 0 {
		return nil, ErrNoFiles
	}
	if req.Mode == nil {
		req.Mode = Standard{}
	}

	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(keyRequest, req)
	initialState = initialState.Set(keyProgress, progress)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractReport(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("exam-grading")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("extract", ExtractNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("harvest", HarvestNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("score", ScoreNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("aggregate", AggregateNode(rt)); err != nil {
		return nil, err
	}

	// extract → harvest (training runs never score)
	if err := graph.AddEdge("extract", "harvest", isTraining); err != nil {
		return nil, err
	}

	// extract → score (every other mode)
	if err := graph.AddEdge("extract", "score", state.Not(isTraining)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("harvest", "aggregate", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("score", "aggregate", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("extract"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("aggregate"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractReport(s state.State) (*Report, error) {
	val, ok := s.Get(keyReport)
	if !ok {
		return nil, fmt.Errorf("missing report in final state")
	}

	report, ok := val.(*Report)
	if !ok {
		return nil, fmt.Errorf("report is not *grading.Report")
	}

	return report, nil
}

func isTraining(s state.State) bool {
	req, _, err := extractRunState(s)
	if err != nil {
		return false
	}

	return req.Mode.Name() == ModeTraining
}
