package grading

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/RockeTall/CheckMate-demo/internal/memory"
)

// HarvestNode returns the training-mode stage: every segment that
// carries both an answer and a visible teacher annotation becomes a
// correction-store record, and no segment is ever scored. The node
// leaves an empty result set so the report stage still produces a
// well-formed (zero-score) report.
func HarvestNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		_, progress, err := extractRunState(s)
		if err != nil {
			return s, fmt.Errorf("harvest: %w", err)
		}

		extractions, err := extractionsFromState(s)
		if err != nil {
			return s, fmt.Errorf("harvest: %w", err)
		}

		progress.send("harvest", "לומד מהערות המורה...")

		saved := 0
		for _, ext := range extractions {
			if ext.Err != "" {
				continue
			}

			for _, seg := range ext.Segments {
				if !seg.Answered() || seg.TeacherNotes == "" {
					continue
				}

				grade := 0
				if seg.ManualScore != "" {
					grade = DecodeManualMark(seg.ManualScore)
				}

				if _, err := rt.Memory.SaveRemark(ctx, memory.CreateCommand{
					QuestionID:        NormalizeLabel(seg.QuestionNumber),
					QuestionText:      seg.QuestionText,
					StudentAnswerText: seg.StudentAnswer,
					TeacherRemark:     seg.TeacherNotes,
					GradeAwarded:      grade,
				}); err != nil {
					return s, fmt.Errorf("harvest: %w: %w", ErrMemoryWrite, err)
				}
				saved++
			}
		}

		rt.Logger.Info("training harvest complete", "records", saved)

		s = s.Set(keyResults, []GradedResult{})
		return s, nil
	})
}
