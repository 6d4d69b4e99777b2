package grading

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/RockeTall/CheckMate-demo/internal/memory"
	"github.com/RockeTall/CheckMate-demo/pkg/formatting"
)

// scoringFailureFeedback is returned on any scoring-stage failure so a
// bad question stays visible in the report instead of aborting it.
const scoringFailureFeedback = "שגיאה בבדיקת שאלה זו. אנא בדוק ידנית."

const generalRubric = "General rubric: grade for correctness, method, and clarity."

type scoreResponse struct {
	QualityScore   *float64 `json:"quality_score"`
	Score          *float64 `json:"score"`
	FeedbackHebrew string   `json:"feedback_hebrew"`
	CarryForward   bool     `json:"carry_forward_error_detected"`
	Reasoning      string   `json:"reasoning_english"`
}

// ScoreNode returns a state node that resolves every answered segment
// into a GradedResult. Files whose pages already carry teacher marks
// have those marks digitized through the manual-mark decoder instead
// of being re-graded by the model; everything else goes through the
// scoring stage. Segments within a file are scored sequentially to
// bound concurrent load on the capability.
func ScoreNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, progress, err := extractRunState(s)
		if err != nil {
			return s, fmt.Errorf("score: %w", err)
		}

		extractions, err := extractionsFromState(s)
		if err != nil {
			return s, fmt.Errorf("score: %w", err)
		}

		progress.send("score", "בודק תשובות...")

		results := make([]GradedResult, 0)
		for _, ext := range extractions {
			if ext.Err != "" {
				continue
			}

			fileResults, err := rt.scoreFile(ctx, req, ext.Segments, progress)
			if err != nil {
				return s, fmt.Errorf("score %s: %w", ext.Filename, err)
			}
			results = append(results, fileResults...)
		}

		s = s.Set(keyResults, results)
		return s, nil
	})
}

// scoreFile resolves one file's segments in extraction order. The only
// error path is the correction store: losing a teacher correction
// silently is worse than failing the request.
func (rt *Runtime) scoreFile(
	ctx context.Context,
	req *Request,
	segments []Segment,
	progress Progress,
) ([]GradedResult, error) {
	marked := false
	for _, seg := range segments {
		if seg.Marked() {
			marked = true
			break
		}
	}

	results := make([]GradedResult, 0, len(segments))
	for _, seg := range segments {
		if !seg.Answered() {
			continue
		}

		number := NormalizeLabel(seg.QuestionNumber)
		progress.send("score", fmt.Sprintf("בודק שאלה %s...", number))

		if marked && seg.ManualScore != "" {
			result, err := rt.digitizeMark(ctx, seg, number, req)
			if err != nil {
				return nil, err
			}
			results = append(results, result)
			continue
		}

		result, err := rt.scoreSegment(ctx, seg, number, req)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// digitizeMark resolves a segment through the manual-mark decoder,
// preserving the teacher's own grade rather than asking the model to
// re-grade already-graded work, and writes the decoded pattern to the
// correction store so it strengthens future lookups.
func (rt *Runtime) digitizeMark(
	ctx context.Context,
	seg Segment,
	number string,
	req *Request,
) (GradedResult, error) {
	score := DecodeManualMark(seg.ManualScore)

	remark := seg.TeacherNotes
	if remark == "" {
		remark = "Manual grade"
	}

	if _, err := rt.Memory.SaveRemark(ctx, memory.CreateCommand{
		QuestionID:        number,
		QuestionText:      seg.QuestionText,
		StudentAnswerText: seg.StudentAnswer,
		TeacherRemark:     remark,
		GradeAwarded:      score,
	}); err != nil {
		return GradedResult{}, fmt.Errorf("%w: %w", ErrMemoryWrite, err)
	}

	feedback := seg.TeacherNotes
	if feedback == "" {
		feedback = fmt.Sprintf("Detected manual grade %q", seg.ManualScore)
	}

	return GradedResult{
		QuestionNumber: number,
		QuestionText:   seg.QuestionText,
		StudentAnswer:  seg.StudentAnswer,
		Score:          score,
		Feedback:       feedback,
		PointsPossible: questionPoints(req, number),
		Reasoning:      fmt.Sprintf("manual mark %q decoded to %d", seg.ManualScore, score),
	}, nil
}

// scoreSegment resolves a segment through the scoring stage. Scoring
// failures (capability errors after retries, malformed responses)
// fold into a zero-score result; the returned error covers only the
// correction store boundary.
func (rt *Runtime) scoreSegment(
	ctx context.Context,
	seg Segment,
	number string,
	req *Request,
) (GradedResult, error) {
	questionText := seg.QuestionText
	rubric := req.Rubric
	var points float64

	if def := req.FindQuestion(number); def != nil {
		if def.Text != "" {
			questionText = def.Text
		}
		if def.Answer != "" {
			rubric = def.Answer
		}
		points = def.Points
	}
	if rubric == "" {
		rubric = generalRubric
	}

	history, err := rt.lookupHistory(ctx, req, number)
	if err != nil {
		return GradedResult{}, err
	}

	result := GradedResult{
		QuestionNumber: number,
		QuestionText:   questionText,
		StudentAnswer:  seg.StudentAnswer,
		PointsPossible: points,
	}

	prompt := scoringPrompt(questionText, seg.StudentAnswer, rubric, history)

	text, err := invokeWithRetry(ctx, rt.Capability, prompt, nil, rt.callTimeout(), rt.Logger)
	if err != nil {
		rt.Logger.Error("scoring call failed", "question", number, "error", err)
		result.Feedback = scoringFailureFeedback
		return result, nil
	}

	parsed, err := formatting.Parse[scoreResponse](text)
	if err != nil {
		rt.Logger.Warn("scoring response unparseable", "question", number)
		result.Feedback = scoringFailureFeedback
		return result, nil
	}

	result.Score = clampScore(int(parsed.quality()))
	result.Feedback = parsed.FeedbackHebrew
	result.IsCarryForward = parsed.CarryForward
	result.Reasoning = parsed.Reasoning

	if result.Score > autoLearnThreshold {
		if _, err := rt.Memory.SaveRemark(ctx, memory.CreateCommand{
			QuestionID:        number,
			QuestionText:      questionText,
			StudentAnswerText: seg.StudentAnswer,
			TeacherRemark:     result.Feedback,
			GradeAwarded:      result.Score,
		}); err != nil {
			return GradedResult{}, fmt.Errorf("%w: %w", ErrMemoryWrite, err)
		}
	}

	return result, nil
}

func (rt *Runtime) lookupHistory(ctx context.Context, req *Request, number string) ([]historyEntry, error) {
	if !req.SmartGrading {
		return nil, nil
	}

	records, err := rt.Memory.FindSimilar(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("lookup history for %s: %w", number, err)
	}

	history := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		history = append(history, historyEntry{
			StudentAnswer: rec.StudentAnswerText,
			Remark:        rec.TeacherRemark,
			Grade:         rec.GradeAwarded,
		})
	}
	return history, nil
}

// quality prefers the quality_score field, falling back to score for
// models that ignore the response specification.
func (r scoreResponse) quality() float64 {
	if r.QualityScore != nil {
		return *r.QualityScore
	}
	if r.Score != nil {
		return *r.Score
	}
	return 0
}

func questionPoints(req *Request, number string) float64 {
	if def := req.FindQuestion(number); def != nil {
		return def.Points
	}
	return 0
}

func extractionsFromState(s state.State) ([]fileExtraction, error) {
	val, ok := s.Get(keyExtractions)
	if !ok {
		return nil, fmt.Errorf("missing extractions in state")
	}

	extractions, ok := val.([]fileExtraction)
	if !ok {
		return nil, fmt.Errorf("extractions have unexpected type")
	}

	return extractions, nil
}
