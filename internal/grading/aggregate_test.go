package grading_test

import (
	"testing"

	"github.com/RockeTall/CheckMate-demo/internal/grading"
)

func TestBuildReportWeighted(t *testing.T) {
	req := &grading.Request{Mode: grading.Standard{}}
	results := []grading.GradedResult{
		{QuestionNumber: "1", Score: 100, PointsPossible: 10},
		{QuestionNumber: "2", Score: 50, PointsPossible: 20},
	}

	report := grading.BuildReport(req, results)

	if report.ScoringMode != grading.ScoringModeRelative {
		t.Errorf("scoring mode = %q, want %q", report.ScoringMode, grading.ScoringModeRelative)
	}
	// 100% of 10 + 50% of 20 = 20
	if report.TotalScore != 20.0 {
		t.Errorf("total score = %v, want 20.0", report.TotalScore)
	}
	if report.Questions[0].PointsEarned != 10.0 {
		t.Errorf("q1 points earned = %v, want 10.0", report.Questions[0].PointsEarned)
	}
	if report.Questions[1].PointsEarned != 10.0 {
		t.Errorf("q2 points earned = %v, want 10.0", report.Questions[1].PointsEarned)
	}
	if report.DetectedQuestions != 2 {
		t.Errorf("detected = %d, want 2", report.DetectedQuestions)
	}
}

func TestBuildReportWeightedRounding(t *testing.T) {
	req := &grading.Request{Mode: grading.Standard{}}
	results := []grading.GradedResult{
		{QuestionNumber: "1", Score: 85, PointsPossible: 7},
	}

	report := grading.BuildReport(req, results)

	// 85% of 7 = 5.95, rounded to one decimal
	if report.Questions[0].PointsEarned != 6.0 {
		t.Errorf("points earned = %v, want 6.0", report.Questions[0].PointsEarned)
	}
	if report.TotalScore != 6.0 {
		t.Errorf("total score = %v, want 6.0", report.TotalScore)
	}
}

func TestBuildReportFallbackAverage(t *testing.T) {
	req := &grading.Request{Mode: grading.Standard{}}

	// One result without a point mapping forces the whole report into
	// the simple average.
	results := []grading.GradedResult{
		{QuestionNumber: "1", Score: 90, PointsPossible: 10},
		{QuestionNumber: "2", Score: 50},
	}

	report := grading.BuildReport(req, results)

	if report.ScoringMode != grading.ScoringModeFallback {
		t.Errorf("scoring mode = %q, want %q", report.ScoringMode, grading.ScoringModeFallback)
	}
	if report.TotalScore != 70.0 {
		t.Errorf("total score = %v, want 70.0", report.TotalScore)
	}
	if report.Questions[0].PointsEarned != 0 {
		t.Errorf("points earned = %v, want 0 in fallback mode", report.Questions[0].PointsEarned)
	}
}

func TestBuildReportEmptyResults(t *testing.T) {
	req := &grading.Request{Mode: grading.Standard{}, ExpectedQuestions: 4}

	report := grading.BuildReport(req, nil)

	if report.TotalScore != 0 {
		t.Errorf("total score = %v, want 0", report.TotalScore)
	}
	if report.ScoringMode != grading.ScoringModeFallback {
		t.Errorf("scoring mode = %q, want %q", report.ScoringMode, grading.ScoringModeFallback)
	}
	if report.Complete() {
		t.Error("report with 0 of 4 questions should not be complete")
	}
}

func TestBuildReportTraining(t *testing.T) {
	req := &grading.Request{Mode: grading.Training{}}

	report := grading.BuildReport(req, []grading.GradedResult{})

	if report.ScoringMode != grading.ScoringModeTraining {
		t.Errorf("scoring mode = %q, want %q", report.ScoringMode, grading.ScoringModeTraining)
	}
	if report.TotalScore != 0 {
		t.Errorf("total score = %v, want 0", report.TotalScore)
	}
}

func TestBuildReportNaturalOrder(t *testing.T) {
	req := &grading.Request{Mode: grading.Standard{}}
	results := []grading.GradedResult{
		{QuestionNumber: "10", Score: 10},
		{QuestionNumber: "2", Score: 20},
		{QuestionNumber: "1", Score: 30},
	}

	report := grading.BuildReport(req, results)

	got := []string{
		report.Questions[0].QuestionNumber,
		report.Questions[1].QuestionNumber,
		report.Questions[2].QuestionNumber,
	}
	want := []string{"1", "2", "10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("question order = %v, want %v", got, want)
		}
	}
}
