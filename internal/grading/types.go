// Package grading implements the CheckMate grading pipeline: vision
// extraction of question/answer segments from scanned exam pages,
// AI or manual-mark scoring, correction-store write-back, and
// aggregation of per-question results into a final report.
package grading

import "encoding/json"

// Label is a question identifier as reported by the vision model.
// Models return it inconsistently as either a JSON string or a number,
// so it unmarshals from both and normalizes to its string form.
type Label string

// UnmarshalJSON accepts a JSON string or number.
func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Label(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = Label(n.String())
	return nil
}

// Segment is a single question/answer unit extracted from one page
// image. Segments are created fresh per image by the extraction stage
// and consumed once by the orchestrator; they are never persisted
// as-is.
type Segment struct {
	QuestionNumber Label  `json:"question_number"`
	QuestionText   string `json:"question_text"`
	StudentAnswer  string `json:"student_answer_text"`
	TeacherNotes   string `json:"teacher_notes_detected,omitempty"`
	ManualScore    string `json:"manual_score_detected,omitempty"`
}

// Answered reports whether the segment carries a student answer.
// Unanswered segments are excluded from scoring.
func (s Segment) Answered() bool {
	return s.StudentAnswer != ""
}

// Marked reports whether the segment shows evidence of pre-existing
// human grading.
func (s Segment) Marked() bool {
	return s.ManualScore != "" || s.TeacherNotes != ""
}

// GradedResult is the scored outcome for one segment. Score is always
// a value in [0,100]; scoring failures produce a zero score with a
// generic failure message rather than an absent result.
type GradedResult struct {
	QuestionNumber string  `json:"question_number"`
	QuestionText   string  `json:"question_text"`
	StudentAnswer  string  `json:"student_answer"`
	Score          int     `json:"score"`
	Feedback       string  `json:"feedback"`
	IsCarryForward bool    `json:"is_carry_forward"`
	PointsPossible float64 `json:"points_possible,omitempty"`
	PointsEarned   float64 `json:"points_earned,omitempty"`
	Reasoning      string  `json:"reasoning,omitempty"`
}

// FileError records a per-file failure that was isolated from the rest
// of the batch. The file contributed zero results.
type FileError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// Report is the final output of one grading run. A report with zero
// results is valid (TotalScore 0) and distinguishable from internal
// errors via FileErrors.
type Report struct {
	TotalScore        float64        `json:"total_score"`
	ScoringMode       ScoringMode    `json:"scoring_mode"`
	Questions         []GradedResult `json:"questions"`
	ExpectedQuestions int            `json:"expected_questions,omitempty"`
	DetectedQuestions int            `json:"detected_questions"`
	FileErrors        []FileError    `json:"file_errors,omitempty"`
}

// Complete reports whether the run detected at least as many questions
// as the caller declared. Always true when no expectation was declared.
func (r *Report) Complete() bool {
	return r.ExpectedQuestions == 0 || r.DetectedQuestions >= r.ExpectedQuestions
}

// File is one uploaded exam-page image submitted to a grading run.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// QuestionDef is a per-question rubric entry declared by the exam:
// the reference text, point value, and expected answer used to build
// the scoring prompt. Points of zero means "not declared".
type QuestionDef struct {
	Number string  `json:"number"`
	Text   string  `json:"text"`
	Points float64 `json:"points"`
	Answer string  `json:"answer,omitempty"`
}

// Request is one batch submission into the grading pipeline.
type Request struct {
	Files             []File
	Mode              Mode
	SmartGrading      bool
	Rubric            string
	Questions         []QuestionDef
	ExpectedQuestions int
}

// FindQuestion returns the rubric entry matching a normalized question
// number, or nil when the exam does not declare one.
func (r *Request) FindQuestion(number string) *QuestionDef {
	for i := range r.Questions {
		if r.Questions[i].Number == number {
			return &r.Questions[i]
		}
	}
	return nil
}
