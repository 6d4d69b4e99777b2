// Package exams implements the exam definition domain for CheckMate.
// It provides types, data access, and business logic for exam CRUD,
// question-sheet extraction, and practice question generation.
package exams

import (
	"time"

	"github.com/google/uuid"

	"github.com/RockeTall/CheckMate-demo/internal/grading"
)

// Exam types distinguishing how answer pages relate to question pages.
const (
	TypeIntegrated = "integrated"
	TypeSeparate   = "separate"
)

// Exam represents an exam definition: its identifying metadata, an
// optional general rubric, and the question list used to weight and
// rubric-match graded answers.
type Exam struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Subject   string                `json:"subject"`
	ExamType  string                `json:"exam_type"`
	Rubric    string                `json:"rubric"`
	Questions []grading.QuestionDef `json:"questions"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// TotalPoints sums the declared point values of all questions.
func (e *Exam) TotalPoints() float64 {
	var total float64
	for _, q := range e.Questions {
		total += q.Points
	}
	return total
}

// CreateCommand carries the data needed to register a new exam.
type CreateCommand struct {
	Name      string                `json:"name"`
	Subject   string                `json:"subject"`
	ExamType  string                `json:"exam_type"`
	Rubric    string                `json:"rubric"`
	Questions []grading.QuestionDef `json:"questions"`
}

// UpdateCommand carries a full replacement of an exam's mutable fields.
type UpdateCommand struct {
	Name      string                `json:"name"`
	Subject   string                `json:"subject"`
	ExamType  string                `json:"exam_type"`
	Rubric    string                `json:"rubric"`
	Questions []grading.QuestionDef `json:"questions"`
}

func (c CreateCommand) validate() error {
	if c.Name == "" {
		return ErrInvalidExam
	}
	switch c.ExamType {
	case TypeIntegrated, TypeSeparate, "":
		return nil
	default:
		return ErrInvalidExam
	}
}

// PracticeQuestion is one generated practice item: a multiple-choice
// question carries Options, Correct, and Explanation; an open question
// carries Hint and ModelAnswer.
type PracticeQuestion struct {
	Type        string   `json:"type"`
	Question    string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Correct     int      `json:"correct,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Hint        string   `json:"hint,omitempty"`
	ModelAnswer string   `json:"modelAnswer,omitempty"`
}
