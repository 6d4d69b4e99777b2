package exams

import (
	"encoding/json"
	"net/url"

	"github.com/RockeTall/CheckMate-demo/internal/grading"
	"github.com/RockeTall/CheckMate-demo/pkg/query"
	"github.com/RockeTall/CheckMate-demo/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "exams", "e").
	Project("id", "ID").
	Project("name", "Name").
	Project("subject", "Subject").
	Project("exam_type", "ExamType").
	Project("rubric", "Rubric").
	Project("questions", "Questions").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for exam queries.
// Nil fields are ignored. Subject and ExamType use exact matching;
// Name uses case-insensitive contains matching.
type Filters struct {
	Name     *string `json:"name,omitempty"`
	Subject  *string `json:"subject,omitempty"`
	ExamType *string `json:"exam_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("Subject", f.Subject).
		WhereEquals("ExamType", f.ExamType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if s := values.Get("subject"); s != "" {
		f.Subject = &s
	}

	if t := values.Get("exam_type"); t != "" {
		f.ExamType = &t
	}

	return f
}

func scanExam(s repository.Scanner) (Exam, error) {
	var (
		e         Exam
		questions []byte
	)

	if err := s.Scan(
		&e.ID,
		&e.Name,
		&e.Subject,
		&e.ExamType,
		&e.Rubric,
		&questions,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return e, err
	}

	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &e.Questions); err != nil {
			return e, err
		}
	}

	return e, nil
}

func marshalQuestions(questions []grading.QuestionDef) ([]byte, error) {
	if questions == nil {
		questions = []grading.QuestionDef{}
	}
	return json.Marshal(questions)
}
