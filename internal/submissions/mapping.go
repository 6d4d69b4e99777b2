package submissions

import (
	"encoding/json"
	"net/url"

	"github.com/google/uuid"

	"github.com/RockeTall/CheckMate-demo/pkg/query"
	"github.com/RockeTall/CheckMate-demo/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "submissions", "s").
	Project("id", "ID").
	Project("exam_id", "ExamID").
	Project("student_name", "StudentName").
	Project("page_keys", "PageKeys").
	Project("status", "Status").
	Project("total_score", "TotalScore").
	Project("scoring_mode", "ScoringMode").
	Project("report", "Report").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for submission queries.
// Nil fields are ignored. Status and ExamID use exact matching;
// StudentName uses case-insensitive contains matching.
type Filters struct {
	Status      *string    `json:"status,omitempty"`
	StudentName *string    `json:"student_name,omitempty"`
	ExamID      *uuid.UUID `json:"exam_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("StudentName", f.StudentName).
		WhereEquals("ExamID", f.ExamID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if n := values.Get("student_name"); n != "" {
		f.StudentName = &n
	}

	if e := values.Get("exam_id"); e != "" {
		if id, err := uuid.Parse(e); err == nil {
			f.ExamID = &id
		}
	}

	return f
}

func marshalKeys(keys []string) ([]byte, error) {
	if keys == nil {
		keys = []string{}
	}
	return json.Marshal(keys)
}

func scanSubmission(s repository.Scanner) (Submission, error) {
	var (
		sub      Submission
		pageKeys []byte
		report   []byte
	)

	if err := s.Scan(
		&sub.ID,
		&sub.ExamID,
		&sub.StudentName,
		&pageKeys,
		&sub.Status,
		&sub.TotalScore,
		&sub.ScoringMode,
		&report,
		&sub.UploadedAt,
		&sub.UpdatedAt,
	); err != nil {
		return sub, err
	}

	if len(pageKeys) > 0 {
		if err := json.Unmarshal(pageKeys, &sub.PageKeys); err != nil {
			return sub, err
		}
	}

	if len(report) > 0 {
		sub.Report = json.RawMessage(report)
	}

	return sub, nil
}
