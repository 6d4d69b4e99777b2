// Package submissions implements the submission domain for CheckMate:
// uploading scanned exam pages to blob storage, running the grading
// pipeline over them, and persisting the resulting reports.
package submissions

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Submission statuses.
const (
	StatusPending = "pending"
	StatusGraded  = "graded"
	StatusTrained = "trained"
	StatusFailed  = "failed"
)

// Submission represents one student's uploaded exam: its page blobs,
// lifecycle status, and the grading report once produced.
type Submission struct {
	ID          uuid.UUID       `json:"id"`
	ExamID      *uuid.UUID      `json:"exam_id,omitempty"`
	StudentName string          `json:"student_name"`
	PageKeys    []string        `json:"page_keys"`
	Status      string          `json:"status"`
	TotalScore  *float64        `json:"total_score,omitempty"`
	ScoringMode *string         `json:"scoring_mode,omitempty"`
	Report      json.RawMessage `json:"report,omitempty"`
	UploadedAt  time.Time       `json:"uploaded_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PageResult reports the outcome of a single page within an upload.
// On success Key holds the stored blob key and Error is empty.
type PageResult struct {
	Filename string `json:"filename"`
	Key      string `json:"key,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UploadResult is the response to a submission upload: the created
// submission plus the per-page outcomes, including pages that were
// rejected or failed to store.
type UploadResult struct {
	Submission *Submission  `json:"submission"`
	Pages      []PageResult `json:"pages"`
}

// GradeCommand carries the parameters of a grading run. RubricText
// takes precedence over RubricKey; the key form points at a stored
// rubric scan that is pre-processed into text through the vision
// capability. QuestionSheetKey is only meaningful in separate mode.
type GradeCommand struct {
	Mode              string `json:"mode"`
	SmartGrading      *bool  `json:"smart_grading,omitempty"`
	RubricText        string `json:"rubric_text,omitempty"`
	RubricKey         string `json:"rubric_key,omitempty"`
	QuestionSheetKey  string `json:"question_sheet_key,omitempty"`
	ExpectedQuestions int    `json:"expected_questions,omitempty"`
}
