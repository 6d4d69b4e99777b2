// Package memory implements the teacher correction store for CheckMate.
// It persists (question, answer, remark, grade) tuples harvested from
// graded exam pages and digitized manual marks, and serves recent
// matches back to the grading pipeline as historical context.
package memory

import (
	"strings"
	"time"
)

// UnknownHash is the sentinel question hash used when a record carries
// neither a question identifier nor question text. Similarity lookups
// against it are best-effort, not guaranteed-unique.
const UnknownHash = "unknown"

const hashPrefixLength = 50

// TrainingRecord is one row in the correction store. Records are
// append-only: the pipeline never updates or deletes them.
type TrainingRecord struct {
	ID                int64     `json:"id"`
	QuestionHash      string    `json:"question_hash"`
	QuestionText      string    `json:"question_text"`
	StudentAnswerText string    `json:"student_answer_text"`
	TeacherRemark     string    `json:"teacher_remark"`
	GradeAwarded      int       `json:"grade_awarded"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to append a correction record.
type CreateCommand struct {
	QuestionID        string `json:"question_id"`
	QuestionText      string `json:"question_text"`
	StudentAnswerText string `json:"student_answer_text"`
	TeacherRemark     string `json:"teacher_remark"`
	GradeAwarded      int    `json:"grade_awarded"`
}

// Hash derives the lookup key for the record: the caller-supplied
// question identifier when present, else the first 50 characters of
// the question text, else UnknownHash.
func (c CreateCommand) Hash() string {
	if id := strings.TrimSpace(c.QuestionID); id != "" {
		return id
	}
	if text := strings.TrimSpace(c.QuestionText); text != "" {
		runes := []rune(text)
		if len(runes) > hashPrefixLength {
			runes = runes[:hashPrefixLength]
		}
		return string(runes)
	}
	return UnknownHash
}
