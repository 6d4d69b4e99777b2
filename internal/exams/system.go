package exams

import (
	"context"

	"github.com/google/uuid"

	"github.com/RockeTall/CheckMate-demo/internal/grading"
	"github.com/RockeTall/CheckMate-demo/pkg/pagination"
)

// System defines the public contract for exam domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Exam], error)

	Find(ctx context.Context, id uuid.UUID) (*Exam, error)
	Create(ctx context.Context, cmd CreateCommand) (*Exam, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Exam, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ExtractSheet runs vision extraction over uploaded question-sheet
	// images and returns the numbered questions with point values.
	ExtractSheet(ctx context.Context, files []grading.File) ([]grading.QuestionDef, error)

	// GeneratePractice produces count practice questions in Hebrew for
	// the identified exam's subject and title.
	GeneratePractice(ctx context.Context, id uuid.UUID, count int) ([]PracticeQuestion, error)
}
