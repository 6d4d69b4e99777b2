package submissions

import (
	"context"

	"github.com/google/uuid"

	"github.com/RockeTall/CheckMate-demo/internal/grading"
	"github.com/RockeTall/CheckMate-demo/pkg/pagination"
)

// System defines the public contract for submission domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Submission], error)

	Find(ctx context.Context, id uuid.UUID) (*Submission, error)

	// Upload stores each readable page as a blob and registers the
	// submission. Individual page failures are reported per page; the
	// upload fails only when no page could be stored.
	Upload(ctx context.Context, cmd UploadCommand) (*UploadResult, error)

	// Grade runs the grading pipeline over the submission's stored
	// pages and persists the resulting report.
	Grade(ctx context.Context, id uuid.UUID, cmd GradeCommand) (*grading.Report, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

// UploadCommand carries a batch of page images for one submission.
type UploadCommand struct {
	StudentName string
	ExamID      *uuid.UUID
	Pages       []grading.File
}
