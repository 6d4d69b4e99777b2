package memory

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/RockeTall/CheckMate-demo/pkg/pagination"
	"github.com/RockeTall/CheckMate-demo/pkg/query"
	"github.com/RockeTall/CheckMate-demo/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "teacher_annotations", "a").
	Project("id", "ID").
	Project("question_hash", "QuestionHash").
	Project("question_text", "QuestionText").
	Project("student_answer_text", "StudentAnswerText").
	Project("teacher_remark", "TeacherRemark").
	Project("grade_awarded", "GradeAwarded").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a correction store repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "memory"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) SaveRemark(ctx context.Context, cmd CreateCommand) (*TrainingRecord, error) {
	q := `
		INSERT INTO teacher_annotations(question_hash, question_text, student_answer_text, teacher_remark, grade_awarded)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, question_hash, question_text, student_answer_text, teacher_remark, grade_awarded, created_at`

	args := []any{
		cmd.Hash(),
		cmd.QuestionText,
		cmd.StudentAnswerText,
		cmd.TeacherRemark,
		cmd.GradeAwarded,
	}

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("save remark: %w", err)
	}

	r.logger.Info(
		"correction saved",
		"hash", rec.QuestionHash,
		"grade", rec.GradeAwarded,
	)
	return &rec, nil
}

func (r *repo) FindSimilar(ctx context.Context, identifier string) ([]TrainingRecord, error) {
	q := `
		SELECT id, question_hash, question_text, student_answer_text, teacher_remark, grade_awarded, created_at
		FROM teacher_annotations
		WHERE question_hash = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	records, err := repository.QueryMany(ctx, r.db, q, []any{identifier, FindSimilarLimit}, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("find similar %q: %w", identifier, err)
	}
	return records, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
) (*pagination.PageResult[TrainingRecord], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "QuestionText", "TeacherRemark")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count annotations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query annotations: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func scanRecord(s repository.Scanner) (TrainingRecord, error) {
	var r TrainingRecord
	err := s.Scan(
		&r.ID,
		&r.QuestionHash,
		&r.QuestionText,
		&r.StudentAnswerText,
		&r.TeacherRemark,
		&r.GradeAwarded,
		&r.CreatedAt,
	)
	return r, err
}
