package exams

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/RockeTall/CheckMate-demo/internal/grading"
	"github.com/RockeTall/CheckMate-demo/pkg/pagination"
	"github.com/RockeTall/CheckMate-demo/pkg/query"
	"github.com/RockeTall/CheckMate-demo/pkg/repository"
)

type repo struct {
	db         *sql.DB
	runtime    *grading.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an exam repository implementing the System interface.
// The grading runtime backs sheet extraction and practice generation.
func New(
	db *sql.DB,
	runtime *grading.Runtime,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		runtime:    runtime,
		logger:     logger.With("system", "exams"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Exam], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Subject")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count exams: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	exams, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanExam)
	if err != nil {
		return nil, fmt.Errorf("query exams: %w", err)
	}

	result := pagination.NewPageResult(exams, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Exam, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanExam)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Exam, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}
	if cmd.ExamType == "" {
		cmd.ExamType = TypeIntegrated
	}

	questions, err := marshalQuestions(cmd.Questions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExam, err)
	}

	q := `
		INSERT INTO exams(id, name, subject, exam_type, rubric, questions)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, subject, exam_type, rubric, questions, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.Name,
		cmd.Subject,
		cmd.ExamType,
		cmd.Rubric,
		questions,
	}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Exam, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanExam)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("exam created", "id", e.ID, "name", e.Name)
	return &e, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Exam, error) {
	if cmd.Name == "" {
		return nil, ErrInvalidExam
	}
	if cmd.ExamType == "" {
		cmd.ExamType = TypeIntegrated
	}

	questions, err := marshalQuestions(cmd.Questions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExam, err)
	}

	q := `
		UPDATE exams
		SET name = $2, subject = $3, exam_type = $4, rubric = $5, questions = $6, updated_at = now()
		WHERE id = $1
		RETURNING id, name, subject, exam_type, rubric, questions, created_at, updated_at`

	updateArgs := []any{
		id,
		cmd.Name,
		cmd.Subject,
		cmd.ExamType,
		cmd.Rubric,
		questions,
	}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Exam, error) {
		return repository.QueryOne(ctx, tx, q, updateArgs, scanExam)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("exam updated", "id", e.ID)
	return &e, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM exams WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("exam deleted", "id", id)
	return nil
}
