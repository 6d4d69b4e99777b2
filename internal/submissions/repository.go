package submissions

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/RockeTall/CheckMate-demo/internal/exams"
	"github.com/RockeTall/CheckMate-demo/internal/grading"
	"github.com/RockeTall/CheckMate-demo/pkg/pagination"
	"github.com/RockeTall/CheckMate-demo/pkg/query"
	"github.com/RockeTall/CheckMate-demo/pkg/repository"
	"github.com/RockeTall/CheckMate-demo/pkg/storage"
)

type repo struct {
	db           *sql.DB
	storage      storage.System
	runtime      *grading.Runtime
	exams        exams.System
	logger       *slog.Logger
	pagination   pagination.Config
	smartDefault bool
}

// New creates a submission repository implementing the System
// interface. The exam system resolves per-question rubrics for graded
// runs; the grading runtime executes the pipeline itself.
func New(
	db *sql.DB,
	store storage.System,
	runtime *grading.Runtime,
	examSys exams.System,
	logger *slog.Logger,
	pagination pagination.Config,
	smartDefault bool,
) System {
	return &repo{
		db:           db,
		storage:      store,
		runtime:      runtime,
		exams:        examSys,
		logger:       logger.With("system", "submissions"),
		pagination:   pagination,
		smartDefault: smartDefault,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Submission], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "StudentName", "Status")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	subs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSubmission)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}

	result := pagination.NewPageResult(subs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Submission, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	sub, err := repository.QueryOne(ctx, r.db, q, args, scanSubmission)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &sub, nil
}

func (r *repo) Upload(ctx context.Context, cmd UploadCommand) (*UploadResult, error) {
	if cmd.StudentName == "" || len(cmd.Pages) == 0 {
		return nil, ErrInvalidSubmission
	}

	id := uuid.New()
	results := make([]PageResult, 0, len(cmd.Pages))
	keys := make([]string, 0, len(cmd.Pages))

	for _, page := range cmd.Pages {
		result := PageResult{Filename: page.Name}

		if !strings.HasPrefix(page.ContentType, "image/") && page.ContentType != pdfContentType {
			result.Error = "unsupported content type"
			results = append(results, result)
			continue
		}
		if len(page.Data) == 0 {
			result.Error = "empty file"
			results = append(results, result)
			continue
		}
		if page.ContentType == pdfContentType {
			if _, err := pdfPageCount(page.Data); err != nil {
				r.logger.Warn("pdf validation failed", "file", page.Name, "error", err)
				result.Error = "unreadable pdf"
				results = append(results, result)
				continue
			}
		}

		key := pageKey(id, len(keys)+1, page.ContentType)
		if err := r.storage.Upload(ctx, key, bytes.NewReader(page.Data), page.ContentType); err != nil {
			r.logger.Warn("page upload failed", "file", page.Name, "error", err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.Key = key
		results = append(results, result)
		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return nil, ErrNoPages
	}

	pageKeys, err := marshalKeys(keys)
	if err != nil {
		return nil, fmt.Errorf("marshal page keys: %w", err)
	}

	q := `
		INSERT INTO submissions(id, exam_id, student_name, page_keys)
		VALUES ($1, $2, $3, $4)
		RETURNING id, exam_id, student_name, page_keys, status, total_score, scoring_mode, report, uploaded_at, updated_at`

	insertArgs := []any{id, cmd.ExamID, cmd.StudentName, pageKeys}

	sub, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Submission, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanSubmission)
	})
	if err != nil {
		for _, key := range keys {
			if delErr := r.storage.Delete(ctx, key); delErr != nil {
				r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
			}
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"submission created",
		"id", sub.ID,
		"student", sub.StudentName,
		"pages", len(keys),
	)
	return &UploadResult{Submission: &sub, Pages: results}, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	sub, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM submissions WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	for _, key := range sub.PageKeys {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("blob delete failed after DB delete", "key", key, "error", delErr)
		}
	}

	r.logger.Info("submission deleted", "id", id)
	return nil
}

func pageKey(id uuid.UUID, page int, contentType string) string {
	ext := "jpg"
	switch contentType {
	case "image/png":
		ext = "png"
	case pdfContentType:
		ext = "pdf"
	}
	return fmt.Sprintf("submissions/%s/page-%d.%s", id, page, ext)
}
