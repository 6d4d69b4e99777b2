package submissions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/RockeTall/CheckMate-demo/internal/exams"
	"github.com/RockeTall/CheckMate-demo/internal/grading"
	"github.com/RockeTall/CheckMate-demo/pkg/repository"
)

// Grade runs the grading pipeline over a submission's stored pages and
// persists the resulting report. Validation failures surface before
// any capability call; a pipeline failure marks the submission failed.
func (r *repo) Grade(ctx context.Context, id uuid.UUID, cmd GradeCommand) (*grading.Report, error) {
	if _, err := grading.ParseMode(cmd.Mode, ""); err != nil {
		return nil, err
	}
	if cmd.ExpectedQuestions < 0 {
		return nil, ErrInvalidSubmission
	}

	sub, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(sub.PageKeys) == 0 {
		return nil, ErrNoPages
	}

	req, err := r.buildRequest(ctx, sub, cmd)
	if err != nil {
		return nil, err
	}

	report, err := r.runPipeline(ctx, sub, req)
	if err != nil {
		r.markFailed(ctx, id)
		return nil, err
	}

	if err := r.persistReport(ctx, sub.ID, req.Mode, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (r *repo) buildRequest(ctx context.Context, sub *Submission, cmd GradeCommand) (*grading.Request, error) {
	pages, err := r.downloadPages(ctx, sub.PageKeys)
	if err != nil {
		return nil, err
	}

	var exam *exams.Exam
	if sub.ExamID != nil {
		exam, err = r.exams.Find(ctx, *sub.ExamID)
		if err != nil {
			return nil, fmt.Errorf("resolve exam: %w", err)
		}
	}

	rubric, err := r.resolveRubric(ctx, cmd, exam)
	if err != nil {
		return nil, err
	}

	sheetContext, err := r.resolveSheetContext(ctx, cmd)
	if err != nil {
		return nil, err
	}

	mode, err := grading.ParseMode(cmd.Mode, sheetContext)
	if err != nil {
		return nil, err
	}

	smart := r.smartDefault
	if cmd.SmartGrading != nil {
		smart = *cmd.SmartGrading
	}

	req := &grading.Request{
		Files:             pages,
		Mode:              mode,
		SmartGrading:      smart,
		Rubric:            rubric,
		ExpectedQuestions: cmd.ExpectedQuestions,
	}

	if exam != nil {
		req.Questions = exam.Questions
		if req.ExpectedQuestions == 0 {
			req.ExpectedQuestions = len(exam.Questions)
		}
	}

	return req, nil
}

func (r *repo) downloadPages(ctx context.Context, keys []string) ([]grading.File, error) {
	pages := make([]grading.File, 0, len(keys))
	for _, key := range keys {
		result, err := r.storage.Download(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("download page %s: %w", key, err)
		}

		data, err := io.ReadAll(result.Body)
		result.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", key, err)
		}

		name := path.Base(key)

		if result.ContentType == pdfContentType || path.Ext(key) == ".pdf" {
			rendered, err := renderPDFPages(ctx, name, data)
			if err != nil {
				return nil, fmt.Errorf("render pdf %s: %w", key, err)
			}
			pages = append(pages, rendered...)
			continue
		}

		pages = append(pages, grading.File{
			Name:        name,
			ContentType: result.ContentType,
			Data:        data,
		})
	}
	return pages, nil
}

// resolveRubric prefers inline rubric text, then a stored rubric scan
// digitized through the vision capability, then the exam's general
// rubric. An empty result is valid; the scoring stage falls back to a
// general instruction.
func (r *repo) resolveRubric(ctx context.Context, cmd GradeCommand, exam *exams.Exam) (string, error) {
	if cmd.RubricText != "" {
		return cmd.RubricText, nil
	}

	if cmd.RubricKey != "" {
		file, err := r.downloadFile(ctx, cmd.RubricKey)
		if err != nil {
			return "", err
		}
		text, err := r.runtime.ExtractRubric(ctx, file)
		if err != nil {
			return "", fmt.Errorf("extract rubric: %w", err)
		}
		return text, nil
	}

	if exam != nil {
		return exam.Rubric, nil
	}
	return "", nil
}

// resolveSheetContext digitizes the question sheet for separate mode.
// A missing sheet is allowed; the extraction prompt then instructs the
// model to infer question numbering from the answer pages.
func (r *repo) resolveSheetContext(ctx context.Context, cmd GradeCommand) (string, error) {
	if cmd.Mode != grading.ModeSeparate || cmd.QuestionSheetKey == "" {
		return "", nil
	}

	file, err := r.downloadFile(ctx, cmd.QuestionSheetKey)
	if err != nil {
		return "", err
	}

	text, err := r.runtime.ExtractSheet(ctx, file)
	if err != nil {
		return "", fmt.Errorf("extract question sheet: %w", err)
	}
	return text, nil
}

func (r *repo) downloadFile(ctx context.Context, key string) (grading.File, error) {
	result, err := r.storage.Download(ctx, key)
	if err != nil {
		return grading.File{}, fmt.Errorf("download %s: %w", key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return grading.File{}, fmt.Errorf("read %s: %w", key, err)
	}

	name := path.Base(key)

	// Rubric and question-sheet extraction take a single image; a PDF
	// scan contributes its first page.
	if result.ContentType == pdfContentType || path.Ext(key) == ".pdf" {
		rendered, err := renderPDFPages(ctx, name, data)
		if err != nil {
			return grading.File{}, fmt.Errorf("render pdf %s: %w", key, err)
		}
		if len(rendered) == 0 {
			return grading.File{}, fmt.Errorf("render pdf %s: no pages", key)
		}
		return rendered[0], nil
	}

	return grading.File{
		Name:        name,
		ContentType: result.ContentType,
		Data:        data,
	}, nil
}

// runPipeline executes the grading graph with a progress sink that
// mirrors stage events into the log.
func (r *repo) runPipeline(ctx context.Context, sub *Submission, req *grading.Request) (*grading.Report, error) {
	events := make(chan grading.StatusEvent, 16)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for ev := range events {
			r.logger.Info("grading progress", "submission", sub.ID, "stage", ev.Stage, "status", ev.Message)
		}
	}()

	report, err := grading.Run(ctx, r.runtime, req, events)
	close(events)
	<-done

	if err != nil {
		return nil, fmt.Errorf("grade submission %s: %w", sub.ID, err)
	}
	return report, nil
}

func (r *repo) persistReport(ctx context.Context, id uuid.UUID, mode grading.Mode, report *grading.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	status := StatusGraded
	if mode.Name() == grading.ModeTraining {
		status = StatusTrained
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			`UPDATE submissions
			 SET status = $2, total_score = $3, scoring_mode = $4, report = $5, updated_at = now()
			 WHERE id = $1`,
			id, status, report.TotalScore, string(report.ScoringMode), payload,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"submission graded",
		"id", id,
		"status", status,
		"total", report.TotalScore,
		"scoring_mode", report.ScoringMode,
	)
	return nil
}

// markFailed is best effort; the grading error is what the caller
// needs to see.
func (r *repo) markFailed(ctx context.Context, id uuid.UUID) {
	if _, err := r.db.ExecContext(
		ctx,
		"UPDATE submissions SET status = $2, updated_at = now() WHERE id = $1",
		id, StatusFailed,
	); err != nil {
		r.logger.Warn("mark failed did not persist", "id", id, "error", err)
	}
}
