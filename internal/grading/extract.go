package grading

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"golang.org/x/sync/errgroup"

	"github.com/RockeTall/CheckMate-demo/pkg/formatting"
)

type visionResponse struct {
	Segments []Segment `json:"segments"`
}

// fileExtraction holds the per-file outcome of the extraction stage.
// Err is set when the file failed fatally (capability exhausted
// retries, unreadable image); such files contribute zero segments and
// the batch continues without them.
type fileExtraction struct {
	Filename string
	Segments []Segment
	Err      string
}

// ExtractNode returns a state node that runs vision extraction for
// every submitted file under bounded errgroup concurrency. Extraction
// failures are recorded per file, never returned as node errors, so
// one bad scan cannot abort the batch.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, progress, err := extractRunState(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		progress.send("extract", "מפענח כתב יד (OCR)...")

		extractions := make([]fileExtraction, len(req.Files))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workerCount(len(req.Files)))

		for i := range req.Files {
			g.Go(func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}

				file := req.Files[i]
				extractions[i].Filename = file.Name

				segments, err := extractSegments(gctx, rt, file, req.Mode)
				if err != nil {
					rt.Logger.Error(
						"file extraction failed",
						"file", file.Name,
						"error", err,
					)
					extractions[i].Err = err.Error()
					return nil
				}

				extractions[i].Segments = segments
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "extraction complete",
			"files", len(req.Files),
			"mode", req.Mode.Name(),
		)

		s = s.Set(keyExtractions, extractions)
		return s, nil
	})
}

// extractSegments runs the vision stage for one page image. A
// capability failure after retries is a per-file fatal error; a
// malformed response degrades to "nothing detected" because a single
// garbled page must not abort a multi-page submission.
func extractSegments(ctx context.Context, rt *Runtime, file File, mode Mode) ([]Segment, error) {
	dataURI, err := EncodeImage(file)
	if err != nil {
		return nil, err
	}

	text, err := invokeWithRetry(
		ctx, rt.Capability,
		mode.visionPrompt(),
		[]string{dataURI},
		rt.callTimeout(),
		rt.Logger,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := formatting.Parse[visionResponse](text)
	if err != nil {
		rt.Logger.Warn(
			"extraction response unparseable, treating as empty",
			"file", file.Name,
		)
		return []Segment{}, nil
	}

	return parsed.Segments, nil
}

// ExtractText pre-processes an auxiliary upload (rubric scan, question
// sheet) into plain text using the given instruction. Unlike page
// extraction, failures here surface as errors: the caller decides
// whether the run can proceed without the context.
func (rt *Runtime) ExtractText(ctx context.Context, file File, instruction string) (string, error) {
	dataURI, err := EncodeImage(file)
	if err != nil {
		return "", err
	}

	return invokeWithRetry(
		ctx, rt.Capability,
		instruction,
		[]string{dataURI},
		rt.callTimeout(),
		rt.Logger,
	)
}

// ExtractRubric converts a rubric image into rubric text.
func (rt *Runtime) ExtractRubric(ctx context.Context, file File) (string, error) {
	return rt.ExtractText(ctx, file, rubricExtractionPrompt)
}

// ExtractSheet converts a question-sheet image into the context text
// used by separate-mode extraction.
func (rt *Runtime) ExtractSheet(ctx context.Context, file File) (string, error) {
	return rt.ExtractText(ctx, file, sheetExtractionPrompt)
}

func extractRunState(s state.State) (*Request, Progress, error) {
	reqVal, ok := s.Get(keyRequest)
	if !ok {
		return nil, nil, errors.New("missing request in state")
	}

	req, ok := reqVal.(*Request)
	if !ok {
		return nil, nil, errors.New("request is not *grading.Request")
	}

	var progress Progress
	if val, ok := s.Get(keyProgress); ok {
		progress, _ = val.(Progress)
	}

	return req, progress, nil
}

func workerCount(fileCount int) int {
	return max(min(runtime.NumCPU(), fileCount), 1)
}
