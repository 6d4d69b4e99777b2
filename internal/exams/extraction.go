package exams

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/RockeTall/CheckMate-demo/internal/grading"
	"github.com/RockeTall/CheckMate-demo/pkg/formatting"
)

const sheetQuestionPrompt = `**Role:** You are an expert Hebrew OCR system specialized in extracting exam questions.
**Task:** Analyze the provided exam sheet image(s) and extract ALL questions.

**Instructions:**
1. Identify each question by its number (1, 2, 3... or א, ב, ג...)
2. Extract the FULL text of each question (Hebrew)
3. If you see point values (e.g., "20 נקודות", "(10 נק')"), extract them
4. Maintain the original order of questions

**Output Format (Strict JSON Array):**
[
  {"number": 1, "text": "Full question text in Hebrew...", "points": 20},
  {"number": 2, "text": "Another question text...", "points": 15}
]

**Important:**
- Return ONLY a valid JSON array, no markdown
- If points are not visible, estimate based on question complexity (default: 10)
- Preserve Hebrew text exactly as written
- Include sub-questions if present`

const practicePromptFormat = `Act as a teacher. Create a practice quiz for a student based on the following exam context:
Subject: %s
Exam Title: %s

Generate exactly %d practice questions in Hebrew.
The questions should be a mix of "multiple" (American) and "open" questions.

Return a strictly valid JSON array with this structure:
[
  {
    "type": "multiple",
    "question": "Question text...",
    "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
    "correct": 0,
    "explanation": "Why this is correct..."
  },
  {
    "type": "open",
    "question": "Question text...",
    "hint": "A helpful hint...",
    "modelAnswer": "The expected answer..."
  }
]

Ensure the JSON is valid and contains no markdown formatting.`

// DefaultPracticeCount is the number of practice questions generated
// when the caller does not specify one.
const DefaultPracticeCount = 10

type sheetQuestion struct {
	Number grading.Label `json:"number"`
	Text   string        `json:"text"`
	Points float64       `json:"points"`
}

func (r *repo) ExtractSheet(ctx context.Context, files []grading.File) ([]grading.QuestionDef, error) {
	if len(files) == 0 {
		return nil, ErrInvalidExam
	}

	images := make([]string, 0, len(files))
	for _, f := range files {
		dataURI, err := grading.EncodeImage(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidExam, err)
		}
		images = append(images, dataURI)
	}

	text, err := r.runtime.Call(ctx, sheetQuestionPrompt, images)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	parsed, err := formatting.Parse[[]sheetQuestion](text)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable response", ErrExtraction)
	}

	questions := make([]grading.QuestionDef, 0, len(parsed))
	for _, q := range parsed {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		questions = append(questions, grading.QuestionDef{
			Number: grading.NormalizeLabel(q.Number),
			Text:   q.Text,
			Points: q.Points,
		})
	}

	r.logger.Info("question sheet extracted", "questions", len(questions))
	return questions, nil
}

func (r *repo) GeneratePractice(ctx context.Context, id uuid.UUID, count int) ([]PracticeQuestion, error) {
	exam, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if count <= 0 {
		count = DefaultPracticeCount
	}

	prompt := fmt.Sprintf(practicePromptFormat, exam.Subject, exam.Name, count)

	text, err := r.runtime.Call(ctx, prompt, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	questions, err := formatting.Parse[[]PracticeQuestion](text)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable response", ErrGeneration)
	}

	r.logger.Info("practice questions generated", "exam", id, "count", len(questions))
	return questions, nil
}
