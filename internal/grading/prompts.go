package grading

import (
	"fmt"
	"strings"
)

// Extraction prompts are composed from a mode-specific instruction
// block and a shared output specification. The specification pins the
// JSON shape so responses survive formatting.Parse; the instruction
// block carries the per-mode strategy.

const standardInstructions = `You are an expert Hebrew OCR and exam analyzer.
Analyze the provided exam page image.
Mode: standard exam — questions and answers share the same page.

Instructions:
1. Locate printed text (question) and handwritten text (answer) strictly within the same document coordinates.
2. Extract the printed question text and the corresponding handwritten answer.
3. Ignore "Student Name", "Class", "Date".
4. Strip point indicators from question text ('10 pts', '(20)', and similar).
5. The handwriting is Hebrew. Pay close attention to characters that look alike ('ו'/'ן', 'ש'/'ס') and maintain right-to-left logic.`

const separateInstructionsFormat = `You are an expert Hebrew OCR and exam analyzer.
Analyze the provided HANDWRITTEN STUDENT ANSWER SHEET.
Mode: separate sheet — the page contains only the student's answers.

Question paper context:
%s

Instructions:
1. Focus on the handwritten text. Identify question numbers (e.g. "1.", "שאלה 1").
2. If question paper context is available, map each handwritten answer to the corresponding question text.
3. If not, set question_text to "Unknown" — never fabricate question text.`

const noSheetContext = `No question paper provided. Infer question numbers from the handwriting (e.g. '1.', 'Q1').`

const trainingInstructions = `You are an expert data harvester for AI training.
Extract teacher grading datapoints. HARVESTING ONLY — DO NOT GRADE.

Instructions:
1. Scan the page specifically for RED or GREEN ink (teacher marks).
2. Pair every teacher remark or score with the corresponding student handwriting and question text.
3. The goal is a dataset of "what the student wrote" vs "what the teacher said/gave".
4. Never produce a grade of your own; report only marks the teacher wrote.`

const extractionSpec = `Respond with a JSON object matching this exact structure:

{
  "segments": [
    {
      "question_number": "<integer or string label>",
      "question_text": "<printed question text, or 'Unknown' when unavailable>",
      "student_answer_text": "<transcribed handwritten answer, empty when none found>",
      "teacher_notes_detected": "<text written by the teacher, when present>",
      "manual_score_detected": "<the mark or score the teacher wrote, e.g. 'V', 'X', '-2', '90'>"
    }
  ]
}

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- One entry per question visible on the page, in page order
- Leave student_answer_text empty rather than inventing an answer
- Omit teacher_notes_detected and manual_score_detected when the page carries no teacher markings`

func (Standard) visionPrompt() string {
	return standardInstructions + "\n\n" + extractionSpec
}

func (m Separate) visionPrompt() string {
	context := strings.TrimSpace(m.SheetContext)
	if context == "" {
		context = noSheetContext
	}
	return fmt.Sprintf(separateInstructionsFormat, context) + "\n\n" + extractionSpec
}

func (Training) visionPrompt() string {
	return trainingInstructions + "\n\n" + extractionSpec
}

const scoringInstructionsFormat = `You are an expert educator grading a Hebrew language exam.

Input data:
- Question: %s
- Student answer: %s
- Teacher rubric: %s

Instructions:
1. Check for carry-forward errors (טעות נגררת): if the student made a
   calculation error in an earlier step but used the result correctly
   downstream, deduct only for the original error — never twice.
2. Provide constructive feedback in Hebrew: what was correct, what was
   wrong, and an encouraging remark.
3. Return a quality score (0-100) based purely on the accuracy of the
   answer, regardless of the question's point value.
   100 = perfect, 0 = completely wrong.`

const scoringSpec = `Respond with a JSON object matching this exact structure:

{
  "quality_score": <0-100>,
  "feedback_hebrew": "<feedback in Hebrew>",
  "carry_forward_error_detected": <boolean>,
  "reasoning_english": "<brief reasoning for the score>"
}

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- quality_score must be a number, never a string`

const historyHeader = `

Historical teacher remarks for this question:`

const historyFooter = `
Use the above history to guide your grading style if applicable.`

// scoringPrompt builds the scoring-stage prompt for one segment.
// history entries are appended as guidance, not as a hard override.
func scoringPrompt(questionText, studentAnswer, rubric string, history []historyEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, scoringInstructionsFormat, questionText, studentAnswer, rubric)
	sb.WriteString("\n\n")
	sb.WriteString(scoringSpec)

	if len(history) > 0 {
		sb.WriteString(historyHeader)
		for _, h := range history {
			fmt.Fprintf(
				&sb,
				"\n- For answer %q, teacher said: %q (score: %d)",
				h.StudentAnswer, h.Remark, h.Grade,
			)
		}
		sb.WriteString(historyFooter)
	}

	return sb.String()
}

// historyEntry is one prior correction attached to a scoring prompt.
type historyEntry struct {
	StudentAnswer string
	Remark        string
	Grade         int
}

// Text-extraction instructions for pre-processing auxiliary uploads
// into plain text before the grading run starts.
const (
	rubricExtractionPrompt = `Extract the grading rubric from this image. Return the rubric as plain text, preserving the Hebrew exactly as written.`

	sheetExtractionPrompt = `Extract all printed text from this question paper. Return plain text, preserving question numbers, point values, and the Hebrew exactly as written.`
)
