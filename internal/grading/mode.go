package grading

import "fmt"

// Mode tags accepted by ParseMode.
const (
	ModeStandard = "standard"
	ModeSeparate = "separate"
	ModeTraining = "training"
)

// Mode selects the extraction strategy for a grading run. It is a
// closed variant: Standard (question and answer share a page),
// Separate (answer-only sheets mapped against question-sheet context),
// and Training (harvest teacher markings, never grade).
type Mode interface {
	Name() string

	// visionPrompt builds the mode-specific extraction prompt.
	visionPrompt() string
}

// Standard grades pages that carry both the printed question and the
// handwritten answer.
type Standard struct{}

// Separate grades answer-only sheets. SheetContext is the extracted
// text of the question sheet, used to map answers to question numbers.
type Separate struct {
	SheetContext string
}

// Training harvests teacher markings into the correction store without
// producing any graded results.
type Training struct{}

func (Standard) Name() string { return ModeStandard }
func (Separate) Name() string { return ModeSeparate }
func (Training) Name() string { return ModeTraining }

// ParseMode resolves a mode tag to its variant. The sheet context is
// only meaningful for "separate" and is ignored by the other variants.
func ParseMode(tag, sheetContext string) (Mode, error) {
	switch tag {
	case ModeStandard, "":
		return Standard{}, nil
	case ModeSeparate:
		return Separate{SheetContext: sheetContext}, nil
	case ModeTraining:
		return Training{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, tag)
	}
}
