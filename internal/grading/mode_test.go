package grading_test

import (
	"errors"
	"testing"

	"github.com/RockeTall/CheckMate-demo/internal/grading"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want string
	}{
		{"standard", "standard", grading.ModeStandard},
		{"empty defaults to standard", "", grading.ModeStandard},
		{"separate", "separate", grading.ModeSeparate},
		{"training", "training", grading.ModeTraining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := grading.ParseMode(tt.tag, "")
			if err != nil {
				t.Fatalf("ParseMode error: %v", err)
			}
			if mode.Name() != tt.want {
				t.Errorf("mode name = %q, want %q", mode.Name(), tt.want)
			}
		})
	}

	t.Run("unknown tag returns ErrInvalidMode", func(t *testing.T) {
		_, err := grading.ParseMode("batch", "")
		if !errors.Is(err, grading.ErrInvalidMode) {
			t.Errorf("error = %v, want ErrInvalidMode", err)
		}
	})

	t.Run("separate keeps sheet context", func(t *testing.T) {
		mode, err := grading.ParseMode("separate", "question sheet text")
		if err != nil {
			t.Fatalf("ParseMode error: %v", err)
		}
		sep, ok := mode.(grading.Separate)
		if !ok {
			t.Fatalf("mode is %T, want grading.Separate", mode)
		}
		if sep.SheetContext != "question sheet text" {
			t.Errorf("sheet context = %q, want %q", sep.SheetContext, "question sheet text")
		}
	})
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no files", grading.ErrNoFiles, 400},
		{"invalid mode", grading.ErrInvalidMode, 400},
		{"memory write", grading.ErrMemoryWrite, 500},
		{"unknown error", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grading.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}
