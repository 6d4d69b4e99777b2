package memory

import (
	"context"

	"github.com/RockeTall/CheckMate-demo/pkg/pagination"
)

// FindSimilarLimit is the maximum number of historical records returned
// for a single question identifier.
const FindSimilarLimit = 5

// System defines the public contract for the correction store.
type System interface {
	Handler() *Handler

	// SaveRemark appends a correction record. Storage errors propagate
	// to the caller; silently losing a teacher correction would defeat
	// the feature's purpose.
	SaveRemark(ctx context.Context, cmd CreateCommand) (*TrainingRecord, error)

	// FindSimilar returns up to FindSimilarLimit records whose question
	// hash exactly equals the identifier, newest first.
	FindSimilar(ctx context.Context, identifier string) ([]TrainingRecord, error)

	// List returns a paginated dump of the store, used by inspection
	// tooling rather than the pipeline itself.
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[TrainingRecord], error)
}
