package ports

import (
	"context"
	"time"

	"svw.info/magicsquares/internal/domain"
)

// Stats captures the size and cost of one generator value's search.
type Stats struct {
	FactorPairs  int
	Progressions int
	Pairs        int // evaluated progression pairs
	Skipped      int // pairs rejected before building a grid
	Finds        int
	Duration     time.Duration
}

// Emitter persists a find and returns the artifact name reported to the user.
type Emitter interface {
	Emit(ctx context.Context, f *domain.Find) (string, error)
}

// Validator checks the magic-square property of a grid.
type Validator interface {
	Validate(ctx context.Context, g domain.Grid) (ok bool, conflicts []domain.Line, err error)
}

// Ledger keeps a queryable record of finds and completed values.
type Ledger interface {
	Record(ctx context.Context, runID string, f *domain.Find, artifact string) error
	List(ctx context.Context, class domain.Class, limit int) ([]domain.FindMeta, error)
	MarkDone(ctx context.Context, runID string, v domain.Value, st Stats) error
	Done(ctx context.Context, v domain.Value) (bool, error)
}
