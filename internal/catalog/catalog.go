// Package catalog defines the query boundary between the analysis pipeline
// and the component catalog. The pipeline only reads from the catalog; it
// never mutates it.
package catalog

import (
	"context"

	"github.com/A3V1/B2B-RFP/internal/types"
)

// Filter is a conjunctive filter over component specification fields. Nil
// fields are not part of the filter. Voltage, cores and cross-section match
// exactly; conductor, insulation and armour match as case-insensitive
// substrings.
type Filter struct {
	VoltageKV       *float64
	Conductor       *string
	Cores           *string
	CrossSectionMM2 *float64
	Insulation      *string
	Armour          *string
}

// Empty reports whether the filter carries no constraints.
func (f Filter) Empty() bool {
	return f.VoltageKV == nil && f.Conductor == nil && f.Cores == nil &&
		f.CrossSectionMM2 == nil && f.Insulation == nil && f.Armour == nil
}

// Querier answers candidate queries. No ordering is guaranteed beyond
// "matches the filter"; callers apply their own score-based ordering.
type Querier interface {
	// FindBySpecs returns up to limit candidates matching every constraint
	// in the filter.
	FindBySpecs(ctx context.Context, f Filter, limit int) ([]types.ComponentCandidate, error)
	// FindByCategory returns up to limit candidates in the given category,
	// regardless of other fields.
	FindByCategory(ctx context.Context, category string, limit int) ([]types.ComponentCandidate, error)
}

// Session is a scoped catalog handle. It is acquired per matching-stage
// invocation and must be released before the stage returns, regardless of
// success or failure.
type Session interface {
	Querier
	Release()
}

// Source hands out catalog sessions.
type Source interface {
	Acquire(ctx context.Context) (Session, error)
}
