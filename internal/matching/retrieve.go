// Package matching pairs extracted requirements with catalog components. It
// retrieves candidates through a tiered, progressively relaxed query and
// scores them with an LLM-preferred, deterministically-grounded engine.
package matching

import (
	"context"

	"github.com/A3V1/B2B-RFP/internal/catalog"
	"github.com/A3V1/B2B-RFP/internal/types"
)

// Result caps per retrieval tier.
const (
	strictLimit   = 10
	relaxedLimit  = 10
	categoryLimit = 5
)

// Voltage-derived catalog categories.
const (
	CategoryLT  = "LT Cable"
	CategoryHT  = "HT Cable"
	CategoryEHV = "EHV Cable"
)

// RetrieveCandidates returns an ordered, bounded candidate set for the
// requirement's specifications, relaxing the filter tier by tier so that any
// requirement with a voltage rating yields some candidates when the catalog
// is non-empty.
//
// Tier 1 filters on every specified field. Tier 2 keeps only voltage and
// cross-section, the two fields that must never be relaxed before the
// others. Tier 3 falls back to the voltage-derived category. A requirement
// with no voltage rating that survives to Tier 3 is unmatchable.
func RetrieveCandidates(ctx context.Context, q catalog.Querier, specs types.Specifications) ([]types.ComponentCandidate, error) {
	strict := catalog.Filter{
		VoltageKV:       specs.VoltageKV,
		Conductor:       specs.Conductor,
		Cores:           specs.Cores,
		CrossSectionMM2: specs.CrossSectionMM2,
		Insulation:      specs.Insulation,
		Armour:          specs.Armour,
	}

	if !strict.Empty() {
		candidates, err := q.FindBySpecs(ctx, strict, strictLimit)
		if err != nil {
			return nil, err
		}
		if len(candidates) > 0 {
			return candidates, nil
		}

		relaxed := catalog.Filter{
			VoltageKV:       specs.VoltageKV,
			CrossSectionMM2: specs.CrossSectionMM2,
		}
		if !relaxed.Empty() {
			candidates, err = q.FindBySpecs(ctx, relaxed, relaxedLimit)
			if err != nil {
				return nil, err
			}
			if len(candidates) > 0 {
				return candidates, nil
			}
		}
	}

	if specs.VoltageKV != nil {
		return q.FindByCategory(ctx, CategoryForVoltage(*specs.VoltageKV), categoryLimit)
	}

	return nil, nil
}

// CategoryForVoltage derives the coarse catalog category from a voltage
// rating in kV.
func CategoryForVoltage(kv float64) string {
	switch {
	case kv <= 1.1:
		return CategoryLT
	case kv <= 33:
		return CategoryHT
	default:
		return CategoryEHV
	}
}
