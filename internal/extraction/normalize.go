package extraction

import (
	"fmt"
	"strings"

	"github.com/A3V1/B2B-RFP/internal/types"
)

// NormalizeRequirements assigns deterministic synthetic ids (REQ-001,
// REQ-002, ...) to requirements the model emitted without one or with a
// duplicate id, and defaults category and priority. Ids are unique across
// the emitted sequence: a synthetic id never collides with an explicit id,
// even one appearing later. Normalization is idempotent: a normalized set
// passes through unchanged.
func NormalizeRequirements(reqs []types.Requirement) []types.Requirement {
	out := make([]types.Requirement, 0, len(reqs))

	// Reserve every explicit id up front so synthetic ids skip over them.
	taken := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		if id := strings.TrimSpace(req.ID); id != "" {
			taken[id] = true
		}
	}

	emitted := make(map[string]bool, len(reqs))
	next := 0
	for _, req := range reqs {
		req.ID = strings.TrimSpace(req.ID)
		if req.ID == "" || emitted[req.ID] {
			for {
				next++
				if id := SyntheticID(next - 1); !taken[id] {
					req.ID = id
					break
				}
			}
		}
		emitted[req.ID] = true

		req.Category = normalizeEnum(req.Category, types.ValidCategory, types.CategoryTechnical)
		req.Priority = normalizeEnum(req.Priority, types.ValidPriority, types.PriorityMandatory)
		req.Description = strings.TrimSpace(req.Description)

		out = append(out, req)
	}
	return out
}

// SyntheticID returns the synthetic requirement id for position i (zero
// based), e.g. REQ-001 for the first requirement.
func SyntheticID(i int) string {
	return fmt.Sprintf("REQ-%03d", i+1)
}

func normalizeEnum(value string, valid func(string) bool, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if valid(value) {
		return value
	}
	return fallback
}
