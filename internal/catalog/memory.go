package catalog

import (
	"context"
	"strings"

	"github.com/A3V1/B2B-RFP/internal/types"
)

// MemoryStore is an in-memory catalog. It backs tests and offline CLI runs
// where no database is configured. Candidates are returned in insertion
// order.
type MemoryStore struct {
	components []types.ComponentCandidate
}

// NewMemoryStore creates a MemoryStore with the given components.
func NewMemoryStore(components []types.ComponentCandidate) *MemoryStore {
	return &MemoryStore{components: components}
}

// Add appends a component to the store.
func (m *MemoryStore) Add(c types.ComponentCandidate) {
	m.components = append(m.components, c)
}

// Acquire implements Source. A MemoryStore session is the store itself;
// Release is a no-op.
func (m *MemoryStore) Acquire(ctx context.Context) (Session, error) {
	return memorySession{store: m}, nil
}

type memorySession struct {
	store *MemoryStore
}

func (s memorySession) Release() {}

func (s memorySession) FindBySpecs(ctx context.Context, f Filter, limit int) ([]types.ComponentCandidate, error) {
	var out []types.ComponentCandidate
	for _, c := range s.store.components {
		if matchesFilter(c, f) {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s memorySession) FindByCategory(ctx context.Context, category string, limit int) ([]types.ComponentCandidate, error) {
	var out []types.ComponentCandidate
	for _, c := range s.store.components {
		if c.Category == category {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// matchesFilter applies the filter semantics: exact match for voltage, cores
// and cross-section, case-insensitive substring for the text fields. A
// candidate missing a filtered field does not match.
func matchesFilter(c types.ComponentCandidate, f Filter) bool {
	if f.VoltageKV != nil && (c.VoltageKV == nil || *c.VoltageKV != *f.VoltageKV) {
		return false
	}
	if f.CrossSectionMM2 != nil && (c.CrossSectionMM2 == nil || *c.CrossSectionMM2 != *f.CrossSectionMM2) {
		return false
	}
	if f.Cores != nil && (c.Cores == nil || *c.Cores != *f.Cores) {
		return false
	}
	if !substringMatch(c.Conductor, f.Conductor) {
		return false
	}
	if !substringMatch(c.Insulation, f.Insulation) {
		return false
	}
	if !substringMatch(c.Armour, f.Armour) {
		return false
	}
	return true
}

func substringMatch(have, want *string) bool {
	if want == nil {
		return true
	}
	if have == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*have), strings.ToLower(*want))
}
