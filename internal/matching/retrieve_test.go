package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A3V1/B2B-RFP/internal/catalog"
	"github.com/A3V1/B2B-RFP/internal/types"
)

func testSession(t *testing.T, components []types.ComponentCandidate) catalog.Session {
	t.Helper()
	session, err := catalog.NewMemoryStore(components).Acquire(context.Background())
	require.NoError(t, err)
	return session
}

func TestRetrieveCandidatesStrictTier(t *testing.T) {
	components := []types.ComponentCandidate{
		{ID: 1, Category: CategoryLT, VoltageKV: fptr(1.1), Conductor: sptr("Aluminium"), CrossSectionMM2: fptr(95)},
		{ID: 2, Category: CategoryLT, VoltageKV: fptr(1.1), Conductor: sptr("Copper"), CrossSectionMM2: fptr(95)},
	}
	session := testSession(t, components)
	defer session.Release()

	specs := types.Specifications{
		VoltageKV:       fptr(1.1),
		Conductor:       sptr("Aluminium"),
		CrossSectionMM2: fptr(95),
	}

	candidates, err := RetrieveCandidates(context.Background(), session, specs)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(1), candidates[0].ID)
}

func TestRetrieveCandidatesRelaxesToVoltageAndCrossSection(t *testing.T) {
	// No candidate carries the requested conductor, so the strict tier comes
	// up empty and the relaxed tier matches on voltage and cross-section.
	components := []types.ComponentCandidate{
		{ID: 1, Category: CategoryHT, VoltageKV: fptr(11), Conductor: sptr("Aluminium"), CrossSectionMM2: fptr(95)},
	}
	session := testSession(t, components)
	defer session.Release()

	specs := types.Specifications{
		VoltageKV:       fptr(11),
		Conductor:       sptr("Copper"),
		CrossSectionMM2: fptr(95),
	}

	candidates, err := RetrieveCandidates(context.Background(), session, specs)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(1), candidates[0].ID)
}

func TestRetrieveCandidatesFallsBackToCategory(t *testing.T) {
	// Nothing matches voltage 11 exactly, but HT components exist.
	components := []types.ComponentCandidate{
		{ID: 1, Category: CategoryHT, VoltageKV: fptr(33)},
		{ID: 2, Category: CategoryLT, VoltageKV: fptr(1.1)},
	}
	session := testSession(t, components)
	defer session.Release()

	specs := types.Specifications{VoltageKV: fptr(11), CrossSectionMM2: fptr(400)}

	candidates, err := RetrieveCandidates(context.Background(), session, specs)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(1), candidates[0].ID)
}

func TestRetrieveCandidatesNoVoltageNoCategoryFallback(t *testing.T) {
	components := []types.ComponentCandidate{
		{ID: 1, Category: CategoryLT, VoltageKV: fptr(1.1)},
	}
	session := testSession(t, components)
	defer session.Release()

	// A conductor-only requirement that matches nothing cannot derive a
	// category and must come back empty.
	specs := types.Specifications{Conductor: sptr("Silver")}

	candidates, err := RetrieveCandidates(context.Background(), session, specs)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRetrieveCandidatesEmptySpecs(t *testing.T) {
	session := testSession(t, []types.ComponentCandidate{{ID: 1, Category: CategoryLT}})
	defer session.Release()

	candidates, err := RetrieveCandidates(context.Background(), session, types.Specifications{})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRetrieveCandidatesStrictCap(t *testing.T) {
	var components []types.ComponentCandidate
	for i := int64(1); i <= 15; i++ {
		components = append(components, types.ComponentCandidate{
			ID: i, Category: CategoryLT, VoltageKV: fptr(1.1),
		})
	}
	session := testSession(t, components)
	defer session.Release()

	candidates, err := RetrieveCandidates(context.Background(), session, types.Specifications{VoltageKV: fptr(1.1)})
	require.NoError(t, err)
	assert.Len(t, candidates, strictLimit)
}

func TestCategoryForVoltage(t *testing.T) {
	tests := []struct {
		kv   float64
		want string
	}{
		{0.415, CategoryLT},
		{1.1, CategoryLT},
		{3.3, CategoryHT},
		{11, CategoryHT},
		{33, CategoryHT},
		{66, CategoryEHV},
		{220, CategoryEHV},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryForVoltage(tt.kv), "%.3f kV", tt.kv)
	}
}
