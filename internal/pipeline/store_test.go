package pipeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A3V1/B2B-RFP/internal/types"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()
	store.Create("run-1")

	run, err := store.Get("run-1")
	require.NoError(t, err)
	assert.Equal(t, types.StatusRunning, run.Status)
	assert.Nil(t, run.Result)

	store.Complete("run-1", types.RunResult{ID: "run-1", Status: types.StatusCompleted, OverallScore: 80})

	run, err = store.Get("run-1")
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, run.Status)
	require.NotNil(t, run.Result)
	assert.Equal(t, 80.0, run.Result.OverallScore)

	require.NoError(t, store.Delete("run-1"))
	_, err = store.Get("run-1")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestStoreUnknownRun(t *testing.T) {
	store := NewStore()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, store.Delete("missing"), ErrRunNotFound)
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runID := string(rune('a' + id%26))
			store.Create(runID)
			store.Complete(runID, types.RunResult{ID: runID, Status: types.StatusCompleted})
			_, _ = store.Get(runID)
		}(i)
	}
	wg.Wait()
}
