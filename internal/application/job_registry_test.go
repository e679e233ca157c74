package application

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-address-service/internal/domain/entity"
)

func TestJobRegistryLifecycle(t *testing.T) {
	reg := NewJobRegistry()

	job := reg.Add("user-1")
	require.NotEmpty(t, job.ID)
	assert.Equal(t, entity.JobPending, job.Status)
	assert.Nil(t, job.Result)

	reg.MarkRunning(job.ID)
	got, ok := reg.Get(job.ID)
	require.True(t, ok)
	assert.Equal(t, entity.JobRunning, got.Status)

	reg.Complete(job.ID, entity.ExportResult{UserExportURL: "/users/user-1"})
	got, ok = reg.Get(job.ID)
	require.True(t, ok)
	assert.Equal(t, entity.JobCompleted, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, "/users/user-1", got.Result.UserExportURL)
}

func TestJobRegistryUnknownID(t *testing.T) {
	reg := NewJobRegistry()

	_, ok := reg.Get("nope")
	assert.False(t, ok)

	// Transitions on unknown ids are ignored, not invented.
	reg.MarkRunning("nope")
	reg.Complete("nope", entity.ExportResult{})
	_, ok = reg.Get("nope")
	assert.False(t, ok)
}

func TestJobRegistryTerminalStatesAreFinal(t *testing.T) {
	reg := NewJobRegistry()

	job := reg.Add("user-1")
	reg.Complete(job.ID, entity.ExportResult{UserExportURL: "/users/user-1"})
	reg.Fail(job.ID, "too late")

	got, ok := reg.Get(job.ID)
	require.True(t, ok)
	assert.Equal(t, entity.JobCompleted, got.Status)
	assert.Empty(t, got.Error)

	failed := reg.Add("user-2")
	reg.Fail(failed.ID, "exploded")
	reg.Complete(failed.ID, entity.ExportResult{UserExportURL: "/users/user-2"})

	got, ok = reg.Get(failed.ID)
	require.True(t, ok)
	assert.Equal(t, entity.JobFailed, got.Status)
	assert.Equal(t, "exploded", got.Error)
	assert.Nil(t, got.Result)
}

// Readers racing the single writer must never observe a completed status
// without its result.
func TestJobRegistrySnapshotsAreNotTorn(t *testing.T) {
	reg := NewJobRegistry()
	job := reg.Add("user-1")

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap, ok := reg.Get(job.ID)
				if !ok {
					continue
				}
				if snap.Status == entity.JobCompleted && snap.Result == nil {
					t.Error("observed completed job without result")
					return
				}
				if snap.Result != nil && snap.Status != entity.JobCompleted {
					t.Error("observed result before completion")
					return
				}
			}
		}()
	}

	reg.MarkRunning(job.ID)
	reg.Complete(job.ID, entity.ExportResult{UserExportURL: "/users/user-1"})
	close(stop)
	wg.Wait()
}
