package application

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/user-address-service/internal/domain/entity"
)

// JobRegistry tracks asynchronous export jobs for the lifetime of the
// process. Entries are never evicted and are lost on restart; job state is
// deliberately not persisted.
//
// Each entry has exactly one writer (its export goroutine) and any number of
// concurrent readers. Jobs are stored and returned by value so a transition
// is observed whole: a poller can never see a completed status without its
// result, or a failed status without its error.
type JobRegistry struct {
	mu   sync.RWMutex
	jobs map[string]entity.Job
}

func NewJobRegistry() *JobRegistry {
	return &JobRegistry{jobs: make(map[string]entity.Job)}
}

// Add mints a fresh job in the pending state and returns a snapshot of it.
func (r *JobRegistry) Add(userID string) entity.Job {
	now := time.Now().UTC()
	j := entity.Job{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    entity.JobPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.mu.Lock()
	r.jobs[j.ID] = j
	r.mu.Unlock()
	return j
}

// Get returns a snapshot of the job, if known.
func (r *JobRegistry) Get(id string) (entity.Job, bool) {
	r.mu.RLock()
	j, ok := r.jobs[id]
	r.mu.RUnlock()
	return j, ok
}

// MarkRunning transitions a pending job to running.
func (r *JobRegistry) MarkRunning(id string) {
	r.transition(id, func(j *entity.Job) {
		j.Status = entity.JobRunning
	})
}

// Complete transitions a job to its completed terminal state with a result.
func (r *JobRegistry) Complete(id string, res entity.ExportResult) {
	r.transition(id, func(j *entity.Job) {
		j.Status = entity.JobCompleted
		j.Result = &res
	})
}

// Fail transitions a job to its failed terminal state with an error message.
func (r *JobRegistry) Fail(id string, msg string) {
	r.transition(id, func(j *entity.Job) {
		j.Status = entity.JobFailed
		j.Error = msg
	})
}

func (r *JobRegistry) transition(id string, mutate func(*entity.Job)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.Status.Terminal() {
		return
	}
	mutate(&j)
	j.UpdatedAt = time.Now().UTC()
	r.jobs[id] = j
}
