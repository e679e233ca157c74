package entity

import "time"

// JobStatus is the lifecycle state of an asynchronous export job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// ExportResult is the payload attached to a completed export job.
type ExportResult struct {
	UserExportURL string `json:"user_export_url"`
}

// Job tracks one asynchronous user export. Result is non-nil if and only if
// Status is JobCompleted; Error is non-empty if and only if Status is JobFailed.
type Job struct {
	ID        string
	UserID    string
	Status    JobStatus
	Result    *ExportResult
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
