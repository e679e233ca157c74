package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-address-service/internal/domain/entity"
	"github.com/oksasatya/user-address-service/internal/domain/repository"
	"github.com/oksasatya/user-address-service/pkg/helpers"
)

// ExportService runs fire-and-forget user exports. Enqueue returns as soon as
// the job is registered; the export goroutine owns all subsequent transitions
// of its registry entry. Cancellation is not supported: an enqueued job always
// reaches a terminal state.
type ExportService struct {
	Users    repository.UserRepository
	Registry *JobRegistry
	Logger   *logrus.Logger

	// Optional collaborators; nil disables the corresponding step.
	GCS       *storage.Client
	GCSBucket string
	Rabbit    *helpers.RabbitPublisher

	// Delay simulates the I/O time of building the export.
	Delay time.Duration
}

func NewExportService(users repository.UserRepository, reg *JobRegistry, logger *logrus.Logger, gcs *storage.Client, gcsBucket string, rabbit *helpers.RabbitPublisher, delay time.Duration) *ExportService {
	return &ExportService{
		Users:     users,
		Registry:  reg,
		Logger:    logger,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Rabbit:    rabbit,
		Delay:     delay,
	}
}

// Enqueue validates the user, registers a pending job, and schedules the
// export in the background. It never blocks on the export itself.
func (s *ExportService) Enqueue(ctx context.Context, userID string) (entity.Job, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Job{}, ErrUserNotFound
		}
		return entity.Job{}, err
	}
	job := s.Registry.Add(userID)
	go s.run(job.ID, userID)
	return job, nil
}

// GetStatus returns a snapshot of the job or ErrJobNotFound. A restart loses
// all registry state, so ids from a previous process also report not found.
func (s *ExportService) GetStatus(jobID string) (entity.Job, error) {
	j, ok := s.Registry.Get(jobID)
	if !ok {
		return entity.Job{}, ErrJobNotFound
	}
	return j, nil
}

// run executes one export from running to a terminal state. It is detached
// from the request that enqueued it, so it carries its own context.
func (s *ExportService) run(jobID, userID string) {
	defer func() {
		if rec := recover(); rec != nil {
			s.Logger.WithFields(logrus.Fields{"job_id": jobID, "panic": rec}).Error("export job panicked")
			s.Registry.Fail(jobID, fmt.Sprintf("export panicked: %v", rec))
		}
	}()

	ctx := context.Background()
	s.Registry.MarkRunning(jobID)

	// Simulated export I/O.
	time.Sleep(s.Delay)

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		s.Logger.WithError(err).WithField("job_id", jobID).Warn("export job lost its user")
		s.Registry.Fail(jobID, "user no longer exists")
		return
	}

	result := entity.ExportResult{UserExportURL: "/users/" + u.ID}
	if url, upErr := s.uploadArtifact(ctx, jobID, u); upErr != nil {
		s.Logger.WithError(upErr).WithField("job_id", jobID).Warn("export artifact upload failed")
	} else if url != "" {
		result.UserExportURL = url
	}

	s.publishCompleted(ctx, jobID, u.ID)
	s.Registry.Complete(jobID, result)
}

type exportDocument struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	ExportedAt time.Time `json:"exported_at"`
}

// uploadArtifact writes the export JSON to GCS when configured. Returns the
// object URL, or "" when uploads are disabled.
func (s *ExportService) uploadArtifact(ctx context.Context, jobID string, u *entity.User) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", nil
	}
	doc := exportDocument{
		UserID:     u.ID,
		Email:      u.Email,
		Username:   u.Username,
		FullName:   u.FullName,
		AvatarURL:  u.AvatarURL,
		Phone:      u.Phone,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
		ExportedAt: time.Now().UTC(),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	objectPath := fmt.Sprintf("exports/%s/%s.json", u.ID, jobID)
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, "application/json", bytes.NewReader(b))
}

type exportCompletedEvent struct {
	JobID       string    `json:"job_id"`
	UserID      string    `json:"user_id"`
	CompletedAt time.Time `json:"completed_at"`
}

func (s *ExportService) publishCompleted(ctx context.Context, jobID, userID string) {
	if s.Rabbit == nil {
		return
	}
	evt := exportCompletedEvent{JobID: jobID, UserID: userID, CompletedAt: time.Now().UTC()}
	if err := s.Rabbit.PublishJSON(ctx, evt); err != nil {
		s.Logger.WithError(err).WithField("job_id", jobID).Warn("publish export event failed")
	}
}
