package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-address-service/internal/domain/entity"
	"github.com/oksasatya/user-address-service/internal/domain/repository"
	"github.com/oksasatya/user-address-service/pkg/helpers"
	"github.com/oksasatya/user-address-service/pkg/mailer"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrPreconditionFailed = errors.New("etag precondition failed")
)

// UserService orchestrates user CRUD plus the optimistic-concurrency checks
// on the user resource. Elasticsearch and RabbitMQ are optional collaborators
// and are skipped when nil.
type UserService struct {
	Repo         repository.UserRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	Emails       *helpers.RabbitPublisher
}

func NewUserService(repo repository.UserRepository, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string, emails *helpers.RabbitPublisher) *UserService {
	return &UserService{
		Repo:         repo,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Emails:       emails,
	}
}

type CreateUserInput struct {
	Email     string
	Username  string
	Password  string
	FullName  string
	AvatarURL string
	Phone     string
}

// Create hashes the password and inserts the user. Uniqueness violations
// surface as repository.ErrConflict.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		FullName:     in.FullName,
		AvatarURL:    in.AvatarURL,
		Phone:        in.Phone,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.sendWelcomeEmail(ctx, u)
	_ = s.indexUser(ctx, u)
	return u, nil
}

// Get loads a user and computes its current concurrency token.
func (s *UserService) Get(ctx context.Context, id string) (*entity.User, string, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	return u, helpers.UserETag(u.ID, u.UpdatedAt), nil
}

func (s *UserService) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	return s.Repo.List(ctx, f)
}

// Update applies a partial replace guarded by an optional If-Match token.
// A stale token fails with ErrPreconditionFailed before any write. An empty
// patch is a no-op that returns the current state and token unchanged.
func (s *UserService) Update(ctx context.Context, id string, p repository.UserPatch, ifMatch string) (*entity.User, string, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	currentTag := helpers.UserETag(current.ID, current.UpdatedAt)
	if ifMatch != "" && !helpers.ETagMatch(ifMatch, currentTag) {
		return nil, "", ErrPreconditionFailed
	}
	if p.Empty() {
		return current, currentTag, nil
	}

	updated, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	_ = s.indexUser(ctx, updated)
	return updated, helpers.UserETag(updated.ID, updated.UpdatedAt), nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.removeFromIndex(ctx, id)
	return nil
}

func (s *UserService) sendWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Emails == nil {
		return
	}
	job := mailer.WelcomeEmail(u.Email, u.Username)
	if err := s.Emails.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"username":   u.Username,
		"full_name":  u.FullName,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

func (s *UserService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// SearchUsers performs a simple multi_match search on email, username and full name.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "username^2", "full_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
