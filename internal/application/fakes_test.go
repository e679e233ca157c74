package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-address-service/internal/domain/entity"
	"github.com/oksasatya/user-address-service/internal/domain/repository"
)

// fakeUserRepo is an in-memory UserRepository honoring the uniqueness and
// not-found semantics of the Postgres implementation. Updates advance
// UpdatedAt by a full second so token changes are observable at the ETag's
// second resolution.
type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[string]*entity.User
	updateCalls int
	getErr      error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) || strings.EqualFold(existing.Username, u.Username) {
			return repository.ErrConflict
		}
	}
	now := time.Now().UTC().Truncate(time.Second)
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) List(_ context.Context, flt repository.UserFilter) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range f.users {
		if flt.Email != "" && !strings.EqualFold(u.Email, flt.Email) {
			continue
		}
		if flt.Username != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(flt.Username)) {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, id string, p repository.UserPatch) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	f.updateCalls++
	if p.Username != nil {
		for uid, existing := range f.users {
			if uid != id && strings.EqualFold(existing.Username, *p.Username) {
				return nil, repository.ErrConflict
			}
		}
		u.Username = *p.Username
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	u.UpdatedAt = u.UpdatedAt.Add(time.Second)
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(discard{})
	return logger
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
