package handlers

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-address-service/internal/domain/entity"
	"github.com/oksasatya/user-address-service/internal/domain/repository"
)

// In-memory repositories mirroring the Postgres semantics: citext-style
// uniqueness, not-found sentinels, and the addresses FK against users.
// Updates advance UpdatedAt by a full second so ETag changes are observable
// at the token's second resolution.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) || strings.EqualFold(existing.Username, u.Username) {
			return repository.ErrConflict
		}
	}
	now := time.Now().UTC().Truncate(time.Second)
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range m.users {
		if f.Email != "" && !strings.EqualFold(u.Email, f.Email) {
			continue
		}
		if f.Username != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(f.Username)) {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUserRepo) Update(_ context.Context, id string, p repository.UserPatch) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Username != nil {
		for uid, existing := range m.users {
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

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type memAddressRepo struct {
	mu    sync.Mutex
	addrs map[string]*entity.Address
	users *memUserRepo
}

func newMemAddressRepo(users *memUserRepo) *memAddressRepo {
	return &memAddressRepo{addrs: make(map[string]*entity.Address), users: users}
}

func (m *memAddressRepo) Create(ctx context.Context, a *entity.Address) error {
	if _, err := m.users.GetByID(ctx, a.UserID); err != nil {
		return repository.ErrInvalidReference
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a.CreatedAt = time.Now().UTC().Truncate(time.Second)
	cp := *a
	m.addrs[a.ID] = &cp
	return nil
}

func (m *memAddressRepo) GetByID(_ context.Context, id string) (*entity.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.addrs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAddressRepo) List(_ context.Context, f repository.AddressFilter) ([]*entity.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Address, 0)
	for _, a := range m.addrs {
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if f.City != "" && !strings.Contains(strings.ToLower(a.City), strings.ToLower(f.City)) {
			continue
		}
		if f.PostalCode != "" && a.PostalCode != f.PostalCode {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memAddressRepo) Update(_ context.Context, id string, p repository.AddressPatch) (*entity.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.addrs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Country != nil {
		a.Country = *p.Country
	}
	if p.City != nil {
		a.City = *p.City
	}
	if p.Street != nil {
		a.Street = *p.Street
	}
	if p.PostalCode != nil {
		a.PostalCode = *p.PostalCode
	}
	cp := *a
	return &cp, nil
}

func (m *memAddressRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.addrs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.addrs, id)
	return nil
}

var (
	_ repository.UserRepository    = (*memUserRepo)(nil)
	_ repository.AddressRepository = (*memAddressRepo)(nil)
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(discard{})
	return logger
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
