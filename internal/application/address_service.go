package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-address-service/internal/domain/entity"
	"github.com/oksasatya/user-address-service/internal/domain/repository"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressService orchestrates address CRUD. Referential integrity is enforced
// by the storage layer: creating an address for a missing user surfaces
// repository.ErrInvalidReference.
type AddressService struct {
	Repo   repository.AddressRepository
	Logger *logrus.Logger
}

func NewAddressService(repo repository.AddressRepository, logger *logrus.Logger) *AddressService {
	return &AddressService{Repo: repo, Logger: logger}
}

type CreateAddressInput struct {
	UserID     string
	Country    string
	City       string
	Street     string
	PostalCode string
}

func (s *AddressService) Create(ctx context.Context, in CreateAddressInput) (*entity.Address, error) {
	a := &entity.Address{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		Country:    in.Country,
		City:       in.City,
		Street:     in.Street,
		PostalCode: in.PostalCode,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AddressService) Get(ctx context.Context, id string) (*entity.Address, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AddressService) List(ctx context.Context, f repository.AddressFilter) ([]*entity.Address, error) {
	return s.Repo.List(ctx, f)
}

// Update applies a partial replace; an empty patch returns current state.
func (s *AddressService) Update(ctx context.Context, id string, p repository.AddressPatch) (*entity.Address, error) {
	a, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AddressService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	return nil
}
