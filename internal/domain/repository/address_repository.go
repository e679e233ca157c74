package repository

import (
	"context"

	"github.com/oksasatya/user-address-service/internal/domain/entity"
)

// AddressFilter narrows List results. UserID and PostalCode match exactly,
// City is a substring match.
type AddressFilter struct {
	UserID     string
	City       string
	PostalCode string
	Limit      int
	Offset     int
}

// AddressPatch carries the fields of a partial update; nil means "leave as is".
type AddressPatch struct {
	Country    *string
	City       *string
	Street     *string
	PostalCode *string
}

// Empty reports whether the patch would modify nothing.
func (p AddressPatch) Empty() bool {
	return p.Country == nil && p.City == nil && p.Street == nil && p.PostalCode == nil
}

// AddressRepository defines the interface for address-related database operations.
type AddressRepository interface {
	Create(ctx context.Context, a *entity.Address) error
	GetByID(ctx context.Context, id string) (*entity.Address, error)
	List(ctx context.Context, f AddressFilter) ([]*entity.Address, error)
	Update(ctx context.Context, id string, p AddressPatch) (*entity.Address, error)
	Delete(ctx context.Context, id string) error
}
