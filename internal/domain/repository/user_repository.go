package repository

import (
	"context"

	"github.com/oksasatya/user-address-service/internal/domain/entity"
)

// UserFilter narrows List results. Email matches exactly, Username is a
// substring match. Limit/Offset are assumed pre-clamped by the caller.
type UserFilter struct {
	Email    string
	Username string
	Limit    int
	Offset   int
}

// UserPatch carries the fields of a partial update; nil means "leave as is".
type UserPatch struct {
	Username  *string
	FullName  *string
	AvatarURL *string
	Phone     *string
}

// Empty reports whether the patch would modify nothing.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.FullName == nil && p.AvatarURL == nil && p.Phone == nil
}

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context, f UserFilter) ([]*entity.User, error)
	Update(ctx context.Context, id string, p UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
