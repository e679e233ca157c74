package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/user-address-service/internal/domain/entity"
	"github.com/oksasatya/user-address-service/internal/domain/repository"
)

const addressColumns = `id, user_id, country, city, street, COALESCE(postal_code, ''), created_at`

type AddressRepository struct {
	db Querier
}

func NewAddressRepository(db Querier) *AddressRepository {
	return &AddressRepository{db: db}
}

func scanAddress(row pgx.Row) (*entity.Address, error) {
	a := &entity.Address{}
	if err := row.Scan(&a.ID, &a.UserID, &a.Country, &a.City, &a.Street,
		&a.PostalCode, &a.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return a, nil
}

func (r *AddressRepository) Create(ctx context.Context, a *entity.Address) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO addresses (id, user_id, country, city, street, postal_code)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING created_at
	`, a.ID, a.UserID, a.Country, a.City, a.Street, a.PostalCode)

	if err := row.Scan(&a.CreatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *AddressRepository) GetByID(ctx context.Context, id string) (*entity.Address, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE id = $1
	`, id)
	return scanAddress(row)
}

func (r *AddressRepository) List(ctx context.Context, f repository.AddressFilter) ([]*entity.Address, error) {
	var (
		conds []string
		args  []any
	)
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.City != "" {
		args = append(args, "%"+f.City+"%")
		conds = append(conds, fmt.Sprintf("city ILIKE $%d", len(args)))
	}
	if f.PostalCode != "" {
		args = append(args, f.PostalCode)
		conds = append(conds, fmt.Sprintf("postal_code = $%d", len(args)))
	}

	sql := `SELECT ` + addressColumns + ` FROM addresses`
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	sql += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	addrs := make([]*entity.Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, mapPgError(rows.Err())
}

func (r *AddressRepository) Update(ctx context.Context, id string, p repository.AddressPatch) (*entity.Address, error) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v *string) {
		if v != nil {
			args = append(args, *v)
			sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
		}
	}
	add("country", p.Country)
	add("city", p.City)
	add("street", p.Street)
	if p.PostalCode != nil {
		args = append(args, *p.PostalCode)
		sets = append(sets, fmt.Sprintf("postal_code = NULLIF($%d, '')", len(args)))
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	sql := fmt.Sprintf(`
		UPDATE addresses
		SET %s
		WHERE id = $%d
		RETURNING `+addressColumns, strings.Join(sets, ", "), len(args))

	return scanAddress(r.db.QueryRow(ctx, sql, args...))
}

func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AddressRepository = (*AddressRepository)(nil)
