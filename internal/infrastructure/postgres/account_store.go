package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homecove/homecove/internal/domain/entity"
	"github.com/homecove/homecove/internal/domain/repository"
)

const accountCols = `id, first_name, last_name, email, is_admin, password_hash, created_at, updated_at`

type AccountStore struct {
	pool *pgxpool.Pool
}

func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

// accountFields whitelists the columns FindByField may filter on.
var accountFields = map[string]string{
	"email":    "email",
	"is_admin": "is_admin",
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.IsAdmin,
		&a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AccountStore) Add(ctx context.Context, a *entity.Account) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO accounts (id, first_name, last_name, email, is_admin, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.FirstName, a.LastName, a.Email, a.IsAdmin, a.PasswordHash, a.CreatedAt, a.UpdatedAt)
	return err
}

func (s *AccountStore) Get(ctx context.Context, id string) (*entity.Account, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+accountCols+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (s *AccountStore) GetAll(ctx context.Context) ([]*entity.Account, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+accountCols+` FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update loads the row, applies the partial fields through the entity's
// own validation, then writes the full row back. The commit raises on
// the unique email index if two requests race past the facade's check.
func (s *AccountStore) Update(ctx context.Context, id string, fields map[string]any) (*entity.Account, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Apply(fields); err != nil {
		return nil, err
	}
	res, err := s.pool.Exec(ctx, `
		UPDATE accounts
		SET first_name = $1, last_name = $2, email = $3, is_admin = $4, password_hash = $5, updated_at = $6
		WHERE id = $7
	`, a.FirstName, a.LastName, a.Email, a.IsAdmin, a.PasswordHash, a.UpdatedAt, a.ID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (s *AccountStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return err
}

func (s *AccountStore) FindByField(ctx context.Context, field string, value any) (*entity.Account, error) {
	col, ok := accountFields[field]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM accounts WHERE %s = $1 LIMIT 1`, accountCols, col), value)
	return scanAccount(row)
}

func (s *AccountStore) FindAllByField(ctx context.Context, field string, value any) ([]*entity.Account, error) {
	col, ok := accountFields[field]
	if !ok {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM accounts WHERE %s = $1`, accountCols, col), value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ repository.Store[*entity.Account] = (*AccountStore)(nil)
