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

const amenityCols = `id, name, created_at, updated_at`

type AmenityStore struct {
	pool *pgxpool.Pool
}

func NewAmenityStore(pool *pgxpool.Pool) *AmenityStore {
	return &AmenityStore{pool: pool}
}

var amenityFields = map[string]string{
	"name": "name",
}

func scanAmenity(row pgx.Row) (*entity.Amenity, error) {
	a := &entity.Amenity{}
	err := row.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AmenityStore) Add(ctx context.Context, a *entity.Amenity) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO amenities (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, a.ID, a.Name, a.CreatedAt, a.UpdatedAt)
	return err
}

func (s *AmenityStore) Get(ctx context.Context, id string) (*entity.Amenity, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+amenityCols+` FROM amenities WHERE id = $1`, id)
	return scanAmenity(row)
}

func (s *AmenityStore) GetAll(ctx context.Context) ([]*entity.Amenity, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+amenityCols+` FROM amenities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Amenity
	for rows.Next() {
		a, err := scanAmenity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *AmenityStore) Update(ctx context.Context, id string, fields map[string]any) (*entity.Amenity, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Apply(fields); err != nil {
		return nil, err
	}
	res, err := s.pool.Exec(ctx, `
		UPDATE amenities SET name = $1, updated_at = $2 WHERE id = $3
	`, a.Name, a.UpdatedAt, a.ID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (s *AmenityStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM amenities WHERE id = $1`, id)
	return err
}

func (s *AmenityStore) FindByField(ctx context.Context, field string, value any) (*entity.Amenity, error) {
	col, ok := amenityFields[field]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM amenities WHERE %s = $1 LIMIT 1`, amenityCols, col), value)
	return scanAmenity(row)
}

func (s *AmenityStore) FindAllByField(ctx context.Context, field string, value any) ([]*entity.Amenity, error) {
	col, ok := amenityFields[field]
	if !ok {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM amenities WHERE %s = $1`, amenityCols, col), value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Amenity
	for rows.Next() {
		a, err := scanAmenity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ repository.Store[*entity.Amenity] = (*AmenityStore)(nil)
