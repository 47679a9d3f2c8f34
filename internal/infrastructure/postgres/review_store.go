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

const reviewCols = `id, text, rating, place_id, user_id, created_at, updated_at`

type ReviewStore struct {
	pool *pgxpool.Pool
}

func NewReviewStore(pool *pgxpool.Pool) *ReviewStore {
	return &ReviewStore{pool: pool}
}

var reviewFields = map[string]string{
	"place_id": "place_id",
	"user_id":  "user_id",
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	r := &entity.Review{}
	err := row.Scan(&r.ID, &r.Text, &r.Rating, &r.ListingID, &r.AuthorID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *ReviewStore) Add(ctx context.Context, r *entity.Review) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO reviews (id, text, rating, place_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.ID, r.Text, r.Rating, r.ListingID, r.AuthorID, r.CreatedAt, r.UpdatedAt)
	return err
}

func (s *ReviewStore) Get(ctx context.Context, id string) (*entity.Review, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+reviewCols+` FROM reviews WHERE id = $1`, id)
	return scanReview(row)
}

func (s *ReviewStore) GetAll(ctx context.Context) ([]*entity.Review, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+reviewCols+` FROM reviews ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *ReviewStore) Update(ctx context.Context, id string, fields map[string]any) (*entity.Review, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.Apply(fields); err != nil {
		return nil, err
	}
	res, err := s.pool.Exec(ctx, `
		UPDATE reviews
		SET text = $1, rating = $2, place_id = $3, user_id = $4, updated_at = $5
		WHERE id = $6
	`, r.Text, r.Rating, r.ListingID, r.AuthorID, r.UpdatedAt, r.ID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	return r, nil
}

func (s *ReviewStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}

func (s *ReviewStore) FindByField(ctx context.Context, field string, value any) (*entity.Review, error) {
	col, ok := reviewFields[field]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM reviews WHERE %s = $1 LIMIT 1`, reviewCols, col), value)
	return scanReview(row)
}

func (s *ReviewStore) FindAllByField(ctx context.Context, field string, value any) ([]*entity.Review, error) {
	col, ok := reviewFields[field]
	if !ok {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM reviews WHERE %s = $1 ORDER BY created_at`, reviewCols, col), value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

var _ repository.Store[*entity.Review] = (*ReviewStore)(nil)
