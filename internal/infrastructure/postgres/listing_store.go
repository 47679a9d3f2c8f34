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

const listingCols = `id, title, description, price, latitude, longitude, owner_id, photo_url, created_at, updated_at`

// ListingStore also owns the place_amenity join table; amenity links
// are resolved here so callers see the same shape as the ephemeral
// backend.
type ListingStore struct {
	pool *pgxpool.Pool
}

func NewListingStore(pool *pgxpool.Pool) *ListingStore {
	return &ListingStore{pool: pool}
}

var listingFields = map[string]string{
	"owner_id": "owner_id",
	"title":    "title",
}

func scanListing(row pgx.Row) (*entity.Listing, error) {
	l := &entity.Listing{}
	err := row.Scan(&l.ID, &l.Title, &l.Description, &l.Price, &l.Latitude, &l.Longitude,
		&l.OwnerID, &l.PhotoURL, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *ListingStore) loadAmenities(ctx context.Context, l *entity.Listing) error {
	rows, err := s.pool.Query(ctx,
		`SELECT amenity_id FROM place_amenity WHERE place_id = $1 ORDER BY amenity_id`, l.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	l.AmenityIDs = nil
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		l.AmenityIDs = append(l.AmenityIDs, id)
	}
	return rows.Err()
}

func (s *ListingStore) saveAmenities(ctx context.Context, tx pgx.Tx, l *entity.Listing) error {
	if _, err := tx.Exec(ctx, `DELETE FROM place_amenity WHERE place_id = $1`, l.ID); err != nil {
		return err
	}
	for _, amenityID := range l.AmenityIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO place_amenity (place_id, amenity_id) VALUES ($1, $2)`, l.ID, amenityID); err != nil {
			return err
		}
	}
	return nil
}

func (s *ListingStore) Add(ctx context.Context, l *entity.Listing) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO places (id, title, description, price, latitude, longitude, owner_id, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, l.ID, l.Title, l.Description, l.Price, l.Latitude, l.Longitude, l.OwnerID, l.PhotoURL, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return err
	}
	if err := s.saveAmenities(ctx, tx, l); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *ListingStore) Get(ctx context.Context, id string) (*entity.Listing, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+listingCols+` FROM places WHERE id = $1`, id)
	l, err := scanListing(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadAmenities(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *ListingStore) GetAll(ctx context.Context) ([]*entity.Listing, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+listingCols+` FROM places ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, l := range out {
		if err := s.loadAmenities(ctx, l); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *ListingStore) Update(ctx context.Context, id string, fields map[string]any) (*entity.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := l.Apply(fields); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE places
		SET title = $1, description = $2, price = $3, latitude = $4, longitude = $5, photo_url = $6, updated_at = $7
		WHERE id = $8
	`, l.Title, l.Description, l.Price, l.Latitude, l.Longitude, l.PhotoURL, l.UpdatedAt, l.ID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	if _, changed := fields["amenities"]; changed {
		if err := s.saveAmenities(ctx, tx, l); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete cascades to reviews and join rows through the schema's
// foreign keys.
func (s *ListingStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	return err
}

func (s *ListingStore) FindByField(ctx context.Context, field string, value any) (*entity.Listing, error) {
	col, ok := listingFields[field]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM places WHERE %s = $1 LIMIT 1`, listingCols, col), value)
	l, err := scanListing(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadAmenities(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *ListingStore) FindAllByField(ctx context.Context, field string, value any) ([]*entity.Listing, error) {
	col, ok := listingFields[field]
	if !ok {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM places WHERE %s = $1`, listingCols, col), value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, l := range out {
		if err := s.loadAmenities(ctx, l); err != nil {
			return nil, err
		}
	}
	return out, nil
}

var _ repository.Store[*entity.Listing] = (*ListingStore)(nil)
