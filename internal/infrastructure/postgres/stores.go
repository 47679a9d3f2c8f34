package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homecove/homecove/internal/domain/repository"
)

// NewStores builds the complete durable backend over one pool.
func NewStores(pool *pgxpool.Pool) repository.Stores {
	return repository.Stores{
		Accounts:  NewAccountStore(pool),
		Listings:  NewListingStore(pool),
		Amenities: NewAmenityStore(pool),
		Reviews:   NewReviewStore(pool),
	}
}
