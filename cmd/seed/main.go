// Command seed provisions the bootstrap admin account and a base set of
// amenities. Safe to run repeatedly.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/homecove/homecove/config"
	"github.com/homecove/homecove/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := getenv("SEED_ADMIN_EMAIL", "admin@homecove.io")
	password := getenv("SEED_ADMIN_PASSWORD", "admin1234")
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO accounts (id, first_name, last_name, email, password_hash, is_admin)
		VALUES ($1, 'Admin', 'HomeCove', $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_admin = TRUE, updated_at = now()
		RETURNING id
	`, uuid.NewString(), email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", id, email)

	for _, name := range []string{"WiFi", "Air Conditioning", "Swimming Pool", "Parking", "Kitchen"} {
		if _, err := db.Exec(`
			INSERT INTO amenities (id, name) VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, uuid.NewString(), name); err != nil {
			log.Fatalf("failed to seed amenity %q: %v", name, err)
		}
	}
	fmt.Println("base amenities ensured")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
