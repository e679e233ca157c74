package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/user-address-service/config"
	"github.com/oksasatya/user-address-service/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "alice@example.com"
	username := "alice_shop"
	password := "S3cureP@ssw0rd"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (id, email, username, password_hash, full_name, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, uuid.NewString(), email, username, hash, "Alice Zhou", "+1-215-000-0000").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", userID, email, username, password)

	var addrID string
	err = db.QueryRow(`
		INSERT INTO addresses (id, user_id, country, city, street, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, uuid.NewString(), userID, "US", "Philadelphia", "123 Main St Apt 4B", "19104").Scan(&addrID)
	if err != nil {
		log.Fatalf("failed to seed address: %v", err)
	}
	fmt.Printf("seeded address: id=%s user_id=%s\n", addrID, userID)
}
