package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/rizkypratama/go-blog-api/config"
	"github.com/rizkypratama/go-blog-api/pkg/helpers"
)

// Accounts are provisioned out-of-band; this is the band.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	username := flag.String("username", "alice", "username for the seeded account")
	email := flag.String("email", "", "optional email for login notifications")
	password := flag.String("password", "secret", "plaintext password to hash")
	flag.Parse()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email, password_hash = EXCLUDED.password_hash
		RETURNING id
	`, *username, *email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=%s\n", id, *username)
}
