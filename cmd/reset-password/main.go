package main

import (
	"context"
	"flag"
	"log"

	"go-retail-backoffice/internal/config"
	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/pkg/database"
	"go-retail-backoffice/pkg/hashing"

	"github.com/joho/godotenv"
)

// Operator CLI: reset a user's password without going through the API.
func main() {
	username := flag.String("username", "admin", "username of the account to reset")
	password := flag.String("password", "admin123", "new password to set")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Setup Database
	db := database.ConnectDB(cfg.Database.DSN())

	// 3. Find User
	var user model.User
	if err := db.Where("username = ?", *username).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", *username, err)
	}

	// 4. Hash new password
	hasher := hashing.NewBcryptHasher(0)
	hashed, err := hasher.Hash(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&user).Update("password", hashed).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Success! Password for %s has been reset", *username)
}
