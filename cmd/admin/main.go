// Package main provides account management utilities for the Ratil Group dashboard.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"ratil/internal/config"
	"ratil/internal/database"
	"ratil/internal/models"
	"ratil/internal/repository"
	"ratil/internal/service"

	"golang.org/x/crypto/bcrypt"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin list-users                        - List all dashboard accounts")
	fmt.Println("  go run ./cmd/admin reset-password <username> <pass>  - Set a new password without the current one")
	fmt.Println("  go run ./cmd/admin set-role <username> <role>        - Change an account's role")
	fmt.Println("  go run ./cmd/admin grant-portfolio <username>        - Allow portfolio access")
	fmt.Println("  go run ./cmd/admin revoke-portfolio <username>       - Remove portfolio access")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	repo := repository.NewUserRepository(db)
	users := service.NewUserService(repo)

	args := os.Args[2:]
	switch os.Args[1] {
	case "list-users":
		listUsers(ctx, users)

	case "reset-password":
		if len(args) < 2 {
			fmt.Println("Usage: go run ./cmd/admin reset-password <username> <password>")
			os.Exit(1)
		}
		resetPassword(ctx, repo, args[0], args[1])

	case "set-role":
		if len(args) < 2 {
			fmt.Println("Usage: go run ./cmd/admin set-role <username> <role>")
			os.Exit(1)
		}
		role := args[1]
		update(ctx, users, args[0], service.UpdateUserInput{Role: &role})

	case "grant-portfolio", "revoke-portfolio":
		if len(args) < 1 {
			fmt.Printf("Usage: go run ./cmd/admin %s <username>\n", os.Args[1])
			os.Exit(1)
		}
		access := os.Args[1] == "grant-portfolio"
		update(ctx, users, args[0], service.UpdateUserInput{CanAccessPortfolio: &access})

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func listUsers(ctx context.Context, users *service.UserService) {
	list, err := users.ListUsers(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch users: %v", err)
	}

	if len(list) == 0 {
		fmt.Println("No users found in the system")
		return
	}

	fmt.Println("\n📋 Dashboard Accounts:")
	fmt.Println("─────────────────────────────────────")
	for _, u := range list {
		fmt.Printf("ID: %d | Username: %s | Role: %s | Portfolio: %v\n", u.ID, u.Username, u.Role, u.CanAccessPortfolio)
	}
	fmt.Println("─────────────────────────────────────")
}

func resetPassword(ctx context.Context, repo repository.UserRepository, username, password string) {
	if password == "" {
		fmt.Println("Password must not be empty")
		os.Exit(1)
	}

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		fail(username, err)
	}

	hashed, err := service.HashPassword(password, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if err := repo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		fail(username, err)
	}

	fmt.Printf("✅ Password reset for %s (ID: %d)\n", user.Username, user.ID)
}

func update(ctx context.Context, users *service.UserService, username string, in service.UpdateUserInput) {
	user, err := users.UpdateUser(ctx, username, in)
	if err != nil {
		fail(username, err)
	}
	fmt.Printf("✅ Updated %s (ID: %d): role=%s portfolio=%v\n", user.Username, user.ID, user.Role, user.CanAccessPortfolio)
}

func fail(username string, err error) {
	if models.IsCode(err, models.CodeNotFound) {
		fmt.Printf("User %s not found\n", username)
		os.Exit(1)
	}
	log.Fatalf("Database error: %v", err)
}
