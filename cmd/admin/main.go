package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"sira/backend/internal/config"
	"sira/backend/internal/models"
	"sira/backend/internal/storage"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  admin promote <email>        — grant admin role to an account")
	fmt.Println("  admin demote <email>         — revert an account to the user role")
	fmt.Println("  admin resolve-report <id>    — mark a report as resolved")
	fmt.Println("  admin purge-users            — delete every account")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	store, err := storage.NewService(cfg.MongoURI, cfg.MongoDB, nil)
	if err != nil {
		log.Fatalf("Failed to connect MongoDB: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "promote":
		if len(os.Args) < 3 {
			usage()
		}
		setRole(ctx, store, os.Args[2], models.RoleAdmin)
	case "demote":
		if len(os.Args) < 3 {
			usage()
		}
		setRole(ctx, store, os.Args[2], models.RoleUser)
	case "resolve-report":
		if len(os.Args) < 3 {
			usage()
		}
		resolveReport(ctx, store, os.Args[2])
	case "purge-users":
		purgeUsers(ctx, store)
	default:
		usage()
	}
}

func setRole(ctx context.Context, store *storage.Service, email string, role models.Role) {
	user, err := store.GetUserByEmail(ctx, email)
	if err != nil {
		log.Fatalf("Failed to look up user %s: %v", email, err)
	}
	if err := store.UpdateUserFields(ctx, user.ID, map[string]interface{}{"role": role}); err != nil {
		log.Fatalf("Failed to update role: %v", err)
	}
	fmt.Printf("User %s is now %s\n", email, role)
}

func resolveReport(ctx context.Context, store *storage.Service, id string) {
	if err := store.UpdateReportFields(ctx, id, map[string]interface{}{"status": models.ReportStatusResolved}); err != nil {
		log.Fatalf("Failed to resolve report %s: %v", id, err)
	}
	fmt.Printf("Report %s resolved\n", id)
}

func purgeUsers(ctx context.Context, store *storage.Service) {
	count, err := store.DeleteAllUsers(ctx)
	if err != nil {
		log.Fatalf("Failed to purge users: %v", err)
	}
	fmt.Printf("Deleted %d users\n", count)
}
