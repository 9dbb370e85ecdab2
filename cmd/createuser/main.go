// Command createuser adds a staff account that can sign in to VIP CRM.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vipcrm/vipcrm/db"
	"github.com/vipcrm/vipcrm/internal/auth"
	"github.com/vipcrm/vipcrm/internal/config"
	"github.com/vipcrm/vipcrm/internal/models"
	"gorm.io/gorm"
)

type options struct {
	Username string
	Email    string
	FullName string
	Password string
	Staff    bool
	Role     string
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("createuser", flag.ContinueOnError)
	fs.StringVar(&opts.Username, "username", "", "login name (required)")
	fs.StringVar(&opts.Email, "email", "", "email address (required)")
	fs.StringVar(&opts.FullName, "full-name", "", "display name")
	fs.StringVar(&opts.Password, "password", "", "initial password (required)")
	fs.BoolVar(&opts.Staff, "staff", false, "mark the account as staff")
	fs.StringVar(&opts.Role, "role", "", "role name, created if it does not exist")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.Username = strings.TrimSpace(opts.Username)
	opts.Email = strings.ToLower(strings.TrimSpace(opts.Email))
	opts.FullName = strings.TrimSpace(opts.FullName)
	opts.Role = strings.TrimSpace(opts.Role)

	if opts.Username == "" || opts.Email == "" || opts.Password == "" {
		return opts, errors.New("-username, -email and -password are required")
	}

	return opts, nil
}

func createUser(conn *gorm.DB, opts options) (models.User, error) {
	hash, err := auth.HashPassword(opts.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:     opts.Username,
		Email:        opts.Email,
		FullName:     opts.FullName,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      opts.Staff,
	}

	err = conn.Transaction(func(tx *gorm.DB) error {
		if opts.Role != "" {
			var role models.Role
			if err := tx.Where(models.Role{Name: opts.Role}).FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("failed to resolve role %q: %w", opts.Role, err)
			}
			user.RoleID = &role.ID
		}

		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %q: %w", opts.Username, err)
		}

		return nil
	})

	return user, err
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.NewConfig()

	if err := db.ConnectDatabase(cfg.Database.URL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	user, err := createUser(db.DB, opts)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Created user %s (id %d)", user.Username, user.ID)
}
