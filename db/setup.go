package db

import (
	"context"
	"fmt"
	"time"

	"github.com/vipcrm/vipcrm/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.Role{},
		&models.User{},
		&models.Organization{},
		&models.VIPClient{},
		&models.Interaction{},
	}
}

func MigrateDatabase() error {
	for _, model := range Models() {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// Ping checks that the database answers within timeout.
func Ping(ctx context.Context, timeout time.Duration) error {
	if DB == nil {
		return fmt.Errorf("database not connected")
	}

	sqlDB, err := DB.DB()

	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
