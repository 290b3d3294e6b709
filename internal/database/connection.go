// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/podworks/pod-backend/internal/config"
	"github.com/podworks/pod-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

// ForceReset drops every pipeline table. Only reachable outside production
// via the FORCE_RESET flag.
func ForceReset(db *gorm.DB) error {
	log.Println("FORCE_RESET set, dropping all tables...")

	return db.Migrator().DropTable(
		&models.AnalyticsDaily{},
		&models.Order{},
		&models.ProductFeedback{},
		&models.PlatformListing{},
		&models.Product{},
		&models.Artwork{},
		&models.Keyword{},
		&models.PODProvider{},
	)
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.Keyword{},
		&models.Artwork{},
		&models.Product{},
		&models.PlatformListing{},
		&models.ProductFeedback{},
		&models.Order{},
		&models.AnalyticsDaily{},
		&models.PODProvider{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := migrateLegacyStatuses(db); err != nil {
		return fmt.Errorf("failed to migrate legacy statuses: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// migrateLegacyStatuses folds free-text status values left behind by older
// schema scripts into the canonical enumeration. Earlier revisions used
// 'pending' for freshly assembled products and 'uploaded' for listed ones.
func migrateLegacyStatuses(db *gorm.DB) error {
	legacy := map[string]models.ProductStatus{
		"pending":  models.ProductStatusPendingApproval,
		"uploaded": models.ProductStatusActive,
		"inactive": models.ProductStatusPaused,
	}

	for old, canonical := range legacy {
		if err := db.Model(&models.Product{}).
			Where("status = ?", old).
			Update("status", canonical).Error; err != nil {
			return err
		}
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Keyword indexes
		"CREATE INDEX IF NOT EXISTS idx_keywords_volume ON keywords(search_volume DESC)",
		"CREATE INDEX IF NOT EXISTS idx_keywords_status_score ON keywords(status, trend_score DESC)",

		// Artwork indexes
		"CREATE INDEX IF NOT EXISTS idx_artworks_keyword_style ON artworks(keyword_id, style)",
		"CREATE INDEX IF NOT EXISTS idx_artworks_created_at ON artworks(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_status_updated ON products(status, updated_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_category_status ON products(category, status)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_platform_status ON orders(platform, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Feedback indexes
		"CREATE INDEX IF NOT EXISTS idx_feedback_action_style ON product_feedbacks(action, style)",

		// Full-text search
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('english', title || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
