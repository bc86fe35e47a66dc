package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anprojects-core/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DBConnection represents a database connection
type DBConnection struct {
	DB     *gorm.DB
	Name   string
	DbURL  string
	Models []interface{}
}

// NewDBConnection creates a new database connection
func NewDBConnection(name, dbURL string) (*DBConnection, error) {
	if dbURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	// Configure GORM logger
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB for %s: %w", name, err)
	}

	// Serverless-sized pool; hosted Postgres tiers cap connections low
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	zap.L().Info("Connected to database", zap.String("name", name))

	var version string
	if err := sqlDB.QueryRow("SELECT version()").Scan(&version); err == nil {
		zap.L().Debug("Database version", zap.String("name", name), zap.String("version", version))
	}

	return &DBConnection{
		DB:     db,
		Name:   name,
		DbURL:  dbURL,
		Models: Models(),
	}, nil
}

// Models lists every table the server owns, in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.UserProfile{},
		&models.Project{},
		&models.ProjectAssignment{},
		&models.ProjectUnit{},
		&models.BudgetCategory{},
		&models.BudgetChapter{},
		&models.BudgetItem{},
		&models.BudgetPayment{},
		&models.ProjectMilestone{},
	}
}

// Migrate migrates the database schema
func (c *DBConnection) Migrate() error {
	zap.L().Info("Migrating database schema", zap.String("name", c.Name))
	if err := c.DB.AutoMigrate(c.Models...); err != nil {
		return fmt.Errorf("failed to migrate %s database: %w", c.Name, err)
	}
	zap.L().Info("Database schema migrated", zap.String("name", c.Name))
	return nil
}

// Close releases the underlying connection pool
func (c *DBConnection) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Import copies records into their table. Rows whose primary key already
// exists are left untouched, so running it twice is harmless.
func Import[T any](c *DBConnection, table string, records []T) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	result := c.DB.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(records, 100)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to import %s: %w", table, result.Error)
	}
	zap.L().Info("Imported records", zap.String("table", table), zap.Int64("rows", result.RowsAffected))
	return result.RowsAffected, nil
}
