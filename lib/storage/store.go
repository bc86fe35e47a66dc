package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Storage keys, one JSON array per entity collection
const (
	KeyProjects         = "anprojects:projects"
	KeyBudgetItems      = "anprojects:budget_items"
	KeyBudgetPayments   = "anprojects:budget_payments"
	KeyBudgetChapters   = "anprojects:budget_chapters"
	KeyBudgetCategories = "anprojects:budget_categories"
	KeyMilestones       = "anprojects:milestones"
	KeyUnits            = "anprojects:units"
)

// Supported store drivers
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name
var ErrUnknownDriver = errors.New("unknown store driver")

// Store is a flat string key-value store. Implementations report failures;
// deciding to absorb them is left to Collection.
type Store interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Options selects and configures a store backend
type Options struct {
	// Driver is one of memory, file, sqlite, redis (default: file)
	Driver string
	// Path is the directory for the file driver or the database file for sqlite
	Path string
	// RedisAddr is host:port of the redis server
	RedisAddr string
	// RedisPassword is optional
	RedisPassword string
	// RedisDB selects the logical redis database
	RedisDB int
}

// Open creates the store described by options
func Open(ctx context.Context, options Options) (Store, error) {
	switch strings.ToLower(options.Driver) {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverFile, "":
		return NewFileStore(options.Path)
	case DriverSQLite:
		return NewSQLiteStore(options.Path)
	case DriverRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     options.RedisAddr,
			Password: options.RedisPassword,
			DB:       options.RedisDB,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, options.Driver)
	}
}
