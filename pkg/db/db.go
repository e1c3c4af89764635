package db

import (
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Backend identifies the database family a connection URL points at
type Backend int

const (
	BackendUnknown Backend = iota
	BackendMongo
	BackendPostgres
	BackendSQLite
)

func (b Backend) String() string {
	switch b {
	case BackendMongo:
		return "mongodb"
	case BackendPostgres:
		return "postgres"
	case BackendSQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// DefaultMongoDatabase is used when a MongoDB URL names no database
const DefaultMongoDatabase = "test"

// Config holds database connection configuration
type Config struct {
	// URL is the database connection URL
	URL string
	// Debug enables GORM's SQL query logging
	Debug bool
}

// DetectBackend chooses the backend from the URL scheme.
func DetectBackend(dbURL string) Backend {
	switch {
	case strings.HasPrefix(dbURL, "mongodb://"), strings.HasPrefix(dbURL, "mongodb+srv://"):
		return BackendMongo
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(dbURL, "sqlite://"), strings.HasPrefix(dbURL, "file:"), dbURL == ":memory:":
		return BackendSQLite
	default:
		return BackendUnknown
	}
}

// Connect opens a GORM connection for a PostgreSQL or SQLite URL.
// The initial ping is skipped so an unreachable server does not fail startup.
func Connect(cfg Config) (*gorm.DB, error) {
	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger:               logger.Default.LogMode(logMode),
		DisableAutomaticPing: true,
	}

	var dialector gorm.Dialector
	switch DetectBackend(cfg.URL) {
	case BackendPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.URL,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		})
	case BackendSQLite:
		dialector = sqlite.Open(strings.TrimPrefix(cfg.URL, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported database URL scheme for GORM: %q", redact(cfg.URL))
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// ConnectMongo creates a MongoDB client for the URL and returns the database
// named in the URL path. The driver connects lazily, on first operation.
func ConnectMongo(cfg Config) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return client, client.Database(MongoDatabaseName(cfg.URL)), nil
}

// MongoDatabaseName extracts the database name from a MongoDB URL path.
func MongoDatabaseName(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DefaultMongoDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return DefaultMongoDatabase
}

// redact hides credentials in a connection URL for log and error output
func redact(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil || u.User == nil {
		return dbURL
	}
	return u.Redacted()
}
