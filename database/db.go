package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"attachexport/models"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrTableNotFound is returned for missing tables and missing database files
var ErrTableNotFound = models.ErrTableNotFound

const readOnlySQLiteDriver = "sqlite3_readonly"

func init() {
	// Geodatabase files are source data: refuse writes on every connection
	sql.Register(readOnlySQLiteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			_, err := conn.Exec("PRAGMA query_only = ON", nil)
			return err
		},
	})
}

// Config holds database configuration
type Config struct {
	Type     string // "mysql", "postgres" or "sqlite"
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string // For PostgreSQL
	Path     string // For SQLite (mobile geodatabase, GeoPackage)
}

// Connect establishes a connection to the database using GORM
func Connect(config Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	// Configure GORM logger
	gormLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	// Configure database connection based on type
	switch config.Type {
	case "mysql":
		dialector = mysql.Open(mysqlDSN(config))

	case "postgres":
		dialector = postgres.Open(postgresDSN(config))

	case "sqlite":
		if config.Path == "" {
			return nil, errors.New("sqlite database path is required")
		}
		if _, err := os.Stat(config.Path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("database file %s: %w", config.Path, ErrTableNotFound)
			}
			return nil, fmt.Errorf("error accessing database file: %w", err)
		}
		dialector = &sqlite.Dialector{
			DriverName: readOnlySQLiteDriver,
			DSN:        sqliteDSN(config.Path),
		}

	default:
		return nil, fmt.Errorf("unsupported database type: %s (supported types: mysql, postgres, sqlite)", config.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database connection: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error accessing underlying SQL DB: %w", err)
	}

	// Exports are sequential; one cursor is open at a time
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Minute * 3)

	// Check if connection is working
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return db, nil
}

func mysqlDSN(config Config) string {
	cfg := mysqldriver.NewConfig()
	cfg.User = config.User
	cfg.Passwd = config.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	cfg.DBName = config.Database
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func postgresDSN(config Config) string {
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = "disable" // Default SSL mode
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		config.Host, config.User, config.Password, config.Database, config.Port, sslMode)
}

func sqliteDSN(path string) string {
	return "file:" + filepath.ToSlash(path) + "?mode=ro"
}

// Close safely closes the database connection
func Close(db *gorm.DB) error {
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("error accessing SQL DB: %w", err)
		}
		return sqlDB.Close()
	}
	return nil
}
