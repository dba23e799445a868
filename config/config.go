// Package config loads connection settings from the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strconv"
	"strings"

	"attachexport/database"

	"github.com/joho/godotenv"
)

// DefaultPorts per database type
var DefaultPorts = map[string]int{
	"mysql":    3306,
	"postgres": 5432,
}

// LoadEnv loads .env style files into the process environment.
// A missing file is logged and ignored.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("Warning: .env file not found: %v", err)
			return nil
		}
		return fmt.Errorf("error loading .env: %w", err)
	}
	return nil
}

// LoadDatabase builds a database configuration from environment variables.
// getenv is usually os.Getenv.
func LoadDatabase(getenv func(string) string) (database.Config, error) {
	cfg := database.Config{
		Type:     strings.ToLower(getenv("DB_TYPE")),
		Host:     getenv("DB_HOST"),
		User:     getenv("DB_USER"),
		Password: getenv("DB_PASSWORD"),
		Database: getenv("DB_NAME"),
		SSLMode:  getenv("DB_SSLMODE"),
		Path:     getenv("DB_PATH"),
	}

	if cfg.Type == "" {
		cfg.Type = "sqlite"
		if cfg.Path == "" && cfg.Database != "" {
			cfg.Type = "mysql"
		}
	}

	if cfg.Type == "sqlite" {
		return cfg, nil
	}

	if cfg.Host == "" {
		cfg.Host = "localhost" // Default value
	}
	if cfg.User == "" {
		cfg.User = "root" // Default value
	}

	cfg.Port = DefaultPorts[cfg.Type]
	if portStr := getenv("DB_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err == nil && port > 0 {
			cfg.Port = port
		} else {
			log.Printf("Warning: Invalid DB_PORT %q, using default: %d", portStr, cfg.Port)
		}
	}

	if cfg.Database == "" {
		return cfg, errors.New("database name is required. Set DB_NAME in .env file")
	}

	return cfg, nil
}

// ParseFilePerm parses a three digit octal permission such as "644"
func ParseFilePerm(perm string) (fs.FileMode, error) {
	if len(perm) != 3 {
		return 0, fmt.Errorf("invalid permissions: %q", perm)
	}

	v, err := strconv.ParseUint(perm, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid permissions: %q", perm)
	}

	return fs.FileMode(v), nil
}
