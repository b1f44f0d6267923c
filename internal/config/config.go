// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
)

// Backend selectors accepted in SOLOBLOG_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Config holds the application configuration loaded once at startup and
// passed to components at construction. Nothing reads the environment after
// Load returns.
type Config struct {
	AdminUsername string
	AdminPassword string
	JWTSecret     string

	Backend       string
	DataPath      string
	DBPath        string
	MongoURI      string
	MongoDatabase string

	ListenAddr string
	UploadDir  string
}

// Load reads configuration from environment variables and returns a validated
// Config. SOLOBLOG_ADMIN_USERNAME, SOLOBLOG_ADMIN_PASSWORD, and
// SOLOBLOG_JWT_SECRET are required; the process must not come up without a
// credential and a signing secret. Optional variables with defaults:
// SOLOBLOG_BACKEND (file), SOLOBLOG_DATA_PATH (posts.json), SOLOBLOG_DB_PATH
// (soloblog.db), SOLOBLOG_MONGO_DATABASE (soloblog), SOLOBLOG_LISTEN_ADDR
// (127.0.0.1:3000), SOLOBLOG_UPLOAD_DIR (uploads). SOLOBLOG_MONGO_URI is
// required when the mongo backend is selected.
func Load() (*Config, error) {
	cfg := &Config{
		AdminUsername: os.Getenv("SOLOBLOG_ADMIN_USERNAME"),
		AdminPassword: os.Getenv("SOLOBLOG_ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("SOLOBLOG_JWT_SECRET"),
		Backend:       BackendFile,
		DataPath:      "posts.json",
		DBPath:        "soloblog.db",
		MongoURI:      os.Getenv("SOLOBLOG_MONGO_URI"),
		MongoDatabase: "soloblog",
		ListenAddr:    "127.0.0.1:3000",
		UploadDir:     "uploads",
	}

	if cfg.AdminUsername == "" {
		return nil, fmt.Errorf("SOLOBLOG_ADMIN_USERNAME is required")
	}
	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("SOLOBLOG_ADMIN_PASSWORD is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("SOLOBLOG_JWT_SECRET is required")
	}

	if v, ok := os.LookupEnv("SOLOBLOG_BACKEND"); ok {
		switch v {
		case BackendFile, BackendSQLite, BackendMongo:
			cfg.Backend = v
		default:
			return nil, fmt.Errorf("SOLOBLOG_BACKEND has unknown value %q: want file, sqlite, or mongo", v)
		}
	}

	if v, ok := os.LookupEnv("SOLOBLOG_DATA_PATH"); ok {
		cfg.DataPath = v
	}
	if v, ok := os.LookupEnv("SOLOBLOG_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("SOLOBLOG_MONGO_DATABASE"); ok {
		cfg.MongoDatabase = v
	}
	if v, ok := os.LookupEnv("SOLOBLOG_LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}
	if v, ok := os.LookupEnv("SOLOBLOG_UPLOAD_DIR"); ok {
		cfg.UploadDir = v
	}

	if cfg.Backend == BackendMongo && cfg.MongoURI == "" {
		return nil, fmt.Errorf("SOLOBLOG_MONGO_URI is required when SOLOBLOG_BACKEND=mongo")
	}

	return cfg, nil
}
