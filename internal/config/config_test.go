package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every SOLOBLOG_ env var that Load() reads.
var allConfigKeys = []string{
	"SOLOBLOG_ADMIN_USERNAME",
	"SOLOBLOG_ADMIN_PASSWORD",
	"SOLOBLOG_JWT_SECRET",
	"SOLOBLOG_BACKEND",
	"SOLOBLOG_DATA_PATH",
	"SOLOBLOG_DB_PATH",
	"SOLOBLOG_MONGO_URI",
	"SOLOBLOG_MONGO_DATABASE",
	"SOLOBLOG_LISTEN_ADDR",
	"SOLOBLOG_UPLOAD_DIR",
}

// isolateConfigEnv saves and unsets all SOLOBLOG_ env vars so tests don't
// inherit values from the host environment. t.Cleanup restores original
// values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func setRequired(t *testing.T) {
	t.Setenv("SOLOBLOG_ADMIN_USERNAME", "admin")
	t.Setenv("SOLOBLOG_ADMIN_PASSWORD", "hunter2")
	t.Setenv("SOLOBLOG_JWT_SECRET", "sekrit")
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	setRequired(t)
	t.Setenv("SOLOBLOG_BACKEND", "sqlite")
	t.Setenv("SOLOBLOG_DB_PATH", "/tmp/test.db")
	t.Setenv("SOLOBLOG_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("SOLOBLOG_UPLOAD_DIR", "/tmp/uploads")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "hunter2", cfg.AdminPassword)
	assert.Equal(t, "sekrit", cfg.JWTSecret)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/uploads", cfg.UploadDir)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	setRequired(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "posts.json", cfg.DataPath)
	assert.Equal(t, "soloblog.db", cfg.DBPath)
	assert.Equal(t, "soloblog", cfg.MongoDatabase)
	assert.Equal(t, "127.0.0.1:3000", cfg.ListenAddr)
	assert.Equal(t, "uploads", cfg.UploadDir)
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{"missing admin username", "SOLOBLOG_ADMIN_USERNAME"},
		{"missing admin password", "SOLOBLOG_ADMIN_PASSWORD"},
		{"missing jwt secret", "SOLOBLOG_JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			setRequired(t)
			os.Unsetenv(tt.omit)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.omit)
		})
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	isolateConfigEnv(t)
	setRequired(t)
	t.Setenv("SOLOBLOG_BACKEND", "cassandra")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOLOBLOG_BACKEND")
}

func TestLoad_MongoRequiresURI(t *testing.T) {
	isolateConfigEnv(t)
	setRequired(t)
	t.Setenv("SOLOBLOG_BACKEND", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOLOBLOG_MONGO_URI")

	t.Setenv("SOLOBLOG_MONGO_URI", "mongodb://localhost:27017")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMongo, cfg.Backend)
}
