package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 200, cfg.Catalog.FetchLimit)
	assert.Equal(t, MemoryBackendPostgres, cfg.Memory.Backend)
	assert.Equal(t, 8, cfg.Assistant.ContextMaxItems)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.ChatModel)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "placefinder", cfg.Tracing.ServiceName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CATALOG_TIMEOUT", "5")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("MEMORY_BACKEND", "redis")
	t.Setenv("LLM_TEMPERATURE", "not-a-float")
	t.Setenv("TRACING_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, "gsk_test", cfg.LLM.APIKey)
	assert.Equal(t, MemoryBackendRedis, cfg.Memory.Backend)
	assert.Equal(t, 0.2, cfg.LLM.Temperature, "invalid float falls back to default")
	assert.True(t, cfg.Tracing.Enabled)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("MEMORY_BACKEND", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetPostgreSQLDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  PostgreSQLConfig
		want string
	}{
		{
			name: "full DSN wins",
			cfg:  PostgreSQLConfig{DSN: "postgres://u:p@db/x", Host: "ignored"},
			want: "postgres://u:p@db/x",
		},
		{
			name: "assembled from fields",
			cfg:  PostgreSQLConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "x", SSLMode: "disable"},
			want: "host=db port=5433 user=u password=p dbname=x sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{PostgreSQL: tt.cfg}
			assert.Equal(t, tt.want, c.GetPostgreSQLDSN())
		})
	}
}
