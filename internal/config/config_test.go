package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("WRITE_MODE", "")
	t.Setenv("PAYMENT_SIMULATION_DELAY", "")
	t.Setenv("GENAI_SHAPE_RETRIES", "")
	t.Setenv("GENAI_TIMEOUT", "")
	t.Setenv("AUTH_PROTECTED_PREFIXES", "")
	t.Setenv("BROKER", "")

	cfg := Load()

	assert.Equal(t, StoreElasticsearch, cfg.StoreBackend)
	assert.Equal(t, WriteModeAsync, cfg.WriteMode)
	assert.Equal(t, 2*time.Second, cfg.Payment.SimulationDelay)
	assert.Equal(t, 0, cfg.GenAI.ShapeRetries)
	assert.Equal(t, time.Duration(0), cfg.GenAI.Timeout)
	assert.Equal(t, []string{"/reservations", "/recommendations"}, cfg.Auth.ProtectedPrefixes)
	assert.Equal(t, "none", cfg.Broker.Kind)
	assert.Equal(t, "gilded-reservations", cfg.Elasticsearch.IndexName("reservations"))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("WRITE_MODE", "sync")
	t.Setenv("PAYMENT_SIMULATION_DELAY", "10ms")
	t.Setenv("AUTH_PROTECTED_PREFIXES", " /a, ,/b ")
	t.Setenv("DB_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, StorePostgres, cfg.StoreBackend)
	assert.Equal(t, WriteModeSync, cfg.WriteMode)
	assert.Equal(t, 10*time.Millisecond, cfg.Payment.SimulationDelay)
	assert.Equal(t, []string{"/a", "/b"}, cfg.Auth.ProtectedPrefixes)
	assert.Equal(t, 5432, cfg.Database.Port)
}
