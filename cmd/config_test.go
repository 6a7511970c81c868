package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"waterdelivery/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "KAFKA_BROKERS", "REDIS_DB", "RESTORE_CAPACITY_ON_CANCEL", "OVERDUE_SCAN_SCHEDULE"} {
		t.Setenv(key, "")
	}

	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Zero(t, cfg.RedisDB)
	assert.False(t, cfg.RestoreCapacityOnCancel)
	assert.Equal(t, "@every 1m", cfg.OverdueScanSchedule)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "KAFKA_BROKERS", "REDIS_DB", "RESTORE_CAPACITY_ON_CANCEL", "DB_NAME"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("HTTP_PORT", "9090")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"HTTP_PORT=7070\nKAFKA_BROKERS=kafka-1:9092, kafka-2:9092\nREDIS_DB=2\nRESTORE_CAPACITY_ON_CANCEL=true\nDB_NAME=water\n",
	), 0o600))

	cfg, err := cmd.LoadConfig(envFile)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort, "environment wins over the file")
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.RestoreCapacityOnCancel)
	assert.Contains(t, cfg.DSN(), "dbname=water")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("REDIS_DB", "primary")

	_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.ErrorContains(t, err, "REDIS_DB")
}
