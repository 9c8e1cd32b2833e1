package cmd_test

import (
	"testing"

	"farmtrade/cmd"
	"farmtrade/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DSN(t *testing.T) {
	cfg := cmd.Config{DBHost: "db", DBPort: "5432", DBUser: "app", DBPassword: "secret", DBName: "farmtrade"}

	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=farmtrade sslmode=disable", cfg.DSN())

	cfg.DBSslMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestConfig_KafkaBrokerList(t *testing.T) {
	assert.Empty(t, cmd.Config{}.KafkaBrokerList())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cmd.Config{KafkaBrokers: " k1:9092, ,k2:9092"}.KafkaBrokerList())
}

func TestConfig_AverageSpeedKmh(t *testing.T) {
	t.Run("should default when unset", func(t *testing.T) {
		speed, err := cmd.Config{}.AverageSpeedKmh()
		require.NoError(t, err)
		assert.InDelta(t, services.DefaultAverageSpeedKmh, speed, 0)
	})

	t.Run("should parse the configured speed", func(t *testing.T) {
		speed, err := cmd.Config{TransportAverageSpeed: "42.5"}.AverageSpeedKmh()
		require.NoError(t, err)
		assert.InDelta(t, 42.5, speed, 0)
	})

	t.Run("should fail on garbage", func(t *testing.T) {
		_, err := cmd.Config{TransportAverageSpeed: "fast"}.AverageSpeedKmh()
		require.Error(t, err)
	})
}
