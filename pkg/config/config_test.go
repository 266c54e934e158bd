package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tiendas-ops/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	v := viper.New()
	v.Set("SESSION_SECRET", "s3cr3t")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 30.0, cfg.Rules.GeoRadius)
	assert.True(t, cfg.Rules.OrderDecrementsStock)
	assert.Equal(t, 5, cfg.Rules.RecentLimit)
	assert.Equal(t, 5, cfg.Rules.TopLimit)
	assert.Equal(t, 480, cfg.Session.TTLMinutes)
}

func TestFromViper_LeeValoresComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("SESSION_SECRET", "s3cr3t")
	v.Set("DB_PORT", "6543")
	v.Set("GEO_RADIUS", "12.5")
	v.Set("ORDER_DECREMENTS_STOCK", "false")
	v.Set("STORAGE_DRIVER", "MEMORY")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 12.5, cfg.Rules.GeoRadius)
	assert.False(t, cfg.Rules.OrderDecrementsStock)
	assert.Equal(t, config.DriverMemory, cfg.DB.Driver)
}

func TestFromViper_SinSecretFalla(t *testing.T) {
	_, err := config.FromViper(viper.New())
	assert.Error(t, err)
}

func TestFromViper_DriverDesconocidoFalla(t *testing.T) {
	v := viper.New()
	v.Set("SESSION_SECRET", "s3cr3t")
	v.Set("STORAGE_DRIVER", "oracle")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "tiendas", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/tiendas?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
