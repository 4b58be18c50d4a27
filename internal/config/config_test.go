package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/golocator/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults()

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GetServerConfig().Address)
	assert.Equal(t, 30*time.Second, cfg.GetServerConfig().ReadTimeout)
	assert.Equal(t, 10, cfg.GetLocatorConfig().MaxAncestorDepth)
	assert.Equal(t, 20*time.Second, cfg.GetLocatorConfig().Timeout())
	assert.Equal(t, "", cfg.GetLocatorConfig().RulesFile)
	assert.Equal(t, "info", string(cfg.GetLoggerConfig().Level))
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults()
	viper.Set("locator.max_ancestor_depth", 4)
	viper.Set("locator.timeout_ms", 250)
	viper.Set("server.address", ":9999")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.GetLocatorConfig().MaxAncestorDepth)
	assert.Equal(t, 250*time.Millisecond, cfg.GetLocatorConfig().Timeout())
	assert.Equal(t, ":9999", cfg.GetServerConfig().Address)
}

func TestLoad_InvalidValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults()
	viper.Set("locator.max_ancestor_depth", -1)

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Server:  config.ServerConfig{Address: ":8080"},
		Locator: config.LocatorConfig{MaxAncestorDepth: 10, TimeoutMs: 20000},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Server.Address = ""
	assert.Error(t, cfg.Validate())

	cfg.Server.Address = ":8080"
	cfg.Locator.TimeoutMs = 0
	assert.Error(t, cfg.Validate())
}
