package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// setDefaults registers default values with Viper. Defaults are only used
// when neither the config file nor environment variables provide a value.
func setDefaults() {
	viper.SetDefault("server.address", defaultServerAddress)
	viper.SetDefault("server.read_timeout", defaultServerReadTimeout.String())
	viper.SetDefault("server.write_timeout", defaultServerWriteTimeout.String())
	viper.SetDefault("server.idle_timeout", defaultServerIdleTimeout.String())

	viper.SetDefault("locator.max_ancestor_depth", defaultMaxAncestorDepth)
	viper.SetDefault("locator.timeout_ms", defaultTimeoutMs)
	viper.SetDefault("locator.rules_file", "")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.development", false)
	viper.SetDefault("logger.encoding", "console")
}

// SetDefaults registers default values with the global Viper instance.
func SetDefaults() {
	setDefaults()
}

// Load decodes the current Viper state into a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create config decoder: %w", err)
	}
	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
