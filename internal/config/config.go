package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// StorageBackend selects where sessions and memory facts live.
type StorageBackend string

const (
	BackendMemory StorageBackend = "memory"
	BackendSQLite StorageBackend = "sqlite"
)

type Config struct {
	Port string

	StorageBackend StorageBackend
	SQLitePath     string

	// ThinkingLatency is the simulated delay before a turn resolves.
	ThinkingLatency time.Duration

	DefaultModel          string
	DefaultResponseLength string
	DefaultMemoryEnabled  bool
	DefaultTheme          string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("storage.backend", string(BackendMemory))
	v.SetDefault("storage.sqlite_path", "vayu.db")
	v.SetDefault("assistant.thinking_latency", 2*time.Second)
	v.SetDefault("assistant.model", "vayu-pro")
	v.SetDefault("assistant.response_length", "balanced")
	v.SetDefault("assistant.memory_enabled", true)
	v.SetDefault("assistant.theme", "dark")
}

// Load reads configuration from an optional config.yaml and VAYU_* env vars.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VAYU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine, env vars and defaults still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:                  v.GetString("port"),
		StorageBackend:        StorageBackend(v.GetString("storage.backend")),
		SQLitePath:            v.GetString("storage.sqlite_path"),
		ThinkingLatency:       v.GetDuration("assistant.thinking_latency"),
		DefaultModel:          v.GetString("assistant.model"),
		DefaultResponseLength: v.GetString("assistant.response_length"),
		DefaultMemoryEnabled:  v.GetBool("assistant.memory_enabled"),
		DefaultTheme:          v.GetString("assistant.theme"),
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return cfg, nil
}
