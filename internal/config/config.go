// Package config loads host configuration from defaults, a YAML file and UNITCONV_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "unitconv.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "UNITCONV_"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the full host configuration.
type Config struct {
	LogLevel  string      `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string      `mapstructure:"log_format" yaml:"log_format"` // text or json
	Store     StoreConfig `mapstructure:"store" yaml:"store"`
	HTTP      HTTPConfig  `mapstructure:"http" yaml:"http"`
}

// StoreConfig selects and configures session persistence.
type StoreConfig struct {
	Backend       string `mapstructure:"backend" yaml:"backend"`
	Dir           string `mapstructure:"dir" yaml:"dir"`
	EncryptionKey string `mapstructure:"encryption_key" yaml:"encryption_key"`
	// Passphrase is stretched into a key when EncryptionKey is empty.
	Passphrase string      `mapstructure:"encryption_passphrase" yaml:"encryption_passphrase"`
	Redis      RedisConfig `mapstructure:"redis" yaml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Lock     bool          `mapstructure:"lock" yaml:"lock"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Port            int           `mapstructure:"port" yaml:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// envKeys maps environment variable suffixes to nested config paths.
var envKeys = map[string]string{
	"LOG_LEVEL":             "log_level",
	"LOG_FORMAT":            "log_format",
	"STORE_BACKEND":         "store.backend",
	"STORE_DIR":             "store.dir",
	"ENCRYPTION_KEY":        "store.encryption_key",
	"ENCRYPTION_PASSPHRASE": "store.encryption_passphrase",
	"REDIS_ADDR":            "store.redis.addr",
	"REDIS_PASSWORD":        "store.redis.password",
	"REDIS_DB":              "store.redis.db",
	"REDIS_PREFIX":          "store.redis.prefix",
	"REDIS_TTL":             "store.redis.ttl",
	"REDIS_LOCK":            "store.redis.lock",
	"HTTP_PORT":             "http.port",
	"HTTP_SHUTDOWN_TIMEOUT": "http.shutdown_timeout",
}

func defaults() map[string]any {
	return map[string]any{
		"log_level":  "info",
		"log_format": "text",
		"store": map[string]any{
			"backend": BackendFile,
			"dir":     "",
			"redis": map[string]any{
				"addr":   "localhost:6379",
				"db":     0,
				"prefix": "unitconv:session:",
				"ttl":    "0s",
				"lock":   false,
			},
		},
		"http": map[string]any{
			"port":             8080,
			"shutdown_timeout": "5s",
		},
	}
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() Config {
	cfg, err := decode(defaults())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Load reads path (YAML) over the defaults and applies UNITCONV_* environment overrides.
// A missing file is treated as "no file configured".
func Load(path string) (Config, error) {
	raw := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fromFile map[string]any
			if err := yaml.Unmarshal(data, &fromFile); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
			merge(raw, fromFile)
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	for suffix, path := range envKeys {
		if v, ok := os.LookupEnv(EnvPrefix + suffix); ok {
			set(raw, path, v)
		}
	}

	cfg, err := decode(raw)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("invalid store backend %q (want memory, file or redis)", c.Store.Backend)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.LogFormat)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	if c.Store.EncryptionKey != "" && c.Store.Passphrase != "" {
		return errors.New("set either encryption_key or encryption_passphrase, not both")
	}
	if c.Store.Redis.TTL < 0 {
		return fmt.Errorf("invalid redis ttl %s", c.Store.Redis.TTL)
	}
	return nil
}

func decode(raw map[string]any) (Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}

// set assigns value at a dotted path, creating intermediate maps.
func set(m map[string]any, path, value string) {
	parts := strings.Split(path, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}
