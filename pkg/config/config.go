// Package config loads pathmaker settings from a TOML file, a .env file and
// PATHMAKER_* environment variables, in increasing order of precedence.
//
// # File Format
//
//	[store]
//	backend = "file"          # file | memory | redis | s3 | mongo
//	dir = "~/.local/share/pathmaker/maps"
//	cache_size = 64           # LRU entries in front of the backend, 0 disables
//
//	[redis]
//	addr = "localhost:6379"
//
//	[editor]
//	min_distance = 30
//	max_distance = 50
//	double_tap_ms = 500
//
//	[server]
//	addr = ":8080"
//
// A missing default file is not an error; an explicitly requested file that
// does not exist is.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/pathmaker/pkg/errors"
)

// Supported store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendS3     = "s3"
	BackendMongo  = "mongo"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PATHMAKER_"

// Config is the full pathmaker configuration.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Redis  RedisConfig  `toml:"redis"`
	S3     S3Config     `toml:"s3"`
	Mongo  MongoConfig  `toml:"mongo"`
	Editor EditorConfig `toml:"editor"`
	Server ServerConfig `toml:"server"`
}

// StoreConfig selects and configures the map store.
type StoreConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	CacheSize int    `toml:"cache_size"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// S3Config configures the S3-compatible backend.
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	Prefix    string `toml:"prefix"`
	UseSSL    bool   `toml:"use_ssl"`
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// EditorConfig holds the gesture thresholds in screen units.
type EditorConfig struct {
	MinDistance float64 `toml:"min_distance"`
	MaxDistance float64 `toml:"max_distance"`
	DoubleTapMS int     `toml:"double_tap_ms"`
}

// DoubleTap returns the double-tap window as a duration.
func (e EditorConfig) DoubleTap() time.Duration {
	return time.Duration(e.DoubleTapMS) * time.Millisecond
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   BackendFile,
			Dir:       defaultMapDir(),
			CacheSize: 64,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "pathmaker:",
		},
		S3: S3Config{
			Endpoint: "localhost:9000",
			Region:   "us-east-1",
			Bucket:   "pathmaker-maps",
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "pathmaker",
			Collection: "maps",
		},
		Editor: EditorConfig{
			MinDistance: 30,
			MaxDistance: 50,
			DoubleTapMS: 500,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "pathmaker", "config.toml")
}

func defaultMapDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "maps"
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "pathmaker", "maps")
}

// Load builds the configuration from defaults, the TOML file at path,
// a .env file in the working directory and the environment.
//
// An empty path means [DefaultPath], which may be absent.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// applyEnv overrides fields from PATHMAKER_* variables read through getenv.
func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(EnvPrefix + key)); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v := strings.TrimSpace(getenv(EnvPrefix + key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, key)
		}
		*dst = n
		return nil
	}
	float := func(key string, dst *float64) error {
		v := strings.TrimSpace(getenv(EnvPrefix + key))
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, key)
		}
		*dst = f
		return nil
	}
	boolean := func(key string, dst *bool) error {
		v := strings.TrimSpace(getenv(EnvPrefix + key))
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, key)
		}
		*dst = b
		return nil
	}

	str("STORE_BACKEND", &c.Store.Backend)
	str("STORE_DIR", &c.Store.Dir)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	str("REDIS_PREFIX", &c.Redis.Prefix)
	str("S3_ENDPOINT", &c.S3.Endpoint)
	str("S3_REGION", &c.S3.Region)
	str("S3_ACCESS_KEY", &c.S3.AccessKey)
	str("S3_SECRET_KEY", &c.S3.SecretKey)
	str("S3_BUCKET", &c.S3.Bucket)
	str("S3_PREFIX", &c.S3.Prefix)
	str("MONGO_URI", &c.Mongo.URI)
	str("MONGO_DATABASE", &c.Mongo.Database)
	str("MONGO_COLLECTION", &c.Mongo.Collection)
	str("SERVER_ADDR", &c.Server.Addr)

	for _, fn := range []func() error{
		func() error { return num("STORE_CACHE_SIZE", &c.Store.CacheSize) },
		func() error { return num("REDIS_DB", &c.Redis.DB) },
		func() error { return boolean("S3_USE_SSL", &c.S3.UseSSL) },
		func() error { return float("EDITOR_MIN_DISTANCE", &c.Editor.MinDistance) },
		func() error { return float("EDITOR_MAX_DISTANCE", &c.Editor.MaxDistance) },
		func() error { return num("EDITOR_DOUBLE_TAP_MS", &c.Editor.DoubleTapMS) },
	} {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.dir is required for the file backend")
		}
	case BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis.addr is required for the redis backend")
		}
	case BackendS3:
		if c.S3.Endpoint == "" || c.S3.Bucket == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "s3.endpoint and s3.bucket are required for the s3 backend")
		}
	case BackendMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "mongo.uri, mongo.database and mongo.collection are required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	if c.Store.CacheSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "store.cache_size must not be negative")
	}
	if c.Editor.MinDistance <= 0 || c.Editor.MaxDistance <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "editor distances must be positive")
	}
	if c.Editor.DoubleTapMS <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "editor.double_tap_ms must be positive")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr is required")
	}
	return nil
}
