package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/pathmaker/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Editor.MinDistance != 30 || cfg.Editor.MaxDistance != 50 {
		t.Errorf("editor distances = %v, %v", cfg.Editor.MinDistance, cfg.Editor.MaxDistance)
	}
	if cfg.Editor.DoubleTap() != 500*time.Millisecond {
		t.Errorf("DoubleTap() = %v", cfg.Editor.DoubleTap())
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[store]
backend = "redis"
cache_size = 0

[redis]
addr = "cache:6379"
db = 2

[editor]
max_distance = 80
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Store.CacheSize != 0 {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Redis.Addr != "cache:6379" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Editor.MaxDistance != 80 || cfg.Editor.MinDistance != 30 {
		t.Errorf("Editor = %+v, want defaults kept for unset keys", cfg.Editor)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load(""); err != nil {
		t.Errorf("Load(\"\") with no default file = %v", err)
	}
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[store]\nbakend = \"file\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() = %v, want INVALID_CONFIG", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PATHMAKER_STORE_BACKEND":        "s3",
		"PATHMAKER_S3_BUCKET":            "maps",
		"PATHMAKER_S3_USE_SSL":           "true",
		"PATHMAKER_STORE_CACHE_SIZE":     "8",
		"PATHMAKER_EDITOR_DOUBLE_TAP_MS": "250",
		"PATHMAKER_SERVER_ADDR":          "  :9090 ",
	}
	cfg := Default()
	if err := cfg.applyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("applyEnv() error: %v", err)
	}
	if cfg.Store.Backend != BackendS3 || cfg.S3.Bucket != "maps" || !cfg.S3.UseSSL {
		t.Errorf("s3 overrides not applied: %+v %+v", cfg.Store, cfg.S3)
	}
	if cfg.Store.CacheSize != 8 || cfg.Editor.DoubleTapMS != 250 {
		t.Errorf("numeric overrides not applied: %+v %+v", cfg.Store, cfg.Editor)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestApplyEnvInvalidNumber(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(func(k string) string {
		if k == "PATHMAKER_EDITOR_MAX_DISTANCE" {
			return "far"
		}
		return ""
	})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("applyEnv() = %v, want INVALID_CONFIG", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "ftp" }},
		{"file without dir", func(c *Config) { c.Store.Dir = "" }},
		{"redis without addr", func(c *Config) { c.Store.Backend = BackendRedis; c.Redis.Addr = "" }},
		{"s3 without bucket", func(c *Config) { c.Store.Backend = BackendS3; c.S3.Bucket = "" }},
		{"mongo without uri", func(c *Config) { c.Store.Backend = BackendMongo; c.Mongo.URI = "" }},
		{"negative cache", func(c *Config) { c.Store.CacheSize = -1 }},
		{"zero distance", func(c *Config) { c.Editor.MinDistance = 0 }},
		{"zero double tap", func(c *Config) { c.Editor.DoubleTapMS = 0 }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
