// Package config loads the settings of the long-running commands (serve, mcp) from a
// YAML file, with TRACENTM_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aretw0/tracentm/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Machine loaders.
const (
	LoaderFile = "file"
	LoaderLoam = "loam"
)

type Config struct {
	Machines MachinesConfig `yaml:"machines"`
	Server   ServerConfig   `yaml:"server"`
	Depth    DepthConfig    `yaml:"depth"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
}

type MachinesConfig struct {
	Path   string `yaml:"path"`
	Loader string `yaml:"loader"` // file | loam
}

type ServerConfig struct {
	Addr    string `yaml:"addr"`
	MCPPort int    `yaml:"mcp_port"`
	Metrics bool   `yaml:"metrics"`
}

type DepthConfig struct {
	Default int `yaml:"default"`
	Limit   int `yaml:"limit"`
}

type StoreConfig struct {
	Backend string      `yaml:"backend"` // none | memory | file | redis
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Machines: MachinesConfig{Path: ".", Loader: LoaderFile},
		Server:   ServerConfig{Addr: ":8080", MCPPort: 8081, Metrics: true},
		Depth:    DepthConfig{Default: domain.DefaultMaxDepth, Limit: 1000},
		Store: StoreConfig{
			Backend: StoreMemory,
			Path:    filepath.Join(".tracentm", "reports"),
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults, expands ${VAR} references and
// applies environment overrides. An empty path yields the defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		expanded := []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(expanded, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown backends and inconsistent depth settings.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreNone, StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch c.Machines.Loader {
	case LoaderFile, LoaderLoam:
	default:
		return fmt.Errorf("unknown machine loader %q", c.Machines.Loader)
	}
	if c.Depth.Limit < 0 {
		return fmt.Errorf("depth limit must not be negative")
	}
	if c.Depth.Default > c.Depth.Limit {
		return fmt.Errorf("default depth %d exceeds limit %d", c.Depth.Default, c.Depth.Limit)
	}
	return nil
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"TRACENTM_MACHINES":       &c.Machines.Path,
		"TRACENTM_LOADER":         &c.Machines.Loader,
		"TRACENTM_ADDR":           &c.Server.Addr,
		"TRACENTM_STORE":          &c.Store.Backend,
		"TRACENTM_STORE_PATH":     &c.Store.Path,
		"TRACENTM_REDIS_ADDR":     &c.Store.Redis.Addr,
		"TRACENTM_REDIS_PASSWORD": &c.Store.Redis.Password,
		"TRACENTM_LOG_LEVEL":      &c.Log.Level,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"TRACENTM_MCP_PORT":      &c.Server.MCPPort,
		"TRACENTM_DEFAULT_DEPTH": &c.Depth.Default,
		"TRACENTM_DEPTH_LIMIT":   &c.Depth.Limit,
		"TRACENTM_REDIS_DB":      &c.Store.Redis.DB,
	}
	for key, dst := range ints {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = n
		}
	}

	if v, ok := os.LookupEnv("TRACENTM_REDIS_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TRACENTM_REDIS_TTL: %w", err)
		}
		c.Store.Redis.TTL = d
	}
	if v, ok := os.LookupEnv("TRACENTM_METRICS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TRACENTM_METRICS: %w", err)
		}
		c.Server.Metrics = b
	}
	return nil
}
